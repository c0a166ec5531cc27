// Command mkpalette prints a 256-entry RGB565 lookup table sampled from a
// named color gradient, ready to paste into display firmware.
//
//	mkpalette [flags] [gradient]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"falsecolor/gradient"
	"falsecolor/hal"
	"falsecolor/palette"
	"falsecolor/preview"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const (
	formatRows = "rows"
	formatC    = "c"
	formatGo   = "go"
)

type config struct {
	gradient string
	swap     bool
	legacyB  bool
	format   string
	name     string
	ctype    string
	pkg      string
	gradFile string
	pngPath  string
	pngScale int
	list     bool
	window   bool
	verbose  bool
	version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("mkpalette", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.swap, "swap", false, "Swap the two bytes of every entry (big-endian panels fed from a little-endian MCU).")
	fs.BoolVar(&cfg.legacyB, "legacy-blue-mask", false, "Mask blue with 0x7C instead of 0xF8, as older generated tables did.")
	fs.StringVar(&cfg.format, "format", formatRows, "Output format: rows|c|go.")
	fs.StringVar(&cfg.name, "name", "", "Identifier for -format c|go (default FALSE_COLOR_MAP / falseColorMap).")
	fs.StringVar(&cfg.ctype, "ctype", "uint16_t", "Element type for -format c.")
	fs.StringVar(&cfg.pkg, "pkg", "palette", "Package clause for -format go.")
	fs.StringVar(&cfg.gradFile, "gradients", "", "YAML file with extra gradient definitions.")
	fs.StringVar(&cfg.pngPath, "png", "", "Also write a preview image to this path.")
	fs.IntVar(&cfg.pngScale, "png-scale", 2, "Pixel scale for -png.")
	fs.BoolVar(&cfg.list, "list", false, "List the known gradient names and exit.")
	fs.BoolVar(&cfg.window, "preview", false, "Show the table in a window after printing it.")
	fs.BoolVar(&cfg.verbose, "v", false, "Log progress to stderr.")
	fs.BoolVar(&cfg.version, "version", false, "Print version and exit.")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mkpalette [flags] [gradient]")
		fmt.Fprintf(stderr, "gradient defaults to %q.\n\nflags:\n", gradient.DefaultName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
		cfg.gradient = gradient.DefaultName
	case 1:
		cfg.gradient = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected at most one gradient name, got %d: %s", fs.NArg(), strings.Join(fs.Args(), " "))
	}

	cfg.format = strings.ToLower(cfg.format)
	switch cfg.format {
	case formatRows:
	case formatC:
		if cfg.name == "" {
			cfg.name = "FALSE_COLOR_MAP"
		}
	case formatGo:
		if cfg.name == "" {
			cfg.name = "falseColorMap"
		}
	default:
		return cfg, fmt.Errorf("unknown format: %s", cfg.format)
	}
	if cfg.pngScale < 1 || cfg.pngScale > 16 {
		return cfg, fmt.Errorf("png-scale out of range: %d", cfg.pngScale)
	}
	return cfg, nil
}

// run is the whole program; it returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	if cfg.version {
		fmt.Fprintln(stdout, versionLine())
		return exitOK
	}

	log := hal.Discard
	if cfg.verbose {
		log = hal.NewLogger(stderr)
	}

	reg := gradient.NewDefaultRegistry()
	if cfg.gradFile != "" {
		if err := reg.LoadFile(cfg.gradFile); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitFailure
		}
		hal.Logf(log, "loaded gradients from %s", cfg.gradFile)
	}

	if cfg.list {
		listGradients(stdout, reg)
		return exitOK
	}

	table, err := buildTable(reg, cfg)
	if err != nil {
		var unknown *gradient.UnknownGradientError
		if errors.As(err, &unknown) {
			fmt.Fprintf(stderr, "error: %v (run with -list to see available names)\n", err)
		} else {
			fmt.Fprintln(stderr, "error:", err)
		}
		return exitFailure
	}
	hal.Logf(log, "gradient %s: swap=%t blue-mask=%s", cfg.gradient, cfg.swap, blueMask(cfg))

	var out bytes.Buffer
	if err := render(&out, cfg, table); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	var fb *hal.MemFramebuffer
	if cfg.pngPath != "" || cfg.window {
		fb, err = renderPreview(cfg, table)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitFailure
		}
	}
	if cfg.pngPath != "" {
		if err := writePNG(cfg.pngPath, fb, cfg.pngScale); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitFailure
		}
		hal.Logf(log, "wrote preview %s", cfg.pngPath)
	}

	if _, err := stdout.Write(out.Bytes()); err != nil {
		fmt.Fprintln(stderr, "error: write table:", err)
		return exitFailure
	}

	if cfg.window {
		title := fmt.Sprintf("mkpalette %s (%s)", cfg.gradient, buildVersion())
		if err := hal.RunWindow(title, fb, 3); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return exitFailure
		}
	}
	return exitOK
}

func blueMask(cfg config) palette.BlueMask {
	if cfg.legacyB {
		return palette.BlueMaskLegacy
	}
	return palette.BlueMaskTop5
}

func buildTable(reg *gradient.Registry, cfg config) (palette.Table, error) {
	g, err := reg.Resolve(cfg.gradient)
	if err != nil {
		return palette.Table{}, err
	}
	samples := gradient.SampleN(g, palette.Size)
	return palette.Quantize(samples, palette.Options{
		SwapBytes: cfg.swap,
		BlueMask:  blueMask(cfg),
	})
}

func render(w io.Writer, cfg config, t palette.Table) error {
	switch cfg.format {
	case formatC:
		return palette.FormatC(w, cfg.ctype, cfg.name, t)
	case formatGo:
		order := "native"
		if cfg.swap {
			order = "byte-swapped"
		}
		comment := fmt.Sprintf("%s is the %s gradient as %s RGB565.", cfg.name, cfg.gradient, order)
		return palette.FormatGo(w, cfg.pkg, cfg.name, comment, t)
	default:
		return palette.FormatTable(w, t)
	}
}

// renderPreview draws the table on a panel whose byte order matches what
// the table was generated for.
func renderPreview(cfg config, t palette.Table) (*hal.MemFramebuffer, error) {
	format := hal.PixelFormatRGB565
	if cfg.swap {
		format = hal.PixelFormatRGB565BE
	}
	fb := preview.NewFramebuffer(format)
	if err := preview.Render(fb, t, preview.Options{Name: cfg.gradient, SwapBytes: cfg.swap}); err != nil {
		return nil, err
	}
	return fb, nil
}

func writePNG(path string, fb hal.Framebuffer, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := preview.WritePNG(f, fb, scale); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

func listGradients(w io.Writer, reg *gradient.Registry) {
	for _, name := range reg.Names() {
		fmt.Fprintln(w, name)
	}
	for _, prefix := range reg.Prefixes() {
		fmt.Fprintf(w, "%s<scheme>\n", prefix)
	}
	fmt.Fprintln(w, "(append _r to any name for the reversed gradient)")
}
