package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var rowRE = regexp.MustCompile(`^(0x[0-9a-f]{4}, ){15}0x[0-9a-f]{4},$`)

func runArgs(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunDefaultGradient(t *testing.T) {
	code, out, errOut := runArgs(t)
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, line := range lines {
		if !rowRE.MatchString(line) {
			t.Fatalf("line %d malformed: %q", i, line)
		}
	}

	// matplotlib's listed plasma table, packed.
	if !strings.HasPrefix(lines[0], "0x0830, 0x1030, 0x1031, ") {
		t.Fatalf("first row %q", lines[0])
	}

	_, explicit, _ := runArgs(t, "plasma")
	if explicit != out {
		t.Fatal("default output differs from explicit plasma")
	}
}

func TestRunUnknownGradient(t *testing.T) {
	for _, name := range []string{"not_a_real_gradient", "brewer:", "brewer:NotAScheme_r"} {
		code, out, errOut := runArgs(t, name)
		if code != exitFailure {
			t.Fatalf("%q: exit %d, want %d", name, code, exitFailure)
		}
		if out != "" {
			t.Fatalf("%q: partial output on failure: %q", name, out)
		}
		if want := `unknown gradient "` + name + `"`; !strings.Contains(errOut, want) {
			t.Fatalf("%q: stderr %q", name, errOut)
		}
	}
}

func TestRunSwap(t *testing.T) {
	_, plain, _ := runArgs(t, "gray")
	code, swapped, errOut := runArgs(t, "-swap", "gray")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	p := strings.Fields(strings.ReplaceAll(plain, ",", ""))
	s := strings.Fields(strings.ReplaceAll(swapped, ",", ""))
	if len(p) != 256 || len(s) != 256 {
		t.Fatalf("token counts %d/%d", len(p), len(s))
	}
	for i := range p {
		want := "0x" + p[i][4:6] + p[i][2:4]
		if s[i] != want {
			t.Fatalf("entry %d: %s swapped is %s, got %s", i, p[i], want, s[i])
		}
	}
	if p[0] != "0x0000" || p[255] != "0xffff" {
		t.Fatalf("gray endpoints %s..%s", p[0], p[255])
	}
}

func TestRunFirmwareTable(t *testing.T) {
	code, out, errOut := runArgs(t, "-swap", "-format", "c", "-ctype", "Pen", "nipy_spectral")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "const Pen FALSE_COLOR_MAP[] = {\n    0x0000, 0x0108, 0x0210, 0x0318,") {
		t.Fatalf("unexpected C output:\n%s", out)
	}
	if !strings.HasSuffix(out, "0xf7cd, 0x79ce,\n};\n") {
		t.Fatalf("unexpected C tail:\n%s", out[len(out)-40:])
	}
}

func TestRunGoFormat(t *testing.T) {
	code, out, errOut := runArgs(t, "-format", "go", "-pkg", "lut", "-name", "Viridis", "viridis")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"package lut", "var Viridis = [256]uint16{", "Viridis is the viridis gradient as native RGB565."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunLegacyBlueMask(t *testing.T) {
	_, canon, _ := runArgs(t, "gray")
	_, legacy, _ := runArgs(t, "-legacy-blue-mask", "gray")
	if canon == legacy {
		t.Fatal("legacy blue mask changed nothing")
	}
	if !strings.HasSuffix(strings.TrimSpace(legacy), "0xffef,") {
		t.Fatalf("legacy white should lose the top blue bit: %q", legacy[len(legacy)-10:])
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := [][]string{
		{"plasma", "viridis"},
		{"-format", "rust"},
		{"-png-scale", "0"},
		{"-no-such-flag"},
	}
	for _, args := range tests {
		code, out, errOut := runArgs(t, args...)
		if code != exitUsage {
			t.Errorf("%v: exit %d, want %d (stderr %q)", args, code, exitUsage, errOut)
		}
		if out != "" {
			t.Errorf("%v: wrote stdout %q", args, out)
		}
	}
}

func TestRunHelp(t *testing.T) {
	code, _, errOut := runArgs(t, "-h")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(errOut, "usage: mkpalette") {
		t.Fatalf("help text %q", errOut)
	}
}

func TestRunList(t *testing.T) {
	code, out, _ := runArgs(t, "-list")
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"plasma\n", "nipy_spectral\n", "brewer:<scheme>\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q", want)
		}
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runArgs(t, "-version")
	if code != exitOK || out != versionLine()+"\n" {
		t.Fatalf("exit %d output %q", code, out)
	}
}

func TestRunGradientFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.yaml")
	doc := "gradients:\n  - name: bw\n    colors: [\"#000000\", \"#ffffff\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := runArgs(t, "-gradients", path, "-v", "bw_r")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "0xffff, ") || !strings.HasSuffix(out, "0x0000,\n") {
		t.Fatalf("bw_r output:\n%s", out)
	}
	if !strings.Contains(errOut, "loaded gradients from") {
		t.Fatalf("verbose log missing: %q", errOut)
	}

	code, out, _ = runArgs(t, "-gradients", filepath.Join(dir, "missing.yaml"))
	if code != exitFailure || out != "" {
		t.Fatalf("missing file: exit %d output %q", code, out)
	}
}

func TestRunPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plasma.png")
	code, out, errOut := runArgs(t, "-png", path, "-png-scale", "1", "-swap")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out == "" {
		t.Fatal("table not printed")
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
}
