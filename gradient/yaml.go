package gradient

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"
	"gopkg.in/yaml.v3"

	"falsecolor/palette"
)

// ErrInvalidDefinition is wrapped by every error about a malformed gradient file.
var ErrInvalidDefinition = errors.New("invalid gradient definition")

// Definition is one user gradient. Exactly one of Colors or Table is set.
type Definition struct {
	Name string `yaml:"name"`

	// Colors are CSS color strings blended by colorgrad.
	Colors        []string  `yaml:"colors,omitempty"`
	Domain        []float64 `yaml:"domain,omitempty"`
	Blend         string    `yaml:"blend,omitempty"`
	Interpolation string    `yaml:"interpolation,omitempty"`

	// Table lists "#rrggbb" entries used verbatim when it has 256 of them.
	Table []string `yaml:"table,omitempty"`
}

// File is the top level of a gradient definition file.
type File struct {
	Gradients []Definition `yaml:"gradients"`
}

// LoadFile registers every gradient defined in the YAML file at path.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gradient file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := r.LoadYAML(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadYAML parses a gradient file and registers its entries, replacing
// built-ins of the same name. Nothing is registered if any entry is invalid.
func (r *Registry) LoadYAML(rd io.Reader) error {
	var file File
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	built := make(map[string]Gradient, len(file.Gradients))
	order := make([]string, 0, len(file.Gradients))
	for i, def := range file.Gradients {
		def.Name = strings.TrimSpace(def.Name)
		g, err := def.Build()
		if err != nil {
			return fmt.Errorf("gradient #%d: %w", i, err)
		}
		if _, dup := built[def.Name]; dup {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, def.Name)
		}
		built[def.Name] = g
		order = append(order, def.Name)
	}
	for _, name := range order {
		g := built[name]
		r.Register(name, func() Gradient { return g })
	}
	return nil
}

// Build validates d and constructs its gradient.
func (d Definition) Build() (Gradient, error) {
	name := d.Name
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if strings.ContainsAny(name, " \t\n") {
		return nil, fmt.Errorf("%w: name %q contains whitespace", ErrInvalidDefinition, name)
	}
	switch {
	case len(d.Colors) > 0 && len(d.Table) > 0:
		return nil, fmt.Errorf("%w: %s: colors and table are exclusive", ErrInvalidDefinition, name)
	case len(d.Table) > 0:
		return d.buildTable()
	case len(d.Colors) > 0:
		return d.buildBlend()
	default:
		return nil, fmt.Errorf("%w: %s: needs colors or table", ErrInvalidDefinition, name)
	}
}

func (d Definition) buildTable() (Gradient, error) {
	out := make(Listed, 0, len(d.Table))
	for i, s := range d.Table {
		c, err := colorful.Hex(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: table[%d] %q: %v", ErrInvalidDefinition, d.Name, i, s, err)
		}
		// Exact k/255 so every byte survives Sample.Scale unchanged.
		r, g, b := c.RGB255()
		out = append(out, palette.Sample{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1})
	}
	return out, nil
}

func (d Definition) buildBlend() (Gradient, error) {
	b := colorgrad.NewGradient().HtmlColors(d.Colors...)
	if len(d.Domain) > 0 {
		if len(d.Domain) != 2 && len(d.Domain) != len(d.Colors) {
			return nil, fmt.Errorf("%w: %s: domain needs 2 or %d positions, got %d",
				ErrInvalidDefinition, d.Name, len(d.Colors), len(d.Domain))
		}
		b = b.Domain(d.Domain...)
	}

	switch strings.ToLower(d.Blend) {
	case "", "rgb":
		b = b.Mode(colorgrad.BlendRgb)
	case "linear-rgb", "linear_rgb":
		b = b.Mode(colorgrad.BlendLinearRgb)
	case "oklab":
		b = b.Mode(colorgrad.BlendOklab)
	default:
		return nil, fmt.Errorf("%w: %s: unknown blend %q", ErrInvalidDefinition, d.Name, d.Blend)
	}

	switch strings.ToLower(d.Interpolation) {
	case "", "linear":
		b = b.Interpolation(colorgrad.InterpolationLinear)
	case "basis":
		b = b.Interpolation(colorgrad.InterpolationBasis)
	case "catmull-rom", "catmull_rom":
		b = b.Interpolation(colorgrad.InterpolationCatmullRom)
	default:
		return nil, fmt.Errorf("%w: %s: unknown interpolation %q", ErrInvalidDefinition, d.Name, d.Interpolation)
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
	}
	return fromColorgrad(g), nil
}
