// Package gradient resolves gradient names to color functions and samples them
// into the fixed-size input that palette.Quantize expects.
package gradient

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"falsecolor/palette"
)

// DefaultName is used when no gradient is requested.
const DefaultName = "plasma"

// reverseSuffix resolves to the mirrored gradient of the base name.
const reverseSuffix = "_r"

// Gradient maps sample i of total to a color.
type Gradient interface {
	Sample(i, total int) palette.Sample
}

// Discrete is implemented by gradients backed by a fixed color table.
type Discrete interface {
	Gradient
	Colors() []palette.Sample
}

// UnknownGradientError reports a name that no source could resolve.
type UnknownGradientError struct {
	Name string
}

func (e *UnknownGradientError) Error() string {
	return fmt.Sprintf("unknown gradient %q", e.Name)
}

// Func is a continuous gradient over t in [0,1].
type Func func(t float64) palette.Sample

func (f Func) Sample(i, total int) palette.Sample {
	return f(position(i, total))
}

// position returns the evenly spaced location of sample i, 0 and 1 included.
func position(i, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(i) / float64(total-1)
}

// Listed is a discrete gradient. Sampling at any other size picks the nearest
// lower bin, so entries show up as steps.
type Listed []palette.Sample

func (l Listed) Colors() []palette.Sample { return l }

func (l Listed) Sample(i, total int) palette.Sample {
	n := len(l)
	if n == 0 {
		return palette.Sample{}
	}
	if total == n {
		return l[i]
	}
	k := int(position(i, total) * float64(n))
	if k >= n {
		k = n - 1
	}
	if k < 0 {
		k = 0
	}
	return l[k]
}

type reversed struct {
	g Gradient
}

func (r reversed) Sample(i, total int) palette.Sample {
	return r.g.Sample(total-1-i, total)
}

// Reverse mirrors g end to end.
func Reverse(g Gradient) Gradient {
	switch g := g.(type) {
	case reversed:
		return g.g
	case Discrete:
		src := g.Colors()
		out := make(Listed, len(src))
		for i, c := range src {
			out[len(src)-1-i] = c
		}
		return out
	}
	return reversed{g: g}
}

// SampleN takes count evenly spaced samples of g. A discrete gradient with
// exactly count entries is returned as is.
func SampleN(g Gradient, count int) []palette.Sample {
	if d, ok := g.(Discrete); ok {
		if colors := d.Colors(); len(colors) == count {
			out := make([]palette.Sample, count)
			copy(out, colors)
			return out
		}
	}
	out := make([]palette.Sample, count)
	for i := range out {
		out[i] = g.Sample(i, count)
	}
	return out
}

// Resolver looks up names under a prefix such as "brewer:". It returns
// ok=false when the name is unknown to it.
type Resolver func(name string) (g Gradient, ok bool, err error)

// Registry maps names to gradients.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]func() Gradient
	prefixes map[string]Resolver
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]func() Gradient),
		prefixes: make(map[string]Resolver),
	}
}

// Register adds or replaces a named gradient constructor.
func (r *Registry) Register(name string, fn func() Gradient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = fn
}

// RegisterPrefix routes every name starting with prefix to res, with the
// prefix stripped.
func (r *Registry) RegisterPrefix(prefix string, res Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes[prefix] = res
}

// Resolve returns the gradient registered under name. A "_r" suffix resolves
// the reversed gradient. Unknown names yield *UnknownGradientError.
func (r *Registry) Resolve(name string) (Gradient, error) {
	g, ok, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if ok {
		return g, nil
	}
	if base, found := strings.CutSuffix(name, reverseSuffix); found && base != "" {
		g, ok, err = r.lookup(base)
		if err != nil {
			return nil, err
		}
		if ok {
			return Reverse(g), nil
		}
	}
	return nil, &UnknownGradientError{Name: name}
}

func (r *Registry) lookup(name string) (Gradient, bool, error) {
	r.mu.RLock()
	fn, ok := r.byName[name]
	var res Resolver
	var rest string
	if !ok {
		for prefix, pr := range r.prefixes {
			if s, found := strings.CutPrefix(name, prefix); found {
				res, rest = pr, s
				break
			}
		}
	}
	r.mu.RUnlock()

	if ok {
		return fn(), true, nil
	}
	if res == nil {
		return nil, false, nil
	}
	g, ok, err := res(rest)
	if err != nil {
		return nil, false, fmt.Errorf("gradient %q: %w", name, err)
	}
	return g, ok, nil
}

// Names returns the registered names in sorted order. Prefixed and reversed
// names are not enumerated.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prefixes returns the registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.prefixes))
	for p := range r.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// NewDefaultRegistry returns a registry holding every built-in source.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerColorgrad(r)
	registerListed(r)
	registerSegmented(r)
	registerMoreland(r)
	r.RegisterPrefix(brewerPrefix, resolveBrewer)
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared built-in registry.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = NewDefaultRegistry() })
	return defaultReg
}

// Resolve looks name up in the default registry.
func Resolve(name string) (Gradient, error) {
	return Default().Resolve(name)
}
