package gradient

import (
	"errors"
	"math"
	"testing"

	"falsecolor/palette"
)

func inUnit(s palette.Sample) bool {
	for _, v := range []float64{s.R, s.G, s.B} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestResolveUnknown(t *testing.T) {
	for _, name := range []string{"not_a_real_gradient", "", "_r", "brewer:NotAScheme", "PLASMA"} {
		g, err := Resolve(name)
		if g != nil {
			t.Errorf("%q: got gradient %T", name, g)
		}
		var unknown *UnknownGradientError
		if !errors.As(err, &unknown) {
			t.Fatalf("%q: err = %v, want *UnknownGradientError", name, err)
		}
		if unknown.Name != name {
			t.Errorf("%q: error names %q", name, unknown.Name)
		}
	}
}

func TestDefaultNameResolves(t *testing.T) {
	g, err := Resolve(DefaultName)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", DefaultName, err)
	}
	samples := SampleN(g, palette.Size)
	if len(samples) != palette.Size {
		t.Fatalf("got %d samples", len(samples))
	}
	first, last := samples[0], samples[len(samples)-1]
	// plasma runs from dark blue-violet to yellow.
	if !(first.B > first.G && last.R > last.B && last.G > last.B) {
		t.Fatalf("plasma endpoints look wrong: %+v .. %+v", first, last)
	}
}

func TestEveryRegisteredNameSamples(t *testing.T) {
	reg := Default()
	names := reg.Names()
	if len(names) == 0 {
		t.Fatal("no registered gradients")
	}
	for _, name := range names {
		for _, n := range []string{name, name + reverseSuffix} {
			g, err := reg.Resolve(n)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", n, err)
			}
			for i, s := range SampleN(g, palette.Size) {
				if !inUnit(s) {
					t.Fatalf("%s: sample %d out of range: %+v", n, i, s)
				}
			}
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Default().Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	want := map[string]bool{"plasma": false, "viridis": false, "nipy_spectral": false, "coolwarm": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("%q not registered", n)
		}
	}
}

func TestReverseSuffix(t *testing.T) {
	for _, name := range []string{"gray", "plasma", "hot"} {
		g, err := Resolve(name)
		if err != nil {
			t.Fatal(err)
		}
		r, err := Resolve(name + "_r")
		if err != nil {
			t.Fatal(err)
		}
		fwd := SampleN(g, palette.Size)
		rev := SampleN(r, palette.Size)
		for i := range fwd {
			if fwd[i] != rev[palette.Size-1-i] {
				t.Fatalf("%s_r: sample %d = %+v, want %+v", name, i, rev[palette.Size-1-i], fwd[i])
			}
		}
	}
}

func TestReverseTwiceIsIdentity(t *testing.T) {
	g := Func(func(t float64) palette.Sample { return palette.Gray(t) })
	rr := Reverse(Reverse(g))
	for i := 0; i < 10; i++ {
		if rr.Sample(i, 10) != g.Sample(i, 10) {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestSampleNUsesDiscreteTableVerbatim(t *testing.T) {
	table := make(Listed, palette.Size)
	for i := range table {
		// Values that a resampling would not reproduce exactly.
		table[i] = palette.Sample{R: float64(i%7) / 7, G: float64(i%3) / 3, B: 0.5, A: 1}
	}
	got := SampleN(table, palette.Size)
	for i := range got {
		if got[i] != table[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], table[i])
		}
	}
	got[0] = palette.Sample{}
	if table[0] == got[0] {
		t.Fatal("SampleN returned the table's backing array")
	}
}

func TestListedSteps(t *testing.T) {
	l := Listed{palette.Gray(0), palette.Gray(0.25), palette.Gray(0.5), palette.Gray(1)}
	got := SampleN(l, 8)
	want := []float64{0, 0, 0.25, 0.25, 0.5, 0.5, 1, 1}
	for i := range want {
		if got[i].R != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i].R, want[i])
		}
	}
}

func TestSegmentedValues(t *testing.T) {
	tests := []struct {
		name    string
		i       int
		r, g, b float64
	}{
		{"gray", 0, 0, 0, 0},
		{"gray", 51, 0.2, 0.2, 0.2},
		{"gray", 255, 1, 1, 1},
		{"jet", 0, 0, 0, 0.5},
		{"jet", 255, 0.5, 0, 0},
		{"hot", 0, 0.0416, 0, 0},
		{"hot", 255, 1, 1, 1},
		{"nipy_spectral", 0, 0, 0, 0},
		{"nipy_spectral", 153, 0, 1, 0},
		{"nipy_spectral", 255, 0.8, 0.8, 0.8},
	}
	for _, tt := range tests {
		s := segmentedMaps[tt.name].Sample(tt.i, palette.Size)
		if !near(s.R, tt.r) || !near(s.G, tt.g) || !near(s.B, tt.b) {
			t.Errorf("%s[%d] = (%v,%v,%v), want (%v,%v,%v)", tt.name, tt.i, s.R, s.G, s.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestEvalChannelDiscontinuity(t *testing.T) {
	ch := []anchor{{0, 0, 0}, {0.5, 1, 0}, {1, 1, 1}}
	for _, tt := range []struct {
		i    int
		want float64
	}{{0, 0}, {1, 0.5}, {2, 1}, {3, 0.5}, {4, 1}} {
		if v := evalChannel(ch, tt.i, 5); !near(v, tt.want) {
			t.Errorf("i=%d -> %v, want %v", tt.i, v, tt.want)
		}
	}
}

// nipySpectralFirmware is the byte-swapped nipy_spectral table shipped with the
// ST7789 FFT waterfall firmware, generated with matplotlib.
var nipySpectralFirmware = [palette.Size]uint16{
	0x0000, 0x0108, 0x0210, 0x0318, 0x0520, 0x0628, 0x0738, 0x0940,
	0x0a48, 0x0b50, 0x0d58, 0x0e60, 0x0f70, 0x1170, 0x1178, 0x1178,
	0x1178, 0x1178, 0x1178, 0x1278, 0x1280, 0x1280, 0x1280, 0x1280,
	0x1280, 0x1380, 0x1380, 0x1370, 0x1368, 0x1360, 0x1350, 0x1448,
	0x1440, 0x1430, 0x1428, 0x1420, 0x1410, 0x1508, 0x1500, 0x1500,
	0x1600, 0x1600, 0x1700, 0x1700, 0x1800, 0x1800, 0x1900, 0x1900,
	0x1a00, 0x1a00, 0x1b00, 0x1b00, 0x5b00, 0x9b00, 0xfb00, 0x3b01,
	0x7b01, 0xdb01, 0x1b02, 0x5b02, 0xbb02, 0xfb02, 0x3b03, 0x9b03,
	0xbb03, 0xdb03, 0xfb03, 0xfb03, 0x1b04, 0x3b04, 0x3b04, 0x5b04,
	0x7b04, 0x7b04, 0x9b04, 0xbb04, 0xbb04, 0xdb04, 0xda04, 0xfa04,
	0xf904, 0xf904, 0x1805, 0x1805, 0x1705, 0x3705, 0x3605, 0x3605,
	0x5505, 0x5505, 0x5505, 0x5405, 0x5405, 0x5405, 0x5305, 0x5305,
	0x5205, 0x5205, 0x5205, 0x5105, 0x5105, 0x5105, 0x5005, 0x4f05,
	0x2e05, 0x2c05, 0x2b05, 0x0a05, 0x0805, 0x0705, 0xe604, 0xe404,
	0xe304, 0xc204, 0xc004, 0xc004, 0xe004, 0xe004, 0x0005, 0x2005,
	0x2005, 0x4005, 0x6005, 0x6005, 0x8005, 0xa005, 0xa005, 0xc005,
	0xe005, 0xe005, 0x0006, 0x2006, 0x2006, 0x4006, 0x6006, 0x6006,
	0x8006, 0xa006, 0xa006, 0xc006, 0xe006, 0xe006, 0x0007, 0x2007,
	0x2007, 0x4007, 0x6007, 0x6007, 0x8007, 0xa007, 0xa007, 0xc007,
	0xe007, 0xe007, 0xe00f, 0xe01f, 0xe02f, 0xe03f, 0xe04f, 0xe057,
	0xe067, 0xe077, 0xe087, 0xe097, 0xe0a7, 0xe0af, 0xe0bf, 0xe0bf,
	0xc0c7, 0xc0c7, 0xc0cf, 0xa0cf, 0xa0d7, 0xa0d7, 0x80df, 0x80df,
	0x80e7, 0x60e7, 0x60ef, 0x60ef, 0x40ef, 0x20f7, 0x20f7, 0x00f7,
	0xe0f6, 0xe0f6, 0xc0f6, 0xa0fe, 0xa0fe, 0x80fe, 0x60fe, 0x60fe,
	0x40fe, 0x20fe, 0x00fe, 0xe0fd, 0xc0fd, 0xa0fd, 0x80fd, 0x60fd,
	0x40fd, 0x20fd, 0x00fd, 0xe0fc, 0xc0fc, 0x60fc, 0x00fc, 0xa0fb,
	0x40fb, 0xe0fa, 0x80fa, 0x20fa, 0xc0f9, 0x60f9, 0x00f9, 0xa0f8,
	0x40f8, 0x00f8, 0x00f8, 0x00f8, 0x00f0, 0x00f0, 0x00f0, 0x00e8,
	0x00e8, 0x00e8, 0x00e0, 0x00e0, 0x00e0, 0x00d8, 0x00d8, 0x00d8,
	0x00d8, 0x00d8, 0x00d0, 0x00d0, 0x00d0, 0x00d0, 0x00d0, 0x00d0,
	0x00c8, 0x00c8, 0x00c8, 0x61c8, 0xc3c8, 0x65c9, 0xe7c9, 0x69ca,
	0xebca, 0x6dcb, 0xefcb, 0x71cc, 0xf3cc, 0x75cd, 0xf7cd, 0x79ce,
}

func TestNipySpectralMatchesFirmwareTable(t *testing.T) {
	g, err := Resolve("nipy_spectral")
	if err != nil {
		t.Fatal(err)
	}
	tab, err := palette.Quantize(SampleN(g, palette.Size), palette.Options{SwapBytes: true})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range nipySpectralFirmware {
		if tab[i] != want {
			t.Errorf("entry %d = %#04x, want %#04x", i, tab[i], want)
		}
	}
}

func TestRegistryOverride(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register("plasma", func() Gradient { return Func(palette.Gray) })
	g, err := r.Resolve("plasma")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(Func); !ok {
		t.Fatalf("override ignored, got %T", g)
	}
	// The shared registry is untouched.
	if g, _ := Resolve("plasma"); g == nil {
		t.Fatal("default plasma vanished")
	} else if _, ok := g.(Func); ok {
		t.Fatal("override leaked into the default registry")
	}
}

func TestPrefixResolverError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.RegisterPrefix("x:", func(string) (Gradient, bool, error) { return nil, false, boom })
	if _, err := r.Resolve("x:y"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	var unknown *UnknownGradientError
	if _, err := r.Resolve("y"); !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want *UnknownGradientError", err)
	}
}

func quantizeName(t *testing.T, name string) (Gradient, palette.Table) {
	t.Helper()
	g, err := Resolve(name)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}
	tab, err := palette.Quantize(SampleN(g, palette.Size), palette.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return g, tab
}

func TestListedMapsUsedVerbatim(t *testing.T) {
	tests := []struct {
		name      string
		head      [3]uint16
		mid, last uint16
	}{
		{"plasma", [3]uint16{0x0830, 0x1030, 0x1031}, 0xca2e, 0xefc4},
		{"viridis", [3]uint16{0x400a, 0x400a, 0x400a}, 0x2491, 0xff24},
		{"inferno", [3]uint16{0x0000, 0x0000, 0x0000}, 0xb9aa, 0xfff4},
		{"magma", [3]uint16{0x0000, 0x0000, 0x0000}, 0xb1af, 0xfff7},
	}
	for _, tt := range tests {
		g, tab := quantizeName(t, tt.name)
		if d, ok := g.(Discrete); !ok || len(d.Colors()) != palette.Size {
			t.Fatalf("%s: got %T, want a %d entry table", tt.name, g, palette.Size)
		}
		got := [5]uint16{tab[0], tab[1], tab[2], tab[128], tab[255]}
		want := [5]uint16{tt.head[0], tt.head[1], tt.head[2], tt.mid, tt.last}
		if got != want {
			t.Errorf("%s: entries 0,1,2,128,255 = %#04x, want %#04x", tt.name, got, want)
		}
	}
}

func TestBrewerQualitativeIsStepped(t *testing.T) {
	g, tab := quantizeName(t, "brewer:Set1")
	d, ok := g.(Discrete)
	if !ok {
		t.Fatalf("Set1 is %T, want Discrete", g)
	}
	if n := len(d.Colors()); n != 9 {
		t.Fatalf("Set1 has %d colors, want 9", n)
	}
	// #e41a1c fills the first bin.
	for i := 0; i < palette.RowLen; i++ {
		if tab[i] != 0xe0c3 {
			t.Fatalf("entry %d = %#04x, want 0xe0c3", i, tab[i])
		}
	}
	if tab[255] != 0x9cd3 {
		t.Fatalf("last entry = %#04x, want 0x9cd3", tab[255])
	}
}

func TestBrewerReversed(t *testing.T) {
	_, fwd := quantizeName(t, "brewer:Set1")
	_, rev := quantizeName(t, "brewer:Set1_r")
	if rev[0] != 0x9cd3 || rev[255] != 0xe0c3 {
		t.Fatalf("Set1_r ends = %#04x .. %#04x, want 0x9cd3 .. 0xe0c3", rev[0], rev[255])
	}
	// The middle of nine bins is its own mirror.
	if rev[128] != fwd[128] {
		t.Fatalf("Set1_r[128] = %#04x, want %#04x", rev[128], fwd[128])
	}
}

func TestBrewerDivergingIsBlended(t *testing.T) {
	g, tab := quantizeName(t, "brewer:RdBu")
	if _, ok := g.(Discrete); ok {
		t.Fatalf("RdBu is %T, want a blended gradient", g)
	}
	distinct := make(map[uint16]bool)
	for _, v := range tab {
		distinct[v] = true
	}
	// RdBu publishes 11 colors at most; blending yields many more.
	if len(distinct) <= 11 {
		t.Fatalf("RdBu has %d distinct entries, want more than 11", len(distinct))
	}
	s := SampleN(g, palette.Size)
	// #67001f and #053061.
	if !nearTol(s[0].R, 0x67/255.0, 1e-6) || !nearTol(s[0].B, 0x1f/255.0, 1e-6) {
		t.Errorf("first = %+v, want #67001f", s[0])
	}
	if !nearTol(s[255].G, 0x30/255.0, 1e-6) || !nearTol(s[255].B, 0x61/255.0, 1e-6) {
		t.Errorf("last = %+v, want #053061", s[255])
	}
}

func TestCoolwarmEndpoints(t *testing.T) {
	g, err := Resolve("coolwarm")
	if err != nil {
		t.Fatal(err)
	}
	s := SampleN(g, palette.Size)
	tests := []struct {
		i       int
		r, g, b float64
	}{
		{0, 59, 76, 192},
		{255, 180, 4, 38},
	}
	for _, tt := range tests {
		got := s[tt.i]
		if !nearTol(got.R, tt.r/255, 0.01) || !nearTol(got.G, tt.g/255, 0.01) || !nearTol(got.B, tt.b/255, 0.01) {
			t.Errorf("coolwarm[%d] = %+v, want ~(%v, %v, %v)/255", tt.i, got, tt.r, tt.g, tt.b)
		}
	}
}

func nearTol(a, b, tol float64) bool { return math.Abs(a-b) < tol }
