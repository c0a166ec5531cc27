package palette

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var tokenRE = regexp.MustCompile(`^0x[0-9a-f]{4}$`)

func rampTable() Table {
	var t Table
	for i := range t {
		t[i] = uint16(i * 257)
	}
	return t
}

func TestFormatTableShape(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTable(&buf, rampTable()); err != nil {
		t.Fatalf("FormatTable: %v", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, ",\n") {
		t.Fatalf("output does not end with \",\\n\": %q", out[len(out)-8:])
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != Size/RowLen {
		t.Fatalf("got %d lines, want %d", len(lines), Size/RowLen)
	}
	for i, line := range lines {
		if !strings.HasSuffix(line, ",") {
			t.Fatalf("line %d lacks trailing comma: %q", i, line)
		}
		tokens := strings.Split(strings.TrimSuffix(line, ","), ", ")
		if len(tokens) != RowLen {
			t.Fatalf("line %d has %d tokens", i, len(tokens))
		}
		for _, tok := range tokens {
			if !tokenRE.MatchString(tok) {
				t.Fatalf("line %d: bad token %q", i, tok)
			}
		}
	}
	if lines[0][:14] != "0x0000, 0x0101" {
		t.Fatalf("first line starts %q", lines[0][:14])
	}
	if !strings.HasSuffix(lines[15], "0xffff,") {
		t.Fatalf("last line ends %q", lines[15])
	}
}

func TestFormatCRoundTrip(t *testing.T) {
	want := rampTable()
	var buf bytes.Buffer
	if err := FormatC(&buf, "Pen", "FALSE_COLOR_MAP", want); err != nil {
		t.Fatalf("FormatC: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "const Pen FALSE_COLOR_MAP[] = {\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.HasSuffix(out, "};\n") {
		t.Fatalf("unexpected footer")
	}

	body := out[strings.Index(out, "{")+1 : strings.LastIndex(out, "}")]
	var got []uint16
	for _, f := range strings.Split(body, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseUint(f, 0, 16)
		if err != nil {
			t.Fatalf("parse %q: %v", f, err)
		}
		got = append(got, uint16(v))
	}
	if len(got) != Size {
		t.Fatalf("parsed %d values", len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("entry %d: %#04x, want %#04x", i, got[i], want[i])
		}
	}
}

func TestFormatGo(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatGo(&buf, "lut", "plasma565", "plasma, RGB565", rampTable()); err != nil {
		t.Fatalf("FormatGo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"// Code generated by mkpalette. DO NOT EDIT.",
		"package lut",
		"// plasma, RGB565",
		"var plasma565 = [256]uint16{",
		"\t0x0000, 0x0101,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatRequiresNames(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatC(&buf, "", "X", Table{}); err == nil {
		t.Error("FormatC accepted an empty type")
	}
	if err := FormatGo(&buf, "p", "", "", Table{}); err == nil {
		t.Error("FormatGo accepted an empty name")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}
