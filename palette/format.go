package palette

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
)

// RowLen is the number of entries printed per line.
const RowLen = 16

// FormatTable writes the table as Size/RowLen lines of "0x%04x" tokens joined by
// ", ". Every line, the last included, ends with ",\n".
func FormatTable(w io.Writer, t Table) error {
	var buf bytes.Buffer
	writeRows(&buf, t, "")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeRows(buf *bytes.Buffer, t Table, indent string) {
	for row := 0; row < Size; row += RowLen {
		buf.WriteString(indent)
		for i := row; i < row+RowLen; i++ {
			if i > row {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "0x%04x", t[i])
		}
		buf.WriteString(",\n")
	}
}

// FormatC writes the table as a C array definition:
//
//	const uint16_t NAME[] = {
//	    0x0000, ...,
//	};
func FormatC(w io.Writer, ctype, name string, t Table) error {
	if ctype == "" || name == "" {
		return fmt.Errorf("palette: C output needs a type and a name")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "const %s %s[] = {\n", ctype, name)
	writeRows(&buf, t, "    ")
	buf.WriteString("};\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatGo writes a gofmt-clean Go source file declaring name as a [Size]uint16.
func FormatGo(w io.Writer, pkg, name, comment string, t Table) error {
	if pkg == "" || name == "" {
		return fmt.Errorf("palette: Go output needs a package and a name")
	}
	var buf bytes.Buffer
	buf.WriteString("// Code generated by mkpalette. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	if comment != "" {
		fmt.Fprintf(&buf, "// %s\n", comment)
	}
	fmt.Fprintf(&buf, "var %s = [%d]uint16{\n", name, Size)
	writeRows(&buf, t, "\t")
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("palette: format Go output: %w", err)
	}
	_, err = w.Write(src)
	return err
}
