// Package dsl parses the small `.letter` input format:
//
//	letter leave {
//	  department: "CSE"
//	  from: "Dr. A"
//	  to: "HoD CSE"
//	  subject: "Leave request"
//	  body: "I request leave..."
//	        "Thanking you."
//	}
//
// A field may carry several adjacent strings; they are joined with newlines.
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	letterLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:{}]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(letterLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node for a `.letter` file.
type Document struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"'letter' @Ident?"`
	Fields []*Field       `parser:"'{' @@* '}'"`
}

// Field is one `key: "value" ...` assignment.
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Parts []string       `parser:"@String+"`
}

// Value unquotes every part and joins them with newlines.
func (f *Field) Value() (string, error) {
	lines := make([]string, 0, len(f.Parts))
	for _, raw := range f.Parts {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return "", fmt.Errorf("%s: field %q: invalid string %s: %w", f.Pos, f.Key, raw, err)
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

// Lookup returns the first field whose key matches name case-insensitively.
func (d *Document) Lookup(name string) (*Field, bool) {
	if d == nil {
		return nil, false
	}
	for _, f := range d.Fields {
		if strings.EqualFold(f.Key, name) {
			return f, true
		}
	}
	return nil, false
}

// Parse parses `.letter` content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses `.letter` content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
