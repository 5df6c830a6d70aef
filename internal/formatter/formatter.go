package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/parser"
)

// DefaultIndent is two spaces, one level per nesting depth
const DefaultIndent = "  "

// Formatter pretty-prints JSON documents
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{indent: DefaultIndent}
}

// NewFormatterWithIndent creates a Formatter using a custom indent string
func NewFormatterWithIndent(indent string) *Formatter {
	return &Formatter{indent: indent}
}

// Format takes JSON text and returns it indented, keeping member order.
// Numbers are written in their canonical form.
func (f *Formatter) Format(jsonText string) (string, error) {
	if strings.TrimSpace(jsonText) == "" {
		return "", nil
	}

	v, err := parser.ParseString(jsonText)
	if err != nil {
		return "", err
	}

	return f.FormatValue(v)
}

// FormatValue renders a decoded value with indentation
func (f *Formatter) FormatValue(v models.Value) (string, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return "", errors.NewFormatError("failed to encode JSON", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", f.indent); err != nil {
		return "", errors.NewFormatError(fmt.Sprintf("failed to indent JSON (%d bytes)", len(compact)), err)
	}
	return out.String(), nil
}

// FormatOrOriginal formats jsonText, handing it back unchanged when it does
// not parse
func (f *Formatter) FormatOrOriginal(jsonText string) string {
	formatted, err := f.Format(jsonText)
	if err != nil {
		return jsonText
	}
	return formatted
}
