package chcfg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Previous answers lookups of values stored in an existing board
// configuration. Elements are addressed by their path below the root,
// e.g. "configuration_settings/output_path" or "ports/GPIOA/pin5".
//
// A nil *Previous is valid and holds nothing.
type Previous struct {
	texts map[string]string
	attrs map[string][]xml.Attr
}

// ParsePrevious reads an existing board configuration.
func ParsePrevious(r io.Reader) (*Previous, error) {
	p := &Previous{texts: map[string]string{}, attrs: map[string][]xml.Attr{}}
	dec := xml.NewDecoder(r)

	var stack []string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				p.setText(stack, text.String())
			}
			text.Reset()
			stack = append(stack, t.Name.Local)
			if len(stack) > 1 {
				key := path(stack)
				if _, seen := p.attrs[key]; !seen {
					p.attrs[key] = copyAttrs(t.Attr)
				}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element %s", t.Name.Local)
			}
			p.setText(stack, text.String())
			text.Reset()
			stack = stack[:len(stack)-1]
		}
	}
	return p, nil
}

// LoadPrevious reads the board configuration at path.
func LoadPrevious(path string) (*Previous, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board configuration %s: %w", path, err)
	}
	defer f.Close()

	p, err := ParsePrevious(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board configuration %s: %w", path, err)
	}
	return p, nil
}

func path(stack []string) string {
	return strings.Join(stack[1:], "/")
}

// setText keeps the first non-blank text run of an element.
func (p *Previous) setText(stack []string, s string) {
	if len(stack) < 2 || isEmpty(s) {
		return
	}
	key := path(stack)
	if _, ok := p.texts[key]; !ok {
		p.texts[key] = s
	}
}

func copyAttrs(in []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space != "" {
			continue
		}
		out = append(out, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}
	return out
}

// Has reports whether the element at path exists.
func (p *Previous) Has(path string) bool {
	if p == nil {
		return false
	}
	_, ok := p.attrs[path]
	return ok
}

// Text returns the text of the element at path.
func (p *Previous) Text(path string) string {
	if p == nil {
		return ""
	}
	return p.texts[path]
}

// Attr returns the named attribute of the element at path.
func (p *Previous) Attr(path, name string) string {
	if p == nil {
		return ""
	}
	for _, a := range p.attrs[path] {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Attrs returns every attribute of the element at path.
func (p *Previous) Attrs(path string) []xml.Attr {
	if p == nil {
		return nil
	}
	return p.attrs[path]
}
