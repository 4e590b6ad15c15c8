// Package ioc reads STM32CubeMX project files.
//
// A project file is a flat list of "key=value" lines. Lines starting
// with '#' are comments and the first blank line ends the property
// section.
package ioc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Keys holding the part number, in order of preference.
var partNumberKeys = []string{"PCC.PartNumber", "Mcu.UserName"}

// Properties is the property section of a project file.
type Properties struct {
	values map[string]string
	keys   []string
}

// New builds a property set from key/value pairs given as
// alternating arguments. Intended for tests and tooling.
func New(kv ...string) *Properties {
	p := &Properties{values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// LoadFile reads the project file at path.
func LoadFile(path string) (*Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project file %s: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	return p, nil
}

// Parse reads properties from r.
func Parse(r io.Reader) (*Properties, error) {
	p := &Properties{values: map[string]string{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		if line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		p.Set(key, value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Set stores a property. A repeated key keeps its original position.
func (p *Properties) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in file order.
func (p *Properties) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p *Properties) Len() int { return len(p.keys) }

// PartNumber returns the part number the project was made for.
func (p *Properties) PartNumber() (string, bool) {
	for _, k := range partNumberKeys {
		if v, ok := p.values[k]; ok {
			return v, true
		}
	}
	return "", false
}
