// Package cubedb reads the parts of the STM32CubeMX database that describe
// microcontrollers and their GPIO capabilities.
//
// Layout below the CubeMX installation folder:
//
//	db/mcu/families.xml              part index
//	db/mcu/<Name>.xml                pins and IP blocks of one part
//	db/mcu/IP/GPIO-<ver>_Modes.xml   GPIO capabilities per IP version
package cubedb

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	mcuDir       = "db/mcu"
	ipDir        = "db/mcu/IP"
	familiesFile = "db/mcu/families.xml"
)

// ErrNotDir is returned by Open when the root is not a directory.
var ErrNotDir = errors.New("not a directory")

// DB is a read-only view of a CubeMX installation.
type DB struct {
	Root string
}

// Open checks that root is a directory and returns a DB reading from it.
func Open(root string) (*DB, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDir)
	}
	return &DB{Root: root}, nil
}

// FamiliesPath returns the location of the part index.
func (db *DB) FamiliesPath() string {
	return filepath.Join(db.Root, filepath.FromSlash(familiesFile))
}

// McuPath returns the location of a part description file.
func (db *DB) McuPath(name string) string {
	return filepath.Join(db.Root, filepath.FromSlash(mcuDir), name+".xml")
}

// GPIOModesPath returns the location of a GPIO capability file.
func (db *DB) GPIOModesPath(version string) string {
	return filepath.Join(db.Root, filepath.FromSlash(ipDir), "GPIO-"+version+"_Modes.xml")
}

// FindMcu returns every index entry whose RefName equals refName.
func (db *DB) FindMcu(refName string) ([]McuRef, error) {
	var idx familiesIndex
	if err := decodeFile(db.FamiliesPath(), &idx); err != nil {
		return nil, err
	}
	var out []McuRef
	for _, fam := range idx.Families {
		for _, sub := range fam.SubFamilies {
			for _, m := range sub.Mcus {
				if m.RefName != refName {
					continue
				}
				m.Family = fam.Name
				m.SubFamily = sub.Name
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// LoadMcu reads the description of the part with the given file name.
func (db *DB) LoadMcu(name string) (*Mcu, error) {
	var m Mcu
	if err := decodeFile(db.McuPath(name), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadGPIOModes reads the GPIO capability file of an IP version.
func (db *DB) LoadGPIOModes(version string) (*GPIOModes, error) {
	var g GPIOModes
	if err := decodeFile(db.GPIOModesPath(version), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := decode(f, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, v any) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return dec.Decode(v)
}

// Some database files declare a legacy encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
