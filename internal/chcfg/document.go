package chcfg

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Document is a ChibiOS board configuration.
type Document struct {
	XMLName        xml.Name `xml:"board"`
	XSI            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:noNamespaceSchemaLocation,attr"`

	Settings       Settings `xml:"configuration_settings"`
	BoardName      string   `xml:"board_name"`
	BoardID        string   `xml:"board_id"`
	BoardFunctions string   `xml:"board_functions"`
	Subtype        string   `xml:"subtype"`
	Clocks         Clocks   `xml:"clocks"`
	Ports          Ports    `xml:"ports"`
}

// Settings configures the board file generator.
type Settings struct {
	TemplatesPath string `xml:"templates_path"`
	OutputPath    string `xml:"output_path"`
	HALVersion    string `xml:"hal_version"`
}

// Clocks holds the oscillator and supply settings.
type Clocks struct {
	HSEFrequency string     `xml:"HSEFrequency,attr"`
	HSEBypass    string     `xml:"HSEBypass,attr"`
	LSEFrequency string     `xml:"LSEFrequency,attr"`
	LSEBypass    string     `xml:"LSEBypass,attr"`
	LSEDrive     string     `xml:"LSEDrive,attr,omitempty"`
	VDD          string     `xml:"VDD,attr"`
	Extra        []xml.Attr `xml:",any,attr"`
}

// Ports lists the GPIO ports. Element names come from Port.XMLName.
type Ports struct {
	Ports []Port
}

// Port is one GPIO port, e.g. <GPIOA>.
type Port struct {
	XMLName xml.Name
	Pins    []Pin
}

// Pin is one pin of a port, e.g. <pin5>.
type Pin struct {
	XMLName      xml.Name
	ID           string     `xml:"ID,attr"`
	Type         string     `xml:"Type,attr"`
	Level        string     `xml:"Level,attr"`
	Speed        string     `xml:"Speed,attr"`
	Resistor     string     `xml:"Resistor,attr"`
	Mode         string     `xml:"Mode,attr"`
	Alternate    string     `xml:"Alternate,attr"`
	AnalogSwitch string     `xml:"AnalogSwitch,attr,omitempty"`
	PinLock      string     `xml:"PinLock,attr,omitempty"`
	Extra        []xml.Attr `xml:",any,attr"`
}

// WriteTo serializes the document as indented UTF-8 XML with a
// declaration.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return cw.n, err
	}
	if err := enc.Close(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

// WriteFile writes the document to path.
func WriteFile(d *Document, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if _, err := d.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
