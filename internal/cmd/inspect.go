package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	toml "github.com/pelletier/go-toml"
	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"

	"github.com/chibios-tools/ioc2chcfg/internal/mcu"
)

// Inspect prints the pins of a CubeMX project as they would be configured.
type Inspect struct {
	Project `embed:""`

	Format string `help:"Output format" enum:"auto,text,json,yaml,toml,dump" default:"auto" env:"IOC2CHCFG_FORMAT"`
	All    bool   `help:"Include pins the project does not configure"`

	out io.Writer
}

// Report is the inspected state of a project.
type Report struct {
	PartNumber  string        `json:"partNumber" yaml:"partNumber" toml:"partNumber"`
	Name        string        `json:"name" yaml:"name" toml:"name"`
	Family      string        `json:"family" yaml:"family" toml:"family"`
	GPIOVersion string        `json:"gpioVersion,omitempty" yaml:"gpioVersion,omitempty" toml:"gpioVersion,omitempty"`
	Clocks      ClockReport   `json:"clocks" yaml:"clocks" toml:"clocks"`
	Overlay     OverlayReport `json:"overlay" yaml:"overlay" toml:"overlay"`
	Pins        []PinReport   `json:"pins" yaml:"pins" toml:"pins"`
}

// ClockReport holds the board clock settings found in the project.
type ClockReport struct {
	HSEFrequency string `json:"hseFrequency,omitempty" yaml:"hseFrequency,omitempty" toml:"hseFrequency,omitempty"`
	HSEBypass    string `json:"hseBypass,omitempty" yaml:"hseBypass,omitempty" toml:"hseBypass,omitempty"`
	LSEFrequency string `json:"lseFrequency,omitempty" yaml:"lseFrequency,omitempty" toml:"lseFrequency,omitempty"`
	LSEBypass    string `json:"lseBypass,omitempty" yaml:"lseBypass,omitempty" toml:"lseBypass,omitempty"`
	VDD          string `json:"vdd,omitempty" yaml:"vdd,omitempty" toml:"vdd,omitempty"`
}

// OverlayReport mirrors mcu.OverlayStats.
type OverlayReport struct {
	Applied int `json:"applied" yaml:"applied" toml:"applied"`
	Pins    int `json:"pins" yaml:"pins" toml:"pins"`
	Stale   int `json:"stale" yaml:"stale" toml:"stale"`
	Ignored int `json:"ignored" yaml:"ignored" toml:"ignored"`
}

// PinReport is one GPIO pin.
type PinReport struct {
	Name         string `json:"name" yaml:"name" toml:"name"`
	Vendor       string `json:"vendor,omitempty" yaml:"vendor,omitempty" toml:"vendor,omitempty"`
	Position     string `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	ID           string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Signal       string `json:"signal,omitempty" yaml:"signal,omitempty" toml:"signal,omitempty"`
	Mode         string `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Alternate    string `json:"alternate,omitempty" yaml:"alternate,omitempty" toml:"alternate,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Level        string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty"`
	Speed        string `json:"speed,omitempty" yaml:"speed,omitempty" toml:"speed,omitempty"`
	Resistor     string `json:"resistor,omitempty" yaml:"resistor,omitempty" toml:"resistor,omitempty"`
	AnalogSwitch string `json:"analogSwitch,omitempty" yaml:"analogSwitch,omitempty" toml:"analogSwitch,omitempty"`
	PinLock      string `json:"pinLock,omitempty" yaml:"pinLock,omitempty" toml:"pinLock,omitempty"`
}

// NewReport describes part. Pins the project leaves alone are listed only
// when all is set.
func NewReport(part *mcu.Part, st mcu.OverlayStats, all bool) Report {
	r := Report{
		PartNumber:  part.PartNumber,
		Name:        part.Name,
		Family:      string(part.Family),
		GPIOVersion: part.GPIOVersion,
		Clocks: ClockReport{
			HSEFrequency: part.HSEClock,
			HSEBypass:    part.HSEBypass,
			LSEFrequency: part.LSEClock,
			LSEBypass:    part.LSEBypass,
			VDD:          part.VDD,
		},
		Overlay: OverlayReport(st),
		Pins:    []PinReport{},
	}
	for _, pin := range part.SortedPins() {
		if !all && !pin.Defined() {
			continue
		}
		r.Pins = append(r.Pins, PinReport{
			Name:         pin.Name,
			Vendor:       pin.VendorName,
			Position:     pin.Position,
			ID:           pin.ID,
			Signal:       pin.Signal,
			Mode:         string(pin.Mode),
			Alternate:    pin.AlternateString(),
			Type:         pin.Type,
			Level:        pin.Level,
			Speed:        pin.Speed,
			Resistor:     pin.Resistor,
			AnalogSwitch: pin.AnalogSwitch,
			PinLock:      pin.PinLock,
		})
	}
	return r
}

// Run is called by Kong when the inspect command is executed.
func (c *Inspect) Run(logger *slog.Logger) error {
	part, st, err := c.Load(logger)
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	return Render(out, resolveFormat(c.Format, out), NewReport(part, st, c.All))
}

// resolveFormat replaces "auto" by text on a terminal and yaml elsewhere.
func resolveFormat(format string, out io.Writer) string {
	if format != "auto" && format != "" {
		return format
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "yaml"
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Render writes the report in the given format.
func Render(w io.Writer, format string, r Report) error {
	switch format {
	case "text":
		return renderText(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		data, err := toml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "dump":
		dumpConfig.Fdump(w, r)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

var (
	titleColor = color.New(color.Bold)
	staleColor = color.New(color.FgYellow)
)

func renderText(w io.Writer, r Report) error {
	titleColor.Fprintf(w, "%s (%s) family %s\n", r.PartNumber, r.Name, r.Family)
	fmt.Fprintf(w, "HSE %s bypass %s, LSE %s bypass %s, VDD %s\n",
		orDash(r.Clocks.HSEFrequency), orDash(r.Clocks.HSEBypass),
		orDash(r.Clocks.LSEFrequency), orDash(r.Clocks.LSEBypass), orDash(r.Clocks.VDD))
	overlay := fmt.Sprintf("%d properties on %d pins, %d stale, %d ignored", r.Overlay.Applied, r.Overlay.Pins, r.Overlay.Stale, r.Overlay.Ignored)
	if r.Overlay.Stale > 0 {
		overlay = staleColor.Sprint(overlay)
	}
	fmt.Fprintf(w, "%s\n\n", overlay)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tVENDOR\tMODE\tAF\tTYPE\tLEVEL\tSPEED\tRESISTOR\tID\tSIGNAL")
	for _, p := range r.Pins {
		cells := []string{p.Name, p.Vendor, p.Mode, p.Alternate, p.Type, p.Level, p.Speed, p.Resistor, p.ID, p.Signal}
		for i, c := range cells {
			cells[i] = orDash(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d pins\n", len(r.Pins))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
