// Package chcfg builds ChibiOS board configuration documents (.chcfg)
// from a resolved part, merging them with an existing configuration.
package chcfg

import (
	"encoding/xml"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/mcu"
	"github.com/chibios-tools/ioc2chcfg/internal/vocab"
)

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Resolve picks the value of a field: the new value when it is not
// blank, else the existing value when it is not blank, else def.
func Resolve(newValue, existing, def string) string {
	if !isEmpty(newValue) {
		return newValue
	}
	if !isEmpty(existing) {
		return existing
	}
	return def
}

// MakeID replaces every character outside [0-9A-Za-z_] with '_'.
func MakeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			return r
		}
		return '_'
	}, s)
}

// BoardSettings are the board level values supplied by the user. Empty
// fields fall back to the existing document, then to the defaults.
type BoardSettings struct {
	OutputPath     string
	HALVersion     string
	BoardName      string
	BoardID        string
	BoardFunctions string
	Subtype        string
}

// Element paths inside the document.
const (
	pathOutputPath     = "configuration_settings/output_path"
	pathHALVersion     = "configuration_settings/hal_version"
	pathBoardName      = "board_name"
	pathBoardID        = "board_id"
	pathBoardFunctions = "board_functions"
	pathSubtype        = "subtype"
	pathClocks         = "clocks"
)

var clockAttrs = []string{"HSEFrequency", "HSEBypass", "LSEFrequency", "LSEBypass", "LSEDrive", "VDD"}

var pinAttrs = []string{"ID", "Type", "Level", "Speed", "Resistor", "Mode", "Alternate", "AnalogSwitch", "PinLock"}

// Emitter builds board configuration documents.
type Emitter struct {
	Logger *slog.Logger
}

func (e *Emitter) log() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Emit builds the board configuration of part. prev may be nil.
func (e *Emitter) Emit(part *mcu.Part, board BoardSettings, prev *Previous) *Document {
	family := part.ResolvedFamily()
	info := family.Info()

	doc := &Document{
		XSI:            xsiNamespace,
		SchemaLocation: info.SchemaURL,
		Settings: Settings{
			TemplatesPath: info.TemplatesPath,
			OutputPath:    Resolve(board.OutputPath, prev.Text(pathOutputPath), vocab.DefaultOutputPath),
			HALVersion:    Resolve(board.HALVersion, prev.Text(pathHALVersion), vocab.DefaultHALVersion),
		},
		BoardName:      Resolve(board.BoardName, prev.Text(pathBoardName), vocab.DefaultBoardName),
		BoardID:        Resolve(board.BoardID, prev.Text(pathBoardID), vocab.DefaultBoardID),
		BoardFunctions: Resolve(board.BoardFunctions, prev.Text(pathBoardFunctions), ""),
		Subtype:        Resolve(board.Subtype, prev.Text(pathSubtype), string(family)),
		Clocks:         e.clocks(part, info, prev),
	}

	pins := 0
	for _, port := range part.PortNames() {
		el := Port{XMLName: xml.Name{Local: "GPIO" + port}}
		for _, n := range part.Ports[port] {
			pin, ok := part.Pin(port, n)
			if !ok {
				continue
			}
			el.Pins = append(el.Pins, e.pin(pin, info, prev))
			pins++
		}
		doc.Ports.Ports = append(doc.Ports.Ports, el)
	}

	e.log().Debug("board configuration built", "family", family, "ports", len(doc.Ports.Ports), "pins", pins, "merged", prev != nil)
	return doc
}

func (e *Emitter) clocks(part *mcu.Part, info vocab.FamilyInfo, prev *Previous) Clocks {
	attr := func(name string) string { return prev.Attr(pathClocks, name) }
	return Clocks{
		HSEFrequency: Resolve(part.HSEClock, attr("HSEFrequency"), vocab.DefaultHSEFrequency),
		HSEBypass:    Resolve(part.HSEBypass, attr("HSEBypass"), vocab.DefaultHSEBypass),
		LSEFrequency: Resolve(part.LSEClock, attr("LSEFrequency"), vocab.DefaultLSEFrequency),
		LSEBypass:    Resolve(part.LSEBypass, attr("LSEBypass"), vocab.DefaultLSEBypass),
		LSEDrive:     Resolve(info.LSEDrive, attr("LSEDrive"), ""),
		VDD:          Resolve(part.VDD, attr("VDD"), vocab.DefaultVDD),
		Extra:        extraAttrs(prev.Attrs(pathClocks), clockAttrs),
	}
}

func (e *Emitter) pin(pin *mcu.Pin, info vocab.FamilyInfo, prev *Previous) Pin {
	name := "pin" + strconv.Itoa(pin.Number)
	key := "ports/GPIO" + pin.Port + "/" + name
	attr := func(a string) string { return prev.Attr(key, a) }

	el := Pin{
		XMLName:   xml.Name{Local: name},
		ID:        MakeID(Resolve(pin.ID, attr("ID"), "")),
		Type:      Resolve(pin.Type, attr("Type"), vocab.DefaultType),
		Level:     Resolve(pin.Level, attr("Level"), vocab.DefaultLevel),
		Speed:     Resolve(pin.Speed, attr("Speed"), vocab.DefaultSpeed),
		Resistor:  Resolve(pin.Resistor, attr("Resistor"), vocab.DefaultResistor),
		Mode:      Resolve(string(pin.Mode), attr("Mode"), string(vocab.DefaultMode)),
		Alternate: Resolve(pin.AlternateString(), attr("Alternate"), vocab.DefaultAlternate),
		Extra:     extraAttrs(prev.Attrs(key), pinAttrs),
	}
	if info.HasExtendedGPIO() {
		el.AnalogSwitch = Resolve(pin.AnalogSwitch, attr("AnalogSwitch"), vocab.DefaultAnalogSwitch)
		el.PinLock = Resolve(pin.PinLock, attr("PinLock"), vocab.DefaultPinLock)
	}
	return el
}

// extraAttrs returns the attributes of attrs not named in known.
func extraAttrs(attrs []xml.Attr, known []string) []xml.Attr {
	var out []xml.Attr
outer:
	for _, a := range attrs {
		for _, k := range known {
			if a.Name.Local == k {
				continue outer
			}
		}
		out = append(out, a)
	}
	return out
}
