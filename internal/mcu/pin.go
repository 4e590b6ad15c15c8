package mcu

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/cubedb"
	"github.com/chibios-tools/ioc2chcfg/internal/vocab"
)

// Property is a pin property understood by Pin.Update.
type Property int

const (
	PropUnknown Property = iota
	PropLabel
	PropPull
	PropSpeed
	PropSignal
	PropModeHint
	PropLevel
	PropOutputType
	PropAlternateType
)

var propertyNames = map[string]Property{
	"GPIO_Label":               PropLabel,
	"GPIO_PuPd":                PropPull,
	"GPIO_Speed":               PropSpeed,
	"Signal":                   PropSignal,
	"Mode":                     PropModeHint,
	"PinState":                 PropLevel,
	"GPIO_ModeDefaultOutputPP": PropOutputType,
	"GPIO_ModeDefaultPP":       PropAlternateType,
}

// ParseProperty returns the property with the given vendor name.
func ParseProperty(name string) Property {
	return propertyNames[name]
}

type propertyHandler func(p *Pin, name, raw string)

// translated returns a handler that stores the translated value of the
// category into the field selected by dst.
func translated(c vocab.Category, dst func(p *Pin) *string) propertyHandler {
	return func(p *Pin, name, raw string) {
		*dst(p) = p.translate(c, name, raw)
	}
}

var propertyHandlers = map[Property]propertyHandler{
	PropLabel: func(p *Pin, _, raw string) { p.ID = raw },
	PropPull:  translated(vocab.Resistor, func(p *Pin) *string { return &p.Resistor }),
	PropSpeed: translated(vocab.Speed, func(p *Pin) *string { return &p.Speed }),
	PropSignal: func(p *Pin, _, raw string) {
		p.Signal = raw
		p.ModeFromSignal(raw)
	},
	// The mode itself follows from the signal.
	PropModeHint:      func(p *Pin, _, raw string) { p.ModeHint = raw },
	PropLevel:         translated(vocab.Level, func(p *Pin) *string { return &p.Level }),
	PropOutputType:    translated(vocab.Type, func(p *Pin) *string { return &p.Type }),
	PropAlternateType: translated(vocab.Type, func(p *Pin) *string { return &p.Type }),
}

// Pin is one physical pin of a part and its resolved ChibiOS settings.
// The settings stay empty until a property of the pin is updated.
type Pin struct {
	// Name is the canonical name ("A5"), or the vendor name for pins
	// outside the GPIO ports.
	Name       string
	VendorName string
	Position   string
	Port       string
	Number     int
	// Bonded is false for placeholder pins completing a port.
	Bonded bool

	ID           string
	Type         string
	Level        string
	Speed        string
	Resistor     string
	Mode         vocab.Mode
	Alternate    int
	AnalogSwitch string
	PinLock      string

	Signal   string
	ModeHint string

	defined  bool
	gpio     *cubedb.GPIOPin
	defaults map[string]string
	logger   *slog.Logger
}

// IsGPIO reports whether the pin belongs to a GPIO port.
func (p *Pin) IsGPIO() bool { return p.Port != "" }

// Defined reports whether any property of the pin has been set.
func (p *Pin) Defined() bool { return p.defined }

// HasCapabilities reports whether a capability description is attached.
func (p *Pin) HasCapabilities() bool { return p.gpio != nil }

// AlternateString returns the alternate function index, empty when the
// pin is undefined.
func (p *Pin) AlternateString() string {
	if !p.defined {
		return ""
	}
	return strconv.Itoa(p.Alternate)
}

func (p *Pin) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

// Update applies one vendor property to the pin. Unknown properties are
// logged and ignored; the return value tells whether the property was
// used. After a recognized update every setting of the pin is defined.
func (p *Pin) Update(name, raw string) bool {
	h, ok := propertyHandlers[ParseProperty(name)]
	if !ok {
		p.log().Debug("pin property not used", "pin", p.VendorName, "property", name, "value", raw)
		return false
	}
	h(p, name, raw)
	p.LoadDefaults()
	return true
}

// translate maps raw through the category table, falling back to the
// vendor default of the property. Empty when neither is known.
func (p *Pin) translate(c vocab.Category, name, raw string) string {
	if v, ok := vocab.Translate(c, raw); ok {
		return v
	}
	if def, ok := p.defaults[name]; ok {
		if v, ok := vocab.Translate(c, def); ok {
			return v
		}
	}
	p.log().Debug("unknown pin property value", "pin", p.VendorName, "property", name, "category", c, "value", raw)
	return ""
}

func (p *Pin) setMode(m vocab.Mode) {
	p.Mode = m
	if m != vocab.ModeAlternate {
		p.Alternate = 0
	}
}

// ModeFromSignal derives and stores the pin mode of a signal assignment.
// Fixed signal rules are tried first, then the alternate functions listed
// in the pin's capability description. A successful alternate-function
// match also sets Alternate. Unresolvable signals yield Input.
func (p *Pin) ModeFromSignal(signal string) vocab.Mode {
	m := p.modeFromSignal(signal)
	p.setMode(m)
	return m
}

func (p *Pin) modeFromSignal(signal string) vocab.Mode {
	if mode, kind, ok := vocab.MatchSignal(signal); ok {
		if kind == vocab.SignalADC {
			p.AnalogSwitch = vocab.Enabled
		}
		return mode
	}
	if p.gpio == nil {
		p.log().Warn("no capability description for pin", "pin", p.VendorName, "signal", signal)
		return vocab.ModeInput
	}
	values := p.gpio.PossibleValues(signal)
	if len(values) == 0 {
		p.log().Warn("signal not listed for pin", "pin", p.VendorName, "signal", signal)
		return vocab.ModeInput
	}
	for _, v := range values {
		if af, ok := vocab.AlternateFunction(strings.TrimSpace(v)); ok {
			p.Alternate = af
			return vocab.ModeAlternate
		}
	}
	p.log().Warn("no alternate function for signal", "pin", p.VendorName, "signal", signal, "values", values)
	return vocab.ModeInput
}

// LoadDefaults fills every setting that is still unset. Vendor defaults
// of the part are preferred over the fixed pin defaults.
func (p *Pin) LoadDefaults() {
	p.defined = true
	if p.Resistor == "" {
		p.Resistor = p.vendorDefault(vocab.Resistor, "GPIO_PuPd", vocab.PinDefaultResistor)
	}
	if p.Speed == "" {
		p.Speed = p.vendorDefault(vocab.Speed, "GPIO_Speed", vocab.PinDefaultSpeed)
	}
	if p.Level == "" {
		p.Level = p.vendorDefault(vocab.Level, "PinState", vocab.PinDefaultLevel)
	}
	if p.Type == "" {
		p.Type = p.vendorDefault(vocab.Type, "GPIO_ModeDefaultOutputPP", vocab.PinDefaultType)
	}
	if p.Mode == "" {
		p.Mode = vocab.PinDefaultMode
	}
	if p.Mode != vocab.ModeAlternate {
		p.Alternate = vocab.PinDefaultAlternate
	}
}

func (p *Pin) vendorDefault(c vocab.Category, name, fallback string) string {
	if def, ok := p.defaults[name]; ok {
		if v, ok := vocab.Translate(c, def); ok {
			return v
		}
	}
	return fallback
}
