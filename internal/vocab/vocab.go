// Package vocab holds the static lookup tables that translate CubeMX
// enumeration values into the ChibiOS board configuration vocabulary.
//
// All tables are read-only. Lookups of unknown values report false and
// never invent a value; choosing a default is left to the caller.
package vocab

import (
	"regexp"
	"strconv"
)

// Category selects one of the vendor → ChibiOS translation tables.
type Category int

const (
	Resistor Category = iota
	Speed
	Level
	Type
)

func (c Category) String() string {
	switch c {
	case Resistor:
		return "resistor"
	case Speed:
		return "speed"
	case Level:
		return "level"
	case Type:
		return "type"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// ChibiOS pin vocabulary.
const (
	PullUp   = "PullUp"
	PullDown = "PullDown"
	Floating = "Floating"

	SpeedMinimum = "Minimum"
	SpeedLow     = "Low"
	SpeedHigh    = "High"
	SpeedMaximum = "Maximum"

	LevelHigh = "High"
	LevelLow  = "Low"

	OpenDrain = "OpenDrain"
	PushPull  = "PushPull"

	Enabled  = "Enabled"
	Disabled = "Disabled"
)

var tables = map[Category]map[string]string{
	Resistor: {
		"GPIO_PULLUP":   PullUp,
		"GPIO_PULLDOWN": PullDown,
		"GPIO_NOPULL":   Floating,
	},
	Speed: {
		"GPIO_SPEED_FREQ_LOW":       SpeedMinimum,
		"GPIO_SPEED_FREQ_MEDIUM":    SpeedLow,
		"GPIO_SPEED_FREQ_HIGH":      SpeedHigh,
		"GPIO_SPEED_FREQ_VERY_HIGH": SpeedMaximum,
		// spellings used by older HAL releases
		"GPIO_SPEED_LOW":    SpeedMinimum,
		"GPIO_SPEED_MEDIUM": SpeedLow,
		"GPIO_SPEED_FAST":   SpeedHigh,
		"GPIO_SPEED_HIGH":   SpeedMaximum,
	},
	// CubeMX leaves outputs low unless told otherwise.
	Level: {
		"GPIO_PIN_SET":   LevelHigh,
		"GPIO_PIN_RESET": LevelLow,
	},
	Type: {
		"GPIO_MODE_OUTPUT_OD": OpenDrain,
		"GPIO_MODE_OUTPUT_PP": PushPull,
		"GPIO_MODE_AF_OD":     OpenDrain,
		"GPIO_MODE_AF_PP":     PushPull,
	},
}

// Translate maps a vendor value of the given category to its ChibiOS
// counterpart. The boolean is false when the value is unknown.
func Translate(c Category, vendor string) (string, bool) {
	v, ok := tables[c][vendor]
	return v, ok
}

// Mode is the operating mode of a GPIO pin.
type Mode string

const (
	ModeInput     Mode = "Input"
	ModeOutput    Mode = "Output"
	ModeAnalog    Mode = "Analog"
	ModeAlternate Mode = "Alternate"
)

// SignalKind tells which rule classified a signal.
type SignalKind int

const (
	SignalGPIO SignalKind = iota
	SignalADC
	SignalAnalogInput
)

type signalRule struct {
	re   *regexp.Regexp
	mode Mode
	kind SignalKind
}

// Evaluated in order, first match wins.
var signalRules = []signalRule{
	{regexp.MustCompile(`^GPIO_Input`), ModeInput, SignalGPIO},
	{regexp.MustCompile(`^GPIO_Output`), ModeOutput, SignalGPIO},
	{regexp.MustCompile(`^ADC[0-9x]+_IN[0-9]+`), ModeAnalog, SignalADC},
	{regexp.MustCompile(`^IN[0-9]{1,2}`), ModeAnalog, SignalAnalogInput},
}

// MatchSignal classifies a signal name by the fixed signal rules.
// It reports false when no rule applies and the pin's capability
// description has to be consulted instead.
func MatchSignal(signal string) (Mode, SignalKind, bool) {
	for _, r := range signalRules {
		if r.re.MatchString(signal) {
			return r.mode, r.kind, true
		}
	}
	return "", 0, false
}

var alternatePattern = regexp.MustCompile(`^GPIO_AF([0-9]{1,2})`)

// AlternateFunction extracts the alternate function index from a
// capability value such as "GPIO_AF7_USART1".
func AlternateFunction(possibleValue string) (int, bool) {
	m := alternatePattern.FindStringSubmatch(possibleValue)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
