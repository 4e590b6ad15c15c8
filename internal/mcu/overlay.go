package mcu

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/ioc"
)

// Pin keys look like "PA5.GPIO_Label" or "PH0-OSC_IN.Mode".
var pinKeyPattern = regexp.MustCompile(`(?i)^(P[A-K][0-9]{1,2})(?:[-_ \\][^.]*)?\.(.+)$`)

const (
	keyHSEValue = "RCC.HSE_VALUE"
	keyLSEValue = "RCC.LSE_VALUE"
	keyVDD      = "PCC.Vdd"
)

// Oscillator mode hints of the clock input pins.
var bypassHints = map[string]struct {
	hse    bool
	bypass string
}{
	"HSE-External-Clock-Source": {true, "true"},
	"HSE-External-Oscillator":   {true, "false"},
	"LSE-External-Clock-Source": {false, "true"},
	"LSE-External-Oscillator":   {false, "false"},
}

// OverlayStats summarizes ApplyProperties.
type OverlayStats struct {
	// Applied counts pin properties that were used.
	Applied int
	// Pins counts the distinct pins touched.
	Pins int
	// Stale counts pin keys naming a pin the part does not have.
	Stale int
	// Ignored counts keys that are neither pin nor board settings, plus
	// unused pin properties.
	Ignored int
}

// ApplyProperties overlays the project properties onto the part.
func (p *Part) ApplyProperties(props *ioc.Properties) OverlayStats {
	var st OverlayStats
	touched := map[string]struct{}{}

	for _, key := range props.Keys() {
		value, _ := props.Get(key)

		if m := pinKeyPattern.FindStringSubmatch(key); m != nil {
			name, _ := CanonicalName(m[1])
			pin, ok := p.Pins[name]
			if !ok {
				p.logger.Info("pin not found on part", "key", key, "pin", m[1])
				st.Stale++
				continue
			}
			if pin.Update(m[2], value) {
				st.Applied++
				touched[pin.Name] = struct{}{}
			} else {
				st.Ignored++
			}
			continue
		}

		switch key {
		case keyHSEValue:
			p.HSEClock = value
		case keyLSEValue:
			p.LSEClock = value
		case keyVDD:
			if vdd, ok := centivolts(value); ok {
				p.VDD = vdd
			} else {
				p.logger.Warn("invalid supply voltage", "key", key, "value", value)
			}
		default:
			p.logger.Debug("property not used", "key", key)
			st.Ignored++
		}
	}
	p.deriveBypass()

	st.Pins = len(touched)
	p.logger.Info("Properties applied from CubeMX project",
		"properties", st.Applied,
		"pins", st.Pins,
		"stale", st.Stale,
		"ignored", st.Ignored,
	)
	return st
}

func (p *Part) deriveBypass() {
	names := make([]string, 0, len(p.Pins))
	for name := range p.Pins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h, ok := bypassHints[p.Pins[name].ModeHint]
		if !ok {
			continue
		}
		if h.hse {
			p.HSEBypass = h.bypass
		} else {
			p.LSEBypass = h.bypass
		}
	}
}

// centivolts converts a voltage in volts ("3.3") into centivolts ("330").
func centivolts(volts string) (string, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(volts), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return strconv.Itoa(int(math.Round(v * 100))), true
}
