// Package mcu models a microcontroller resolved from the CubeMX database
// and the pin settings selected in a CubeMX project.
package mcu

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/vocab"
)

var portPattern = regexp.MustCompile(`(?i)^P([A-K])([0-9]{1,2})`)

// PortInfo extracts the port letter and pin number from a vendor pin
// name such as "PA5" or "PB12-BOOT1". The suffix after the number is
// ignored.
func PortInfo(vendorName string) (port string, number int, ok bool) {
	m := portPattern.FindStringSubmatch(vendorName)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(m[1]), n, true
}

// PinName returns the canonical name of a port pin, e.g. "A5".
func PinName(port string, number int) string {
	return port + strconv.Itoa(number)
}

// CanonicalName returns the canonical name of a vendor pin name.
func CanonicalName(vendorName string) (string, bool) {
	port, n, ok := PortInfo(vendorName)
	if !ok {
		return "", false
	}
	return PinName(port, n), true
}

// Part is a microcontroller with its pins and board level settings.
type Part struct {
	PartNumber string
	// Name is the base name of the CubeMX part description.
	Name        string
	Family      vocab.Family
	GPIOVersion string

	Pins  map[string]*Pin
	Ports map[string][]int

	HSEClock  string
	LSEClock  string
	HSEBypass string
	LSEBypass string
	// VDD in centivolts.
	VDD string

	// Collisions counts vendor pins that share a canonical name with an
	// earlier pin. The later pin replaces the earlier one.
	Collisions int
	Defaults   map[string]string

	logger *slog.Logger
}

func newPart(partNumber string, logger *slog.Logger) *Part {
	if logger == nil {
		logger = slog.Default()
	}
	return &Part{
		PartNumber: partNumber,
		Pins:       map[string]*Pin{},
		Ports:      map[string][]int{},
		Defaults:   map[string]string{},
		logger:     logger,
	}
}

// FamilyInfo returns the settings of the part's family, falling back to
// the default family.
func (p *Part) FamilyInfo() vocab.FamilyInfo {
	return p.Family.Info()
}

// ResolvedFamily returns the family used for the board configuration.
func (p *Part) ResolvedFamily() vocab.Family {
	return vocab.ResolveFamily(p.Family)
}

// PortNames returns the port letters in order.
func (p *Part) PortNames() []string {
	out := make([]string, 0, len(p.Ports))
	for port := range p.Ports {
		out = append(out, port)
	}
	sort.Strings(out)
	return out
}

// Pin returns the pin of a port, if any.
func (p *Part) Pin(port string, number int) (*Pin, bool) {
	pin, ok := p.Pins[PinName(port, number)]
	return pin, ok
}

// SortedPins returns the GPIO pins ordered by port and number.
func (p *Part) SortedPins() []*Pin {
	var out []*Pin
	for _, port := range p.PortNames() {
		for _, n := range p.Ports[port] {
			if pin, ok := p.Pin(port, n); ok {
				out = append(out, pin)
			}
		}
	}
	return out
}

func (p *Part) addPin(pin *Pin) {
	if prev, ok := p.Pins[pin.Name]; ok {
		p.Collisions++
		p.logger.Debug("duplicate canonical pin name", "pin", pin.Name, "previous", prev.VendorName, "vendor", pin.VendorName)
	}
	p.Pins[pin.Name] = pin
	if !pin.IsGPIO() {
		return
	}
	numbers := p.Ports[pin.Port]
	i := sort.SearchInts(numbers, pin.Number)
	if i < len(numbers) && numbers[i] == pin.Number {
		return
	}
	numbers = append(numbers, 0)
	copy(numbers[i+1:], numbers[i:])
	numbers[i] = pin.Number
	p.Ports[pin.Port] = numbers
}

// completePorts adds unbonded placeholder pins so that every port lists
// the pin count of the family.
func (p *Part) completePorts() int {
	width := p.FamilyInfo().PinsPerPort
	added := 0
	for _, port := range p.PortNames() {
		for n := 0; n < width; n++ {
			if _, ok := p.Pin(port, n); ok {
				continue
			}
			p.addPin(&Pin{
				Name:     PinName(port, n),
				Port:     port,
				Number:   n,
				defaults: p.Defaults,
				logger:   p.logger,
			})
			added++
		}
	}
	return added
}
