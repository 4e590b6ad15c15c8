package cubedb

// Element names are matched by local name; the CubeMX namespace is
// ignored.

type familiesIndex struct {
	Families []struct {
		Name        string `xml:"Name,attr"`
		SubFamilies []struct {
			Name string   `xml:"Name,attr"`
			Mcus []McuRef `xml:"Mcu"`
		} `xml:"SubFamily"`
	} `xml:"Family"`
}

// McuRef is one entry of the part index.
type McuRef struct {
	// Name is the base name of the part description file.
	Name        string `xml:"Name,attr"`
	RefName     string `xml:"RefName,attr"`
	RPN         string `xml:"RPN,attr"`
	PackageName string `xml:"PackageName,attr"`

	// Family and SubFamily are taken from the enclosing index elements.
	Family    string `xml:"-"`
	SubFamily string `xml:"-"`
}

// Mcu is a part description file.
type Mcu struct {
	RefName string   `xml:"RefName,attr"`
	Family  string   `xml:"Family,attr"`
	Package string   `xml:"Package,attr"`
	Core    string   `xml:"Core"`
	IPs     []IP     `xml:"IP"`
	Pins    []McuPin `xml:"Pin"`
}

// IP is a peripheral block instantiated by a part.
type IP struct {
	Name         string `xml:"Name,attr"`
	InstanceName string `xml:"InstanceName,attr"`
	Version      string `xml:"Version,attr"`
}

// McuPin is a physical pin of a part.
type McuPin struct {
	Name     string      `xml:"Name,attr"`
	Position string      `xml:"Position,attr"`
	Type     string      `xml:"Type,attr"`
	Signals  []PinSignal `xml:"Signal"`
}

// PinSignal names a signal routed to a pin.
type PinSignal struct {
	Name string `xml:"Name,attr"`
}

// FindIPs returns the IP blocks with the given name.
func (m *Mcu) FindIPs(name string) []IP {
	var out []IP
	for _, ip := range m.IPs {
		if ip.Name == name {
			out = append(out, ip)
		}
	}
	return out
}

// GPIOModes is a GPIO capability file.
type GPIOModes struct {
	Name          string         `xml:"Name,attr"`
	Version       string         `xml:"Version,attr"`
	RefParameters []RefParameter `xml:"RefParameter"`
	Pins          []GPIOPin      `xml:"GPIO_Pin"`
}

// RefParameter declares a GPIO parameter and its default value.
type RefParameter struct {
	Name         string `xml:"Name,attr"`
	DefaultValue string `xml:"DefaultValue,attr"`
}

// GPIOPin is the capability description of one pin.
type GPIOPin struct {
	Name     string          `xml:"Name,attr"`
	PortName string          `xml:"PortName,attr"`
	Signals  []GPIOPinSignal `xml:"PinSignal"`
}

// GPIOPinSignal lists the parameter values a signal needs on a pin.
type GPIOPinSignal struct {
	Name       string              `xml:"Name,attr"`
	Parameters []SpecificParameter `xml:"SpecificParameter"`
}

// SpecificParameter is one parameter with its possible values.
type SpecificParameter struct {
	Name           string   `xml:"Name,attr"`
	PossibleValues []string `xml:"PossibleValue"`
}

// Defaults returns the default value of every parameter that declares one.
func (g *GPIOModes) Defaults() map[string]string {
	out := make(map[string]string, len(g.RefParameters))
	for _, p := range g.RefParameters {
		if p.DefaultValue != "" {
			out[p.Name] = p.DefaultValue
		}
	}
	return out
}

// PinsByName indexes the capability descriptions by vendor pin name.
// The first description of a name wins.
func (g *GPIOModes) PinsByName() map[string]*GPIOPin {
	out := make(map[string]*GPIOPin, len(g.Pins))
	for i := range g.Pins {
		p := &g.Pins[i]
		if _, ok := out[p.Name]; !ok {
			out[p.Name] = p
		}
	}
	return out
}

// PossibleValues returns every possible value listed for signal, in
// document order. A nil receiver has none.
func (p *GPIOPin) PossibleValues(signal string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, s := range p.Signals {
		if s.Name != signal {
			continue
		}
		for _, sp := range s.Parameters {
			out = append(out, sp.PossibleValues...)
		}
	}
	return out
}
