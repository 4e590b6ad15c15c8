package vocab

import "sort"

// Family identifies a silicon sub-series, e.g. "STM32F4xx".
type Family string

// DefaultFamily is used when a part's family is unknown.
const DefaultFamily Family = "STM32F4xx"

// GPIO capability versions of the ChibiOS board schemas.
const (
	GPIOv2 = "2"
	GPIOv3 = "3"
)

// FamilyInfo holds the per-family settings of the board configuration.
type FamilyInfo struct {
	TemplatesPath string
	SchemaURL     string
	GPIOVersion   string
	// LSEDrive is empty for families without a configurable LSE drive.
	LSEDrive    string
	PinsPerPort int
}

// HasExtendedGPIO reports whether the family's schema carries the
// AnalogSwitch and PinLock pin attributes.
func (f FamilyInfo) HasExtendedGPIO() bool {
	return f.GPIOVersion == GPIOv3
}

const (
	schemaBase    = "http://www.chibios.org/xml/schema/boards/"
	templatesBase = "resources/gencfg/processors/boards/"
	lseDriveHigh  = "3 High Drive (default)"
	pinsPerPort   = 16
)

var families = map[Family]FamilyInfo{
	"STM32F0xx": {templatesBase + "stm32f0xx/templates", schemaBase + "stm32f0xx_board.xsd", GPIOv2, lseDriveHigh, pinsPerPort},
	"STM32F2xx": {templatesBase + "stm32f4xx/templates", schemaBase + "stm32f4xx_board.xsd", GPIOv2, "", pinsPerPort},
	"STM32F3xx": {templatesBase + "stm32f3xx/templates", schemaBase + "stm32f3xx_board.xsd", GPIOv2, lseDriveHigh, pinsPerPort},
	"STM32F4xx": {templatesBase + "stm32f4xx/templates", schemaBase + "stm32f4xx_board.xsd", GPIOv2, "", pinsPerPort},
	"STM32F7xx": {templatesBase + "stm32f7xx/templates", schemaBase + "stm32f7xx_board.xsd", GPIOv2, "", pinsPerPort},
	"STM32L0xx": {templatesBase + "stm32l0xx/templates", schemaBase + "stm32l0xx_board.xsd", GPIOv2, lseDriveHigh, pinsPerPort},
	"STM32L1xx": {templatesBase + "stm32l1xx/templates", schemaBase + "stm32l1xx_board.xsd", GPIOv2, "", pinsPerPort},
	"STM32L4xx": {templatesBase + "stm32l4xx/templates", schemaBase + "stm32l4xx_board.xsd", GPIOv3, lseDriveHigh, pinsPerPort},
}

// LookupFamily returns the settings of a known family.
func LookupFamily(f Family) (FamilyInfo, bool) {
	info, ok := families[f]
	return info, ok
}

// ResolveFamily returns f when it is a known family and DefaultFamily
// otherwise.
func ResolveFamily(f Family) Family {
	if _, ok := families[f]; ok {
		return f
	}
	return DefaultFamily
}

// Info returns the settings of the resolved family.
func (f Family) Info() FamilyInfo {
	return families[ResolveFamily(f)]
}

// Families lists the known families in lexical order.
func Families() []Family {
	out := make([]Family, 0, len(families))
	for f := range families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
