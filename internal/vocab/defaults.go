package vocab

// Global defaults of the board configuration, used when neither a new
// value nor an existing document provides one.
const (
	DefaultType         = PushPull
	DefaultLevel        = LevelHigh
	DefaultSpeed        = SpeedMaximum
	DefaultResistor     = Floating
	DefaultMode         = ModeInput
	DefaultAlternate    = "0"
	DefaultAnalogSwitch = Disabled
	DefaultPinLock      = Disabled

	DefaultHSEFrequency = "8000000"
	DefaultLSEFrequency = "32768"
	DefaultHSEBypass    = "false"
	DefaultLSEBypass    = "false"
	DefaultVDD          = "330"

	DefaultOutputPath = ".."
	DefaultHALVersion = "3.0.x"
	DefaultBoardName  = "Custom board"
	DefaultBoardID    = "CUSTOM_BOARD"
)

// Defaults applied to a pin once any of its properties is set. They
// differ from the document defaults: CubeMX drives configured outputs
// low.
const (
	PinDefaultResistor  = Floating
	PinDefaultSpeed     = SpeedMaximum
	PinDefaultMode      = ModeInput
	PinDefaultLevel     = LevelLow
	PinDefaultType      = PushPull
	PinDefaultAlternate = 0
)
