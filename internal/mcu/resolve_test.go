package mcu

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibios-tools/ioc2chcfg/internal/cubedb"
	th "github.com/chibios-tools/ioc2chcfg/internal/testing"
	"github.com/chibios-tools/ioc2chcfg/internal/vocab"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	db, err := cubedb.Open(th.WriteCubeDB(t))
	require.NoError(t, err)
	return NewResolver(db, nil)
}

func TestPortInfo(t *testing.T) {
	tests := []struct {
		vendor string
		port   string
		number int
		ok     bool
	}{
		{"PA5", "A", 5, true},
		{"PB12-BOOT1", "B", 12, true},
		{"PH0-OSC_IN", "H", 0, true},
		{"pc13", "C", 13, true},
		{"PB3 (JTDO-TRACESWO)", "B", 3, true},
		{"PK15", "K", 15, true},
		{"PL1", "", 0, false},
		{"VDD", "", 0, false},
		{"NRST", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.vendor, func(t *testing.T) {
			port, n, ok := PortInfo(tt.vendor)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.port, port)
			assert.Equal(t, tt.number, n)
		})
	}

	name, ok := CanonicalName("PA5")
	assert.True(t, ok)
	assert.Equal(t, "A5", name)
	name, _ = CanonicalName("PB12-BOOT1")
	assert.Equal(t, "B12", name)
}

func TestResolveF4(t *testing.T) {
	part, err := newTestResolver(t).Resolve(th.PartF407)
	require.NoError(t, err)

	assert.Equal(t, th.PartF407, part.PartNumber)
	assert.Equal(t, "STM32F407V(E-G)Tx", part.Name)
	assert.Equal(t, vocab.Family("STM32F4xx"), part.Family)
	assert.Equal(t, "STM32F417_gpio_v1_0", part.GPIOVersion)
	assert.Equal(t, "GPIO_SPEED_FREQ_LOW", part.Defaults["GPIO_Speed"])

	assert.Equal(t, []string{"A", "B", "C", "E", "H"}, part.PortNames())
	for _, port := range part.PortNames() {
		assert.Len(t, part.Ports[port], 16, port)
	}
	// every port pin is registered
	for port, numbers := range part.Ports {
		for _, n := range numbers {
			_, ok := part.Pin(port, n)
			assert.True(t, ok, PinName(port, n))
		}
	}
	// 5 full ports plus VBAT and NRST
	assert.Len(t, part.Pins, 82)
	assert.Len(t, part.SortedPins(), 80)

	assert.Equal(t, 1, part.Collisions)
	b2 := part.Pins["B2"]
	assert.Equal(t, "PB2-BOOT1", b2.VendorName, "last pin wins")

	a9 := part.Pins["A9"]
	assert.True(t, a9.Bonded)
	assert.True(t, a9.HasCapabilities())
	assert.Equal(t, "68", a9.Position)
	assert.False(t, a9.Defined())

	a1 := part.Pins["A1"]
	assert.False(t, a1.Bonded)
	assert.False(t, a1.HasCapabilities())

	a0 := part.Pins["A0"]
	assert.Equal(t, "PA0-WKUP", a0.VendorName)
	assert.True(t, a0.HasCapabilities())

	vbat := part.Pins["VBAT"]
	assert.False(t, vbat.IsGPIO())
}

func TestResolveL4(t *testing.T) {
	part, err := newTestResolver(t).Resolve(th.PartL476)
	require.NoError(t, err)
	assert.Equal(t, vocab.Family("STM32L4xx"), part.Family)
	assert.True(t, part.FamilyInfo().HasExtendedGPIO())
	assert.Equal(t, "PB3 (JTDO-TRACESWO)", part.Pins["B3"].VendorName)
	assert.True(t, part.Pins["A2"].HasCapabilities())
}

func TestResolveWithoutGPIOBlock(t *testing.T) {
	part, err := newTestResolver(t).Resolve(th.PartH743)
	require.NoError(t, err)
	assert.Equal(t, vocab.Family("STM32H7xx"), part.Family)
	assert.Equal(t, vocab.DefaultFamily, part.ResolvedFamily())
	assert.Empty(t, part.GPIOVersion)
	assert.Empty(t, part.Defaults)

	a0 := part.Pins["A0"]
	require.NotNil(t, a0)
	assert.False(t, a0.HasCapabilities())

	// degraded, not fatal
	assert.True(t, a0.Update("Signal", "USART2_TX"))
	assert.Equal(t, vocab.ModeInput, a0.Mode)
}

func TestResolveErrors(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("STM32F999ZZTx")
	assert.ErrorIs(t, err, ErrPartNotFound)
	assert.ErrorIs(t, err, ErrUnresolvablePart)

	_, err = r.Resolve(th.PartAmbiguous)
	assert.ErrorIs(t, err, ErrPartAmbiguous)
	assert.ErrorIs(t, err, ErrUnresolvablePart)

	_, err = r.Resolve(th.PartMissingMcu)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnresolvablePart))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveMissingGPIOModes(t *testing.T) {
	root := th.WriteCubeDB(t)
	db, err := cubedb.Open(root)
	require.NoError(t, err)
	require.NoError(t, os.Remove(db.GPIOModesPath("STM32L476_gpio_v1_0")))

	_, err = NewResolver(db, nil).Resolve(th.PartL476)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, errors.Is(err, ErrUnresolvablePart))
}

func TestResolveMissingIndex(t *testing.T) {
	_, err := NewResolver(&cubedb.DB{Root: t.TempDir()}, nil).Resolve(th.PartF407)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, errors.Is(err, ErrUnresolvablePart))
}
