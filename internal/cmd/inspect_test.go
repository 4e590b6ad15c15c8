package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	th "github.com/chibios-tools/ioc2chcfg/internal/testing"
)

func inspect(t *testing.T, format string, all bool) string {
	t.Helper()
	logger, _ := th.CreateLogger(t)
	var out bytes.Buffer
	c := &Inspect{
		Project: Project{
			IOC:  th.WriteFile(t, "demo.ioc", th.ProjectF407),
			Cube: th.WriteCubeDB(t),
		},
		Format: format,
		All:    all,
		out:    &out,
	}
	require.NoError(t, c.Run(logger))
	return out.String()
}

func TestInspectJSON(t *testing.T) {
	var r Report
	require.NoError(t, json.Unmarshal([]byte(inspect(t, "json", false)), &r))

	assert.Equal(t, th.PartF407, r.PartNumber)
	assert.Equal(t, "STM32F4xx", r.Family)
	assert.Equal(t, "25000000", r.Clocks.HSEFrequency)
	assert.Equal(t, "false", r.Clocks.HSEBypass)
	assert.Equal(t, "330", r.Clocks.VDD)

	var names []string
	for _, p := range r.Pins {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A5", "A9", "A10", "H0"}, names)

	led := r.Pins[0]
	assert.Equal(t, PinReport{
		Name:      "A5",
		Vendor:    "PA5",
		Position:  led.Position,
		ID:        "LED",
		Signal:    "GPIO_Output",
		Mode:      "Output",
		Alternate: "0",
		Type:      "PushPull",
		Level:     "High",
		Speed:     "Minimum",
		Resistor:  "Floating",
	}, led)
	assert.Equal(t, "7", r.Pins[1].Alternate)
}

func TestInspectAll(t *testing.T) {
	var r Report
	require.NoError(t, yaml.Unmarshal([]byte(inspect(t, "yaml", true)), &r))
	assert.Len(t, r.Pins, 80)
	assert.Equal(t, "A0", r.Pins[0].Name)
	assert.Empty(t, r.Pins[0].Mode, "untouched pins stay unset")
}

func TestInspectFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"STM32F407VETx (STM32F407V(E-G)Tx) family STM32F4xx", "PIN  ", "A5 ", "LED", "4 pins"}},
		{"yaml", []string{"partNumber: STM32F407VETx", "  - name: A5", "    id: LED"}},
		{"toml", []string{`partNumber = "STM32F407VETx"`, "[[pins]]", `id = "LED"`}},
		{"dump", []string{"(cmd.Report)", `PartNumber: (string) (len=13) "STM32F407VETx"`, `ID: (string) (len=3) "LED"`}},
		// a buffer is no terminal
		{"auto", []string{"partNumber: STM32F407VETx"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := inspect(t, tt.format, false)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, "xml", Report{}))
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "json", resolveFormat("json", &buf))
	assert.Equal(t, "yaml", resolveFormat("auto", &buf))
	assert.Equal(t, "yaml", resolveFormat("", &buf))
}
