package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	th "github.com/chibios-tools/ioc2chcfg/internal/testing"
)

func newConvert(t *testing.T, project string) *Convert {
	t.Helper()
	return &Convert{
		Project: Project{
			IOC:  th.WriteFile(t, "demo.ioc", project),
			Cube: th.WriteCubeDB(t),
		},
		Output: filepath.Join(t.TempDir(), "board.chcfg"),
	}
}

func readOutput(t *testing.T, c *Convert) string {
	t.Helper()
	data, err := os.ReadFile(c.Output)
	require.NoError(t, err)
	return string(data)
}

func TestConvert(t *testing.T) {
	logger, logs := th.CreateLogger(t)
	c := newConvert(t, th.ProjectF407)
	c.Board.BoardName = "Demo board"

	require.NoError(t, c.Run(logger))

	out := readOutput(t, c)
	assert.Contains(t, out, "<board_name>Demo board</board_name>")
	assert.Contains(t, out, "<board_id>CUSTOM_BOARD</board_id>")
	assert.Contains(t, out, "<subtype>STM32F4xx</subtype>")
	assert.Contains(t, out, `<clocks HSEFrequency="25000000" HSEBypass="false" LSEFrequency="32768" LSEBypass="false" VDD="330"></clocks>`)
	assert.Contains(t, out, `<pin5 ID="LED" Type="PushPull" Level="High" Speed="Minimum" Resistor="Floating" Mode="Output" Alternate="0"></pin5>`)
	assert.Contains(t, out, `Mode="Alternate" Alternate="7"></pin9>`)
	assert.Contains(t, logs.String(), "board configuration written")
}

func TestConvertKeepsExisting(t *testing.T) {
	logger, _ := th.CreateLogger(t)
	first := newConvert(t, th.ProjectF407)
	first.Board = BoardFlags{BoardName: "First", BoardFunctions: "void boardInit(void) {}"}
	require.NoError(t, first.Run(logger))

	second := newConvert(t, th.ProjectF407)
	second.Chibi = first.Output
	second.Board.BoardID = "SECOND"
	require.NoError(t, second.Run(logger))

	out := readOutput(t, second)
	assert.Contains(t, out, "<board_name>First</board_name>")
	assert.Contains(t, out, "<board_id>SECOND</board_id>")
	assert.Contains(t, out, "<board_functions>void boardInit(void) {}</board_functions>")

	// without new values the output reproduces the existing file
	third := newConvert(t, th.ProjectF407)
	third.Chibi = second.Output
	require.NoError(t, third.Run(logger))
	assert.Equal(t, out, readOutput(t, third))
}

func TestConvertMissingExistingConfig(t *testing.T) {
	logger, logs := th.CreateLogger(t)
	c := newConvert(t, th.ProjectF407)
	c.Chibi = filepath.Join(t.TempDir(), "missing.chcfg")

	require.NoError(t, c.Run(logger))
	assert.FileExists(t, c.Output)
	assert.Contains(t, logs.String(), "existing board configuration not used")
}

func TestConvertExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, c *Convert)
		code   int
	}{
		{"no project flag", func(t *testing.T, c *Convert) { c.IOC = "" }, ExitInputMissing},
		{"missing project", func(t *testing.T, c *Convert) { c.IOC = filepath.Join(t.TempDir(), "none.ioc") }, ExitInputMissing},
		{"no cube flag", func(t *testing.T, c *Convert) { c.Cube = "" }, ExitCubeMissing},
		{"missing cube", func(t *testing.T, c *Convert) { c.Cube = filepath.Join(t.TempDir(), "cube") }, ExitCubeMissing},
		{"cube is a file", func(t *testing.T, c *Convert) { c.Cube = c.IOC }, ExitCubeMissing},
		{"unknown part", func(t *testing.T, c *Convert) {
			c.IOC = th.WriteFile(t, "x.ioc", "Mcu.UserName=STM32F999ZZTx\n")
		}, ExitPartUnresolved},
		{"ambiguous part", func(t *testing.T, c *Convert) {
			c.IOC = th.WriteFile(t, "x.ioc", "Mcu.UserName="+th.PartAmbiguous+"\n")
		}, ExitPartUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := th.CreateLogger(t)
			c := newConvert(t, th.ProjectF407)
			tt.modify(t, c)

			err := c.Run(logger)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.code, exitErr.Code)
			assert.NoFileExists(t, c.Output)
		})
	}
}

func TestConvertRecoverableFailures(t *testing.T) {
	tests := []struct {
		name    string
		project string
		log     string
	}{
		{"no part number", th.ProjectWithoutPart, "project names no part number"},
		{"part description missing", "Mcu.UserName=" + th.PartMissingMcu + "\n", "failed to load part description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := th.CreateLogger(t)
			c := newConvert(t, tt.project)

			require.NoError(t, c.Run(logger))
			assert.NoFileExists(t, c.Output)
			assert.Contains(t, logs.String(), tt.log)
		})
	}
}

func TestConvertWriteFailure(t *testing.T) {
	logger, logs := th.CreateLogger(t)
	c := newConvert(t, th.ProjectF407)
	c.Output = filepath.Join(t.TempDir(), "missing", "board.chcfg")

	require.NoError(t, c.Run(logger))
	assert.Contains(t, logs.String(), "failed to write board configuration")
}

func TestExitError(t *testing.T) {
	err := exitError(ExitCubeMissing, os.ErrNotExist)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasSuffix(err.Error(), "(exit code 3)"))
}
