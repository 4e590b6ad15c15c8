package cmd

import (
	"errors"
	"log/slog"

	"github.com/chibios-tools/ioc2chcfg/internal/chcfg"
)

// Convert writes the ChibiOS board configuration of a CubeMX project.
type Convert struct {
	Project `embed:""`

	Output string `help:"Board configuration to write" default:"board.chcfg" env:"IOC2CHCFG_OUTPUT" type:"path"`
	Chibi  string `help:"Existing board configuration whose values are kept unless overridden" env:"IOC2CHCFG_CHIBI" type:"path"`

	Board BoardFlags `embed:""`
}

// BoardFlags override the board level settings of the configuration.
// Empty flags keep the existing value.
type BoardFlags struct {
	BoardName      string `help:"Board name" env:"IOC2CHCFG_BOARD_NAME"`
	BoardID        string `name:"board-id" help:"Board identifier" env:"IOC2CHCFG_BOARD_ID"`
	BoardFunctions string `help:"Custom board functions (C code)" env:"IOC2CHCFG_BOARD_FUNCTIONS"`
	HALVersion     string `name:"hal-version" help:"ChibiOS HAL version" env:"IOC2CHCFG_HAL_VERSION"`
	OutputPath     string `help:"Output path of the generated board files" env:"IOC2CHCFG_OUTPUT_PATH"`
	Subtype        string `help:"Board subtype (defaults to the part family)" env:"IOC2CHCFG_SUBTYPE"`
}

func (b BoardFlags) settings() chcfg.BoardSettings {
	return chcfg.BoardSettings{
		OutputPath:     b.OutputPath,
		HALVersion:     b.HALVersion,
		BoardName:      b.BoardName,
		BoardID:        b.BoardID,
		BoardFunctions: b.BoardFunctions,
		Subtype:        b.Subtype,
	}
}

// Run is called by Kong when the convert command is executed.
func (c *Convert) Run(logger *slog.Logger) error {
	part, _, err := c.Load(logger)
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return err
	}

	var prev *chcfg.Previous
	if c.Chibi != "" {
		prev, err = chcfg.LoadPrevious(c.Chibi)
		if err != nil {
			logger.Warn("existing board configuration not used", "error", err)
			prev = nil
		} else {
			logger.Debug("existing board configuration loaded", "file", c.Chibi)
		}
	}

	doc := (&chcfg.Emitter{Logger: logger}).Emit(part, c.Board.settings(), prev)
	if err := chcfg.WriteFile(doc, c.Output); err != nil {
		logger.Error("failed to write board configuration", "error", err)
		return nil
	}
	logger.Info("board configuration written", "file", c.Output, "family", part.ResolvedFamily())
	return nil
}
