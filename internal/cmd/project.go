package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/cubedb"
	"github.com/chibios-tools/ioc2chcfg/internal/ioc"
	"github.com/chibios-tools/ioc2chcfg/internal/mcu"
)

// Project selects a CubeMX project and the CubeMX installation describing
// its part.
type Project struct {
	IOC  string `name:"ioc" help:"CubeMX project file (.ioc)" env:"IOC2CHCFG_IOC" type:"path"`
	Cube string `name:"cube" help:"CubeMX installation directory (containing db/mcu)" env:"IOC2CHCFG_CUBE" type:"path"`
}

// errSkip ends a command early after the problem was logged.
var errSkip = errors.New("skipped")

// Load reads the project and resolves its part. Conditions that end the
// process with a dedicated code are returned as *ExitError. Recoverable
// failures are logged and reported as errSkip.
func (p *Project) Load(logger *slog.Logger) (*mcu.Part, mcu.OverlayStats, error) {
	var st mcu.OverlayStats

	if p.IOC == "" {
		return nil, st, exitError(ExitInputMissing, errors.New("no project file given (--ioc)"))
	}
	props, err := ioc.LoadFile(p.IOC)
	if err != nil {
		return nil, st, exitError(ExitInputMissing, err)
	}
	logger.Debug("project loaded", "file", p.IOC, "properties", props.Len())

	if p.Cube == "" {
		return nil, st, exitError(ExitCubeMissing, errors.New("no CubeMX installation given (--cube)"))
	}
	db, err := cubedb.Open(p.Cube)
	if err != nil {
		return nil, st, exitError(ExitCubeMissing, fmt.Errorf("invalid CubeMX installation: %w", err))
	}

	partNumber, _ := props.PartNumber()
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		logger.Error("project names no part number", "file", p.IOC)
		return nil, st, errSkip
	}

	part, err := mcu.NewResolver(db, logger).Resolve(partNumber)
	switch {
	case errors.Is(err, mcu.ErrUnresolvablePart):
		return nil, st, exitError(ExitPartUnresolved, err)
	case err != nil:
		logger.Error("failed to load part description", "part", partNumber, "error", err)
		return nil, st, errSkip
	}

	st = part.ApplyProperties(props)
	if st.Stale > 0 {
		logger.Warn("project configures pins the part does not have", "file", p.IOC, "stale", st.Stale)
	}
	return part, st, nil
}
