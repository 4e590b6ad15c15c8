package mcu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chibios-tools/ioc2chcfg/internal/cubedb"
	"github.com/chibios-tools/ioc2chcfg/internal/vocab"
)

var (
	// ErrUnresolvablePart is the class of errors raised when a part number
	// does not identify exactly one part.
	ErrUnresolvablePart = errors.New("cannot identify the part")
	ErrPartNotFound     = fmt.Errorf("%w: no such part number", ErrUnresolvablePart)
	ErrPartAmbiguous    = fmt.Errorf("%w: part number is ambiguous", ErrUnresolvablePart)
)

// Resolver builds parts from the CubeMX database.
type Resolver struct {
	DB     *cubedb.DB
	Logger *slog.Logger
}

// NewResolver returns a resolver reading from db.
func NewResolver(db *cubedb.DB, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{DB: db, Logger: logger}
}

// Resolve looks up partNumber and loads its pins and GPIO capabilities.
// Errors wrapping ErrUnresolvablePart mean the part number itself is at
// fault; other errors come from unreadable database files.
func (r *Resolver) Resolve(partNumber string) (*Part, error) {
	logger := r.Logger.With("part", partNumber)
	logger.Info("Loading part")

	refs, err := r.DB.FindMcu(partNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read part index: %w", err)
	}
	switch len(refs) {
	case 0:
		return nil, fmt.Errorf("%s: %w", partNumber, ErrPartNotFound)
	case 1:
	default:
		return nil, fmt.Errorf("%s (%d matches): %w", partNumber, len(refs), ErrPartAmbiguous)
	}
	ref := refs[0]

	part := newPart(partNumber, logger)
	part.Name = ref.Name
	if ref.Family != "" {
		part.Family = vocab.Family(ref.Family + "xx")
	}
	if _, ok := vocab.LookupFamily(part.Family); !ok {
		logger.Warn("unknown family, using default", "family", part.Family, "default", vocab.DefaultFamily)
	}

	desc, err := r.DB.LoadMcu(ref.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load part description: %w", err)
	}

	capabilities, err := r.loadCapabilities(part, desc, logger)
	if err != nil {
		return nil, err
	}

	for _, d := range desc.Pins {
		pin := &Pin{
			Name:       d.Name,
			VendorName: d.Name,
			Position:   d.Position,
			Bonded:     true,
			defaults:   part.Defaults,
			logger:     logger,
		}
		if port, n, ok := PortInfo(d.Name); ok {
			pin.Name = PinName(port, n)
			pin.Port = port
			pin.Number = n
		}
		pin.gpio = capabilities[d.Name]
		part.addPin(pin)
	}
	placeholders := part.completePorts()

	logger.Info("Part loaded",
		"family", part.Family,
		"pins", len(desc.Pins),
		"ports", len(part.Ports),
		"placeholders", placeholders,
		"duplicates", part.Collisions,
	)
	return part, nil
}

// loadCapabilities reads the GPIO capability file of the part. A part
// without a GPIO block has no capability data; that is not an error.
func (r *Resolver) loadCapabilities(part *Part, desc *cubedb.Mcu, logger *slog.Logger) (map[string]*cubedb.GPIOPin, error) {
	ips := desc.FindIPs("GPIO")
	if len(ips) != 1 {
		logger.Warn("invalid GPIO description", "blocks", len(ips))
		return nil, nil
	}
	part.GPIOVersion = ips[0].Version
	logger.Debug("GPIO version", "version", part.GPIOVersion)

	modes, err := r.DB.LoadGPIOModes(part.GPIOVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to load GPIO capabilities: %w", err)
	}
	for k, v := range modes.Defaults() {
		part.Defaults[k] = v
	}
	return modes.PinsByName(), nil
}
