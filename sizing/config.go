package sizing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
	"github.com/seismic-data/meshsize/velocity"
)

// Config is the JSON option-file form of a pipeline run. Fields are
// pointers so that partial configs are safe: omitted keys keep their
// defaults. The schema mirrors the recognised option names one to one.
type Config struct {
	Bbox []float64 `json:"bbox,omitempty"`

	Hmin *float64 `json:"hmin,omitempty"`
	Hmax *float64 `json:"hmax,omitempty"`

	WL   *float64 `json:"wl,omitempty"`
	Freq *float64 `json:"freq,omitempty"`

	DT    *float64 `json:"dt,omitempty"`
	CrMax *float64 `json:"cr_max,omitempty"`

	Grade     *float64 `json:"grade,omitempty"`
	MaxSweeps *int     `json:"max_sweeps,omitempty"`

	DomainExt *float64 `json:"domain_ext,omitempty"`
	PadStyle  *string  `json:"pad_style,omitempty"`

	// Ingestion options for velocity.Read.
	Nz         *int    `json:"nz,omitempty"`
	Nx         *int    `json:"nx,omitempty"`
	Ny         *int    `json:"ny,omitempty"`
	Units      *string `json:"units,omitempty"`
	Endianness *string `json:"endianness,omitempty"`
}

// LoadConfig loads a Config from a JSON file. The path must end in .json
// and stay under a small size cap; both checks guard against pointing the
// loader at the wrong file.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("sizing: config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("sizing: stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("sizing: config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("sizing: read config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("sizing: parse config file: %w", err)
	}
	return &cfg, nil
}

// SizingOptions converts the file form into a validated Options value.
func (c *Config) SizingOptions() (Options, error) {
	box, err := geometry.NewBox(c.Bbox...)
	if err != nil {
		return Options{}, fmt.Errorf("sizing: config bbox: %w", err)
	}
	opts := Options{Bbox: box}
	if c.Hmin != nil {
		opts.Hmin = *c.Hmin
	}
	if c.Hmax != nil {
		opts.Hmax = *c.Hmax
	}
	if c.WL != nil {
		opts.WL = *c.WL
	}
	if c.Freq != nil {
		opts.Freq = *c.Freq
	}
	if c.DT != nil {
		opts.DT = *c.DT
	}
	if c.CrMax != nil {
		opts.CrMax = *c.CrMax
	}
	if c.Grade != nil {
		opts.Grade = *c.Grade
	}
	if c.MaxSweeps != nil {
		opts.MaxSweeps = *c.MaxSweeps
	}
	if c.DomainExt != nil {
		opts.DomainExt = *c.DomainExt
	}
	if c.PadStyle != nil {
		style, err := grid.ParsePadStyle(*c.PadStyle)
		if err != nil {
			return Options{}, fmt.Errorf("sizing: config: %w", err)
		}
		opts.PadStyle = style
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ReadOptions converts the file form into ingestion options for
// velocity.Read.
func (c *Config) ReadOptions() (velocity.ReadOptions, error) {
	var ro velocity.ReadOptions
	if c.Nz != nil {
		ro.Nz = *c.Nz
	}
	if c.Nx != nil {
		ro.Nx = *c.Nx
	}
	if c.Ny != nil {
		ro.Ny = *c.Ny
	}
	if c.Units != nil {
		u, err := velocity.ParseUnit(*c.Units)
		if err != nil {
			return velocity.ReadOptions{}, fmt.Errorf("sizing: config: %w", err)
		}
		ro.Units = u
	}
	if c.Endianness != nil {
		e, err := velocity.ParseEndianness(*c.Endianness)
		if err != nil {
			return velocity.ReadOptions{}, fmt.Errorf("sizing: config: %w", err)
		}
		ro.ByteOrder = e
	}
	return ro, nil
}
