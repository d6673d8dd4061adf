// Package store persists velocity models and the sizing options used to
// process them, so a sizing-function build can be reproduced later. It is
// an optional collaborator of the pipeline, not part of it.
package store

import (
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
	"github.com/seismic-data/meshsize/sizing"
	"github.com/seismic-data/meshsize/velocity"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a sqlite database holding velocity models and sizing
// options.
type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the database at path and applies any
// pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: load migrations: %w", err)
	}
	drv, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("store: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("store: migrate setup: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: migration up failed: %w", err)
	}
	return nil
}

// SaveModel records a velocity model and returns the generated model ID.
// Samples are stored as little-endian float32, matching the raw-binary
// ingestion format.
func (s *Store) SaveModel(m *velocity.Model) (string, error) {
	id := uuid.NewString()
	vp := m.VP
	_, err := s.Exec(`
		INSERT INTO velocity_models (model_id, source, units, dim, nz, nx, ny, vp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, m.Source, m.Units.String(), vp.Dim(), vp.Nz(), vp.Nx(), vp.Ny(), encodeSamples(vp.Data()))
	if err != nil {
		return "", fmt.Errorf("store: save model: %w", err)
	}
	return id, nil
}

// LoadModel restores a velocity model by ID.
func (s *Store) LoadModel(id string) (*velocity.Model, error) {
	var (
		source, units   string
		dim, nz, nx, ny int
		blob            []byte
	)
	err := s.QueryRow(`
		SELECT source, units, dim, nz, nx, ny, vp
		FROM velocity_models WHERE model_id = ?`, id).
		Scan(&source, &units, &dim, &nz, &nx, &ny, &blob)
	if err != nil {
		return nil, fmt.Errorf("store: load model %s: %w", id, err)
	}

	u, err := velocity.ParseUnit(units)
	if err != nil {
		return nil, fmt.Errorf("store: model %s: %w", id, err)
	}
	g, err := grid.New(dim, nz, nx, ny)
	if err != nil {
		return nil, fmt.Errorf("store: model %s: %w", id, err)
	}
	if err := decodeSamples(blob, g.Data()); err != nil {
		return nil, fmt.Errorf("store: model %s: %w", id, err)
	}
	return &velocity.Model{VP: g, Source: source, Units: u}, nil
}

// SaveOptions records the sizing options used with a stored model. An
// unbounded hmax is stored as NULL.
func (s *Store) SaveOptions(modelID string, opts sizing.Options) error {
	bbox, err := json.Marshal(opts.Bbox.Bounds())
	if err != nil {
		return fmt.Errorf("store: encode bbox: %w", err)
	}
	hmax := sql.NullFloat64{Float64: opts.Hmax, Valid: opts.Hmax != 0 && !math.IsInf(opts.Hmax, 1)}
	_, err = s.Exec(`
		INSERT INTO sizing_options
			(model_id, bbox_json, hmin, hmax, wl, freq, dt, cr_max, grade, max_sweeps, domain_ext, pad_style)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		modelID, string(bbox), opts.Hmin, hmax, opts.WL, opts.Freq, opts.DT,
		opts.CrMax, opts.Grade, opts.MaxSweeps, opts.DomainExt, opts.PadStyle.String())
	if err != nil {
		return fmt.Errorf("store: save options: %w", err)
	}
	return nil
}

// LoadOptions restores the most recently saved options for a model.
func (s *Store) LoadOptions(modelID string) (sizing.Options, error) {
	var (
		bboxJSON, padStyle string
		hmax               sql.NullFloat64
		opts               sizing.Options
	)
	err := s.QueryRow(`
		SELECT bbox_json, hmin, hmax, wl, freq, dt, cr_max, grade, max_sweeps, domain_ext, pad_style
		FROM sizing_options WHERE model_id = ?
		ORDER BY created_at DESC LIMIT 1`, modelID).
		Scan(&bboxJSON, &opts.Hmin, &hmax, &opts.WL, &opts.Freq, &opts.DT,
			&opts.CrMax, &opts.Grade, &opts.MaxSweeps, &opts.DomainExt, &padStyle)
	if err != nil {
		return sizing.Options{}, fmt.Errorf("store: load options for %s: %w", modelID, err)
	}

	var bounds []float64
	if err := json.Unmarshal([]byte(bboxJSON), &bounds); err != nil {
		return sizing.Options{}, fmt.Errorf("store: decode bbox: %w", err)
	}
	opts.Bbox, err = geometry.NewBox(bounds...)
	if err != nil {
		return sizing.Options{}, fmt.Errorf("store: options for %s: %w", modelID, err)
	}
	opts.PadStyle, err = grid.ParsePadStyle(padStyle)
	if err != nil {
		return sizing.Options{}, fmt.Errorf("store: options for %s: %w", modelID, err)
	}
	if hmax.Valid {
		opts.Hmax = hmax.Float64
	} else {
		opts.Hmax = math.Inf(1)
	}
	return opts, nil
}

func encodeSamples(data []float64) []byte {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
	}
	return buf
}

func decodeSamples(blob []byte, dst []float64) error {
	if len(blob) != 4*len(dst) {
		return fmt.Errorf("sample blob holds %d bytes, want %d", len(blob), 4*len(dst))
	}
	for i := range dst {
		dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:])))
	}
	return nil
}
