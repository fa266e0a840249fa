// Package coordination holds the catalogue of coordination environments
// (chemenv geometries) keyed by their mp_symbol, e.g. "O:6" for the
// octahedron.  The catalogue is an explicit Registry: nothing is read at
// import time, Load is called once by the owner, and the loaded data is
// immutable and shared by reference.
package coordination

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// Environment is one coordination geometry.
type Environment struct {
	Symbol             string       `json:"mp_symbol"`
	Name               string       `json:"name"`
	AlternativeNames   []string     `json:"alternative_names,omitempty"`
	Points             [][3]float64 `json:"points"`
	CoordinationNumber int          `json:"coordination,omitempty"`
}

// CoordinationNumberFromSymbol parses the number after the colon of an
// mp_symbol ("T:4" → 4).
func CoordinationNumberFromSymbol(symbol string) (int, error) {
	i := strings.LastIndexByte(symbol, ':')
	if i < 0 || i == len(symbol)-1 {
		return 0, pkgerrors.Newf(pkgerrors.ErrCodeCoordinationUnknownSymbol, "malformed mp_symbol %q", symbol)
	}
	n, err := strconv.Atoi(symbol[i+1:])
	if err != nil || n < 1 {
		return 0, pkgerrors.Newf(pkgerrors.ErrCodeCoordinationUnknownSymbol, "malformed mp_symbol %q", symbol)
	}
	return n, nil
}

// Source yields the raw environment definitions.
type Source interface {
	Environments(ctx context.Context) ([]Environment, error)
}

// DirSource reads one JSON definition per *.json file in a directory.
type DirSource struct {
	Dir string
}

// Environments implements Source.  Files are read in name order.
func (s DirSource) Environments(ctx context.Context) ([]Environment, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordRead, "failed to list coordination files")
	}
	sort.Strings(files)

	envs := make([]Environment, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordRead, "failed to read coordination file").WithDetail(f)
		}
		var env Environment
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordCorrupt, "failed to decode coordination file").WithDetail(f)
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// StaticSource serves a fixed list, for tests and embedded catalogues.
type StaticSource []Environment

func (s StaticSource) Environments(context.Context) ([]Environment, error) {
	return append([]Environment(nil), s...), nil
}

// Registry is a lazily loaded, read-only index of coordination environments.
type Registry struct {
	source Source
	logger logging.Logger

	once     sync.Once
	loadErr  error
	loaded   atomic.Bool
	bySymbol map[string]Environment
	symbols  []string
}

// NewRegistry returns an unloaded Registry reading from source.
func NewRegistry(source Source, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Registry{source: source, logger: logger.Named("coordination")}
}

// Load reads the source exactly once.  Later calls return the first result.
func (r *Registry) Load(ctx context.Context) error {
	r.once.Do(func() {
		r.loadErr = r.load(ctx)
		r.loaded.Store(r.loadErr == nil)
	})
	return r.loadErr
}

func (r *Registry) load(ctx context.Context) error {
	envs, err := r.source.Environments(ctx)
	if err != nil {
		return err
	}

	r.bySymbol = make(map[string]Environment, len(envs))
	for _, env := range envs {
		cn, err := CoordinationNumberFromSymbol(env.Symbol)
		if err != nil {
			return err
		}
		if env.CoordinationNumber == 0 {
			env.CoordinationNumber = cn
		}
		if _, dup := r.bySymbol[env.Symbol]; dup {
			return pkgerrors.Newf(pkgerrors.ErrCodeRecordCorrupt, "duplicate mp_symbol %q", env.Symbol)
		}
		r.bySymbol[env.Symbol] = env
		r.symbols = append(r.symbols, env.Symbol)
	}
	sort.Strings(r.symbols)

	r.logger.Info("coordination registry loaded", logging.Int("environments", len(r.symbols)))
	return nil
}

// Loaded reports whether Load completed successfully.
func (r *Registry) Loaded() bool {
	return r.loaded.Load()
}

// Symbols returns every known mp_symbol in sorted order.
func (r *Registry) Symbols() []string {
	return append([]string(nil), r.symbols...)
}

// Len returns the number of environments.
func (r *Registry) Len() int { return len(r.symbols) }

// Get returns the environment for symbol.
func (r *Registry) Get(symbol string) (Environment, error) {
	if !r.loaded.Load() {
		return Environment{}, pkgerrors.New(pkgerrors.ErrCodeCoordinationNotLoaded, "coordination registry not loaded")
	}
	env, ok := r.bySymbol[symbol]
	if !ok {
		return Environment{}, pkgerrors.Newf(pkgerrors.ErrCodeCoordinationUnknownSymbol, "unknown mp_symbol %q", symbol)
	}
	return env, nil
}

// Environments returns every environment in symbol order.
func (r *Registry) Environments() []Environment {
	out := make([]Environment, 0, len(r.symbols))
	for _, s := range r.symbols {
		out = append(out, r.bySymbol[s])
	}
	return out
}

//Personal.AI order the ending
