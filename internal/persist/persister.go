// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/metrics"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/table"
)

var (
	// ErrAllBackendsFailed means no configured backend could write the artifact.
	ErrAllBackendsFailed = errors.New("all persistence backends failed")

	// ErrNotCached means no backend has a readable artifact for the name.
	ErrNotCached = errors.New("artifact not cached")
)

// Options configures a Persister.
type Options struct {
	// Dir receives every artifact. It is created on first write.
	Dir string

	// ReuseCache lets Cached serve existing artifacts.
	ReuseCache bool

	// BreakerTimeout is how long a tripped backend is skipped before it is
	// tried again. Zero means one minute.
	BreakerTimeout time.Duration
}

// Attempt is one backend try within a Persist call.
type Attempt struct {
	Backend string
	Err     error
}

// Result describes where an artifact was written or read from.
type Result struct {
	Name     string
	Backend  string
	Path     string
	Rows     int
	CacheHit bool
	Attempts []Attempt
}

// Persister writes frames through an ordered backend chain. Each backend
// sits behind its own circuit breaker so a backend that keeps failing is
// skipped without paying for another full write.
type Persister struct {
	dir      string
	reuse    bool
	backends []Backend
	breakers map[string]*gobreaker.CircuitBreaker[struct{}]
	manifest Manifest
}

// New creates a Persister. manifest may be nil, in which case an in-memory
// manifest is used.
func New(opts Options, backends []Backend, manifest Manifest) (*Persister, error) {
	if opts.Dir == "" {
		return nil, errors.New("output directory is required")
	}
	if len(backends) == 0 {
		return nil, errors.New("at least one backend is required")
	}
	if manifest == nil {
		manifest = NewInMemoryManifest()
	}
	timeout := opts.BreakerTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	p := &Persister{
		dir:      opts.Dir,
		reuse:    opts.ReuseCache,
		backends: backends,
		breakers: make(map[string]*gobreaker.CircuitBreaker[struct{}], len(backends)),
		manifest: manifest,
	}
	for _, b := range backends {
		p.breakers[b.Name()] = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "persist-" + b.Name(),
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Info().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Persist backend breaker state change")
			},
		})
	}
	return p, nil
}

// Manifest returns the artifact manifest.
func (p *Persister) Manifest() Manifest {
	return p.manifest
}

// Backends returns the configured backend names in order.
func (p *Persister) Backends() []string {
	out := make([]string, len(p.backends))
	for i, b := range p.backends {
		out[i] = b.Name()
	}
	return out
}

// Path returns the artifact path name would have when written by b.
func (p *Persister) Path(name string, b Backend) string {
	return filepath.Join(p.dir, name+b.Ext())
}

// Persist writes f under name with the first backend that succeeds. Each
// backend writes to a temporary file that is renamed into place, so a
// failed attempt never leaves a partial artifact behind.
func (p *Persister) Persist(ctx context.Context, name string, f *table.Frame) (*Result, error) {
	log := logging.Ctx(ctx)

	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{Name: name, Rows: f.Len()}
	var errs []error

	for _, b := range p.backends {
		path := p.Path(name, b)
		tmp := path + ".tmp"

		_, err := p.breakers[b.Name()].Execute(func() (struct{}, error) {
			if err := b.Write(ctx, tmp, f); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, os.Rename(tmp, path)
		})
		if err != nil {
			_ = os.Remove(tmp)
			res.Attempts = append(res.Attempts, Attempt{Backend: b.Name(), Err: err})
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			metrics.RecordPersistAttempt(b.Name(), metrics.PersistFailure)

			ev := log.Warn().Err(err).Str("artifact", name).Str("backend", b.Name())
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				ev.Msg("Persist backend skipped, circuit open")
			} else {
				ev.Msg("Persist backend failed")
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		res.Attempts = append(res.Attempts, Attempt{Backend: b.Name()})
		res.Backend = b.Name()
		res.Path = path
		metrics.RecordPersistAttempt(b.Name(), metrics.PersistSuccess)
		p.record(ctx, res)

		log.Info().
			Str("artifact", name).
			Str("backend", b.Name()).
			Str("path", path).
			Int("rows", res.Rows).
			Msg("Artifact persisted")
		return res, nil
	}

	return res, fmt.Errorf("%w: %s: %w", ErrAllBackendsFailed, name, errors.Join(errs...))
}

// Load reads name from the first backend, in configured order, whose
// artifact exists and reads cleanly.
func (p *Persister) Load(ctx context.Context, name string) (*table.Frame, *Result, error) {
	log := logging.Ctx(ctx)

	for _, b := range p.backends {
		path := p.Path(name, b)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := b.Read(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("artifact", name).Str("backend", b.Name()).Msg("Cached artifact unreadable")
			continue
		}
		return f, &Result{Name: name, Backend: b.Name(), Path: path, Rows: f.Len(), CacheHit: true}, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrNotCached, name)
}

func (p *Persister) record(ctx context.Context, res *Result) {
	rec := models.ArtifactRecord{
		Name:      res.Name,
		Backend:   res.Backend,
		Path:      res.Path,
		Rows:      res.Rows,
		CacheHit:  res.CacheHit,
		RunID:     logging.RunIDFromContext(ctx),
		WrittenAt: time.Now().UTC(),
	}
	if err := p.manifest.Record(ctx, rec); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("artifact", res.Name).Msg("Failed to record artifact in manifest")
	}
}

// Cached returns the artifact stored under name when cache reuse is
// enabled and it decodes with codec; compute is not called in that case.
// Otherwise compute runs and its output is persisted. Reuse is path-based:
// a changed input with an existing artifact still serves the artifact.
func Cached[T any](ctx context.Context, p *Persister, name string, codec table.Codec[T], compute func(context.Context) ([]T, error)) ([]T, error) {
	log := logging.Ctx(ctx)

	if p.reuse {
		f, res, err := p.Load(ctx, name)
		switch {
		case err == nil:
			items, decErr := codec.FromFrame(f)
			if decErr == nil {
				metrics.RecordCacheHit(name)
				metrics.RecordPersistAttempt(res.Backend, metrics.PersistSkipped)
				p.record(ctx, res)
				log.Info().
					Str("artifact", name).
					Str("backend", res.Backend).
					Int("rows", res.Rows).
					Msg("Cache hit, reusing artifact")
				return items, nil
			}
			log.Warn().Err(decErr).Str("artifact", name).Msg("Cached artifact has a different schema, recomputing")
		case !errors.Is(err, ErrNotCached):
			return nil, err
		}
	}

	items, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	f, err := codec.ToFrame(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if _, err := p.Persist(ctx, name, f); err != nil {
		return nil, err
	}
	return items, nil
}
