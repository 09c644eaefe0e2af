// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/clickscope/internal/database"
	"github.com/tomtom215/clickscope/internal/table"
)

type point struct {
	ID    int64
	Label string
	Score float64
	OK    bool
	At    time.Time
}

var pointCodec = table.Codec[point]{
	Columns: []table.Column{
		{Name: "id", Kind: table.KindInt},
		{Name: "label", Kind: table.KindString},
		{Name: "score", Kind: table.KindFloat},
		{Name: "ok", Kind: table.KindBool},
		{Name: "at", Kind: table.KindTime},
	},
	Encode: func(p point) []any { return []any{p.ID, p.Label, p.Score, p.OK, p.At} },
	Decode: func(r table.Row) (point, error) {
		return point{ID: r.Int("id"), Label: r.String("label"), Score: r.Float("score"), OK: r.Bool("ok"), At: r.Time("at")}, nil
	},
}

func samplePoints() []point {
	base := time.Date(2026, 2, 3, 4, 5, 6, 789000000, time.UTC)
	return []point{
		{ID: 1, Label: "Москва", Score: 12.5, OK: true, At: base},
		{ID: 2, Label: `quote "and", comma`, Score: -0.1, OK: false, At: base.Add(time.Hour)},
		{ID: 3, Label: "", Score: 100, OK: true, At: base.Add(-48 * time.Hour)},
	}
}

// fakeBackend records calls and fails on demand.
type fakeBackend struct {
	name   string
	ext    string
	fail   error
	writes int
	inner  Backend
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Ext() string  { return f.ext }

func (f *fakeBackend) Write(ctx context.Context, path string, fr *table.Frame) error {
	f.writes++
	if f.fail != nil {
		return f.fail
	}
	return f.inner.Write(ctx, path, fr)
}

func (f *fakeBackend) Read(ctx context.Context, path string) (*table.Frame, error) {
	return f.inner.Read(ctx, path)
}

func TestBackends_RoundTrip(t *testing.T) {
	db, err := database.Open(database.Options{Threads: 1, Compression: "zstd"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	arrowBackend, err := NewArrowParquetBackend("zstd")
	if err != nil {
		t.Fatal(err)
	}

	backends := []Backend{NewDuckDBParquetBackend(db), arrowBackend, NewCSVGzipBackend()}
	want := samplePoints()

	for _, b := range backends {
		t.Run(b.Name(), func(t *testing.T) {
			f, err := pointCodec.ToFrame(want)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(t.TempDir(), "points"+b.Ext())
			if err := b.Write(context.Background(), path, f); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			back, err := b.Read(context.Background(), path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			got, err := pointCodec.FromFrame(back)
			if err != nil {
				t.Fatalf("FromFrame() error = %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("got %d rows, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].ID != want[i].ID || got[i].Label != want[i].Label ||
					got[i].Score != want[i].Score || got[i].OK != want[i].OK || !got[i].At.Equal(want[i].At) {
					t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

// Parquet written by one engine must be readable by the other.
func TestParquetBackends_Interoperate(t *testing.T) {
	db, err := database.Open(database.Options{Threads: 1, Compression: "zstd"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	duck := NewDuckDBParquetBackend(db)
	arrowBackend, _ := NewArrowParquetBackend("snappy")

	f, _ := pointCodec.ToFrame(samplePoints())
	path := filepath.Join(t.TempDir(), "points.parquet")
	if err := duck.Write(context.Background(), path, f); err != nil {
		t.Fatalf("duckdb Write: %v", err)
	}
	back, err := arrowBackend.Read(context.Background(), path)
	if err != nil {
		t.Fatalf("arrow Read: %v", err)
	}
	got, err := pointCodec.FromFrame(back)
	if err != nil {
		t.Fatalf("FromFrame: %v", err)
	}
	if len(got) != 3 || got[1].Label != samplePoints()[1].Label {
		t.Errorf("arrow read of duckdb parquet = %+v", got)
	}
}

func TestNewArrowParquetBackend_BadCompression(t *testing.T) {
	if _, err := NewArrowParquetBackend("brotli-9000"); err == nil {
		t.Error("expected error for unknown compression")
	}
}

func TestBackendsFor(t *testing.T) {
	if _, err := BackendsFor(nil, nil, "zstd"); err == nil {
		t.Error("empty backend list should fail")
	}
	if _, err := BackendsFor([]string{BackendDuckDBParquet}, nil, "zstd"); err == nil {
		t.Error("duckdb backend without engine should fail")
	}
	if _, err := BackendsFor([]string{"tape"}, nil, "zstd"); err == nil {
		t.Error("unknown backend should fail")
	}

	got, err := BackendsFor([]string{BackendCSVGzip, BackendArrowParquet}, nil, "zstd")
	if err != nil {
		t.Fatalf("BackendsFor() error = %v", err)
	}
	if len(got) != 2 || got[0].Name() != BackendCSVGzip || got[1].Name() != BackendArrowParquet {
		t.Errorf("BackendsFor() order = %v", got)
	}
}

func TestPersist_FallsBackInOrder(t *testing.T) {
	dir := t.TempDir()
	broken := &fakeBackend{name: "broken", ext: ".parquet", fail: errors.New("writer unavailable")}
	text := &fakeBackend{name: BackendCSVGzip, ext: ".csv.gz", inner: NewCSVGzipBackend()}

	p, err := New(Options{Dir: filepath.Join(dir, "out")}, []Backend{broken, text}, nil)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := pointCodec.ToFrame(samplePoints())
	res, err := p.Persist(context.Background(), "points", f)
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if res.Backend != BackendCSVGzip {
		t.Errorf("Backend = %q, want %q", res.Backend, BackendCSVGzip)
	}
	if len(res.Attempts) != 2 || res.Attempts[0].Err == nil || res.Attempts[1].Err != nil {
		t.Errorf("Attempts = %+v, want one failure then success", res.Attempts)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "points.csv.gz")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "points.parquet.tmp")); !os.IsNotExist(err) {
		t.Error("failed attempt left a temporary file")
	}

	rec, err := p.Manifest().Lookup(context.Background(), "points")
	if err != nil || rec == nil {
		t.Fatalf("Lookup() = %v, %v", rec, err)
	}
	if rec.Backend != BackendCSVGzip || rec.Rows != 3 {
		t.Errorf("manifest record = %+v", rec)
	}
}

func TestPersist_AllBackendsFail(t *testing.T) {
	errA := errors.New("a broke")
	errB := errors.New("b broke")
	p, err := New(Options{Dir: t.TempDir()}, []Backend{
		&fakeBackend{name: "a", ext: ".a", fail: errA},
		&fakeBackend{name: "b", ext: ".b", fail: errB},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := pointCodec.ToFrame(samplePoints())
	_, err = p.Persist(context.Background(), "points", f)
	if !errors.Is(err, ErrAllBackendsFailed) {
		t.Fatalf("error = %v, want ErrAllBackendsFailed", err)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("error should join every attempt: %v", err)
	}
}

func TestPersist_BreakerSkipsRepeatedFailures(t *testing.T) {
	broken := &fakeBackend{name: "broken", ext: ".x", fail: errors.New("nope")}
	text := &fakeBackend{name: BackendCSVGzip, ext: ".csv.gz", inner: NewCSVGzipBackend()}
	p, err := New(Options{Dir: t.TempDir(), BreakerTimeout: time.Hour}, []Backend{broken, text}, nil)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := pointCodec.ToFrame(samplePoints())
	for i := 0; i < 5; i++ {
		if _, err := p.Persist(context.Background(), "points", f); err != nil {
			t.Fatalf("Persist #%d error = %v", i, err)
		}
	}
	if broken.writes != 3 {
		t.Errorf("broken backend called %d times, want 3 before the breaker opened", broken.writes)
	}
}

func TestLoad_NotCached(t *testing.T) {
	p, err := New(Options{Dir: t.TempDir()}, []Backend{NewCSVGzipBackend()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := p.Load(context.Background(), "missing"); !errors.Is(err, ErrNotCached) {
		t.Errorf("Load() error = %v, want ErrNotCached", err)
	}
}

func TestCached_Idempotent(t *testing.T) {
	p, err := New(Options{Dir: t.TempDir(), ReuseCache: true}, []Backend{NewCSVGzipBackend()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) ([]point, error) {
		calls++
		return samplePoints(), nil
	}

	first, err := Cached(ctx, p, "points", pointCodec, compute)
	if err != nil {
		t.Fatalf("first Cached() error = %v", err)
	}
	second, err := Cached(ctx, p, "points", pointCodec, func(context.Context) ([]point, error) {
		calls++
		return nil, errors.New("compute must not run on a cache hit")
	})
	if err != nil {
		t.Fatalf("second Cached() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
	if len(first) != len(second) {
		t.Fatalf("cached rows = %d, want %d", len(second), len(first))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i].Label, second[i].Label) || !first[i].At.Equal(second[i].At) {
			t.Errorf("row %d changed across cache hit: %+v vs %+v", i, first[i], second[i])
		}
	}

	rec, _ := p.Manifest().Lookup(ctx, "points")
	if rec == nil || !rec.CacheHit {
		t.Errorf("manifest should record the cache hit, got %+v", rec)
	}
}

func TestCached_ReuseDisabledRecomputes(t *testing.T) {
	p, err := New(Options{Dir: t.TempDir(), ReuseCache: false}, []Backend{NewCSVGzipBackend()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	compute := func(context.Context) ([]point, error) {
		calls++
		return samplePoints(), nil
	}
	for i := 0; i < 2; i++ {
		if _, err := Cached(context.Background(), p, "points", pointCodec, compute); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("compute called %d times, want 2", calls)
	}
}

func TestCached_SchemaMismatchRecomputes(t *testing.T) {
	p, err := New(Options{Dir: t.TempDir(), ReuseCache: true}, []Backend{NewCSVGzipBackend()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	stale := table.NewFrame(table.Column{Name: "id", Kind: table.KindString})
	_ = stale.Append("old")
	if _, err := p.Persist(ctx, "points", stale); err != nil {
		t.Fatal(err)
	}

	calls := 0
	got, err := Cached(ctx, p, "points", pointCodec, func(context.Context) ([]point, error) {
		calls++
		return samplePoints(), nil
	})
	if err != nil {
		t.Fatalf("Cached() error = %v", err)
	}
	if calls != 1 || len(got) != 3 {
		t.Errorf("calls = %d rows = %d, want recompute", calls, len(got))
	}
}

func TestCached_ComputeError(t *testing.T) {
	p, _ := New(Options{Dir: t.TempDir(), ReuseCache: true}, []Backend{NewCSVGzipBackend()}, nil)
	boom := errors.New("boom")
	_, err := Cached(context.Background(), p, "points", pointCodec, func(context.Context) ([]point, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}, []Backend{NewCSVGzipBackend()}, nil); err == nil {
		t.Error("missing dir should fail")
	}
	if _, err := New(Options{Dir: "x"}, nil, nil); err == nil {
		t.Error("no backends should fail")
	}
}
