package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studiowebux/stockterm/internal/cache"
	"github.com/studiowebux/stockterm/internal/imaging"
	"github.com/studiowebux/stockterm/internal/market"
)

// DefaultTimeout bounds one subprocess invocation.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of one submission, tagged with its fingerprint so
// the UI can drop results for selections it has moved past.
type Result struct {
	Fingerprint market.Fingerprint
	Artifact    *market.Artifact
	Err         error
}

// Handle observes one submission. Done delivers exactly one Result; reading
// it never blocks the sender.
type Handle struct {
	Fingerprint market.Fingerprint
	done        chan Result
}

// Done returns the completion channel.
func (h *Handle) Done() <-chan Result { return h.done }

// Journal receives a record of every completed fetch. Implemented by the
// history manager; a nil journal disables recording.
type Journal interface {
	Record(symbol, rng, interval, chartType string, duration time.Duration, err error)
}

// Dispatcher owns subprocess invocations. It enforces single-flight per
// fingerprint, consults the cache before spawning, and tracks which
// fingerprint is current so superseded completions can be identified.
type Dispatcher struct {
	runner  Runner
	cache   *cache.Cache
	journal Journal
	timeout time.Duration
	group   singleflight.Group

	mu      sync.Mutex
	current market.Fingerprint
}

// NewDispatcher wires a dispatcher. journal may be nil.
func NewDispatcher(runner Runner, c *cache.Cache, timeout time.Duration, journal Journal) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{runner: runner, cache: c, journal: journal, timeout: timeout}
}

// SetCurrent marks the fingerprint whose result should drive a redraw.
// Called by the UI whenever the selection changes; completions for any
// other fingerprint are cached but must not be displayed.
func (d *Dispatcher) SetCurrent(fp market.Fingerprint) {
	d.mu.Lock()
	d.current = fp
	d.mu.Unlock()
}

// Current returns the fingerprint set by the last SetCurrent.
func (d *Dispatcher) Current() market.Fingerprint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// IsCurrent reports whether fp still matches the current selection.
func (d *Dispatcher) IsCurrent(fp market.Fingerprint) bool {
	return d.Current() == fp
}

// Submit starts (or attaches to) a fetch for the selection. A cache hit
// resolves immediately without invoking the subprocess. Concurrent submits
// for the same fingerprint share one invocation; each handle still gets its
// own completion. cols and rows size the chart the subprocess renders.
func (d *Dispatcher) Submit(sel market.Selection, cols, rows int) *Handle {
	return d.submit(sel, cols, rows, false)
}

// Refresh fetches the selection even when a cached artifact exists. Used
// for explicit refetch and when the chart area changed enough that the
// cached raster would render blurry. The fresh artifact replaces the
// cached one.
func (d *Dispatcher) Refresh(sel market.Selection, cols, rows int) *Handle {
	return d.submit(sel, cols, rows, true)
}

func (d *Dispatcher) submit(sel market.Selection, cols, rows int, bypassCache bool) *Handle {
	fp := sel.Fingerprint()
	h := &Handle{Fingerprint: fp, done: make(chan Result, 1)}

	if !bypassCache {
		if art, ok := d.cache.Get(fp); ok {
			h.done <- Result{Fingerprint: fp, Artifact: art}
			return h
		}
	}

	// DoChan registers the fingerprint before returning, so a second submit
	// racing this one attaches instead of re-invoking.
	ch := d.group.DoChan(string(fp), func() (any, error) {
		return d.fetch(sel, fp, cols, rows)
	})
	go func() {
		r := <-ch
		res := Result{Fingerprint: fp, Err: r.Err}
		if r.Err == nil {
			res.Artifact = r.Val.(*market.Artifact)
		}
		h.done <- res
	}()
	return h
}

// fetch runs one subprocess invocation, decodes the raster, and caches the
// artifact. A late result for a superseded fingerprint still lands in the
// cache; it is valid for that fingerprint and benefits a future revisit.
func (d *Dispatcher) fetch(sel market.Selection, fp market.Fingerprint, cols, rows int) (*market.Artifact, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	raw, err := d.runner.Fetch(ctx, Params{Selection: sel, Columns: cols, Rows: rows})
	if err != nil {
		d.record(sel, time.Since(start), err)
		return nil, err
	}

	decoded, derr := imaging.Decode(raw.ImageData)
	if derr != nil {
		err = wrapError(KindDecode, derr, "chart image is corrupt")
		d.record(sel, time.Since(start), err)
		return nil, err
	}

	art := &market.Artifact{
		Fingerprint: fp,
		Image:       decoded,
		Quote:       raw.Quote,
		FetchedAt:   time.Now(),
		Columns:     cols,
		Rows:        rows,
	}
	d.cache.Put(fp, art)
	d.record(sel, time.Since(start), nil)
	return art, nil
}

func (d *Dispatcher) record(sel market.Selection, duration time.Duration, err error) {
	if d.journal == nil {
		return
	}
	d.journal.Record(sel.Symbol, sel.Range, sel.Interval, string(sel.ChartType), duration, err)
}
