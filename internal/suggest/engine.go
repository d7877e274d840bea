package suggest

import (
	"context"
	"sync"
	"time"

	"desksweep/internal/debug"
	"desksweep/internal/domain"
)

// Result is the asynchronous completion message for one computation. Gen is
// a generation counter: only the latest generation's result may be committed
// to the session's suggestion cache.
type Result struct {
	ID          domain.FileID
	Suggestions []domain.Suggestion
	Gen         uint64
}

// Engine runs suggestion computations off the coordinating goroutine. At
// most one computation is logically active: focusing a new file cancels the
// previous one. Each computation waits out a debounce delay before doing any
// comparison work, so rapid navigation costs nothing.
type Engine struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool

	results  chan Result
	debounce time.Duration
	th       Thresholds
	now      func() time.Time
}

// NewEngine creates an engine with the given thresholds and debounce delay
func NewEngine(th Thresholds, debounce time.Duration) *Engine {
	return &Engine{
		results:  make(chan Result, 8),
		debounce: debounce,
		th:       th,
		now:      time.Now,
	}
}

// Results delivers completion messages to the coordinating goroutine
func (e *Engine) Results() <-chan Result { return e.results }

// Focus starts a computation for the newly focused file, cancelling any
// in-flight one. It returns the generation assigned to this computation.
func (e *Engine) Focus(focus domain.FileRecord, window []domain.FileRecord) uint64 {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	if e.closed {
		e.mu.Unlock()
		return 0
	}
	e.gen++
	gen := e.gen
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	debug.Log(debug.SUGGEST, "focus %s gen=%d window=%d", focus.ID, gen, len(window))
	go e.compute(ctx, gen, focus, window)
	return gen
}

// Cancel abandons the in-flight computation, if any
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()
}

// Gen returns the most recently issued generation
func (e *Engine) Gen() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// Close cancels any in-flight work and prevents new computations
func (e *Engine) Close() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.closed = true
	e.mu.Unlock()
}

func (e *Engine) compute(ctx context.Context, gen uint64, focus domain.FileRecord, window []domain.FileRecord) {
	// Debounce: bail out cheaply when the focus moves on before the delay
	// elapses.
	timer := time.NewTimer(e.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		debug.Log(debug.SUGGEST, "cancelled during debounce %s gen=%d", focus.ID, gen)
		return
	case <-timer.C:
	}

	sugs := e.detect(ctx, focus, window)
	if ctx.Err() != nil {
		debug.Log(debug.SUGGEST, "cancelled during comparison %s gen=%d", focus.ID, gen)
		return
	}

	select {
	case e.results <- Result{ID: focus.ID, Suggestions: sugs, Gen: gen}:
	case <-ctx.Done():
	}
}

// detect runs the rules one at a time, checking for cancellation between
// them so an abandoned computation stops consuming the worker
func (e *Engine) detect(ctx context.Context, focus domain.FileRecord, window []domain.FileRecord) []domain.Suggestion {
	now := e.now()
	var out []domain.Suggestion

	steps := []func() (domain.Suggestion, bool){
		func() (domain.Suggestion, bool) { return detectDuplicates(focus, window) },
		func() (domain.Suggestion, bool) {
			return detectSimilarNames(focus, window, e.th.SimilarNamesMin)
		},
		func() (domain.Suggestion, bool) {
			return detectSameSession(focus, window, e.th.SameSessionWindow)
		},
		func() (domain.Suggestion, bool) { return detectOldFile(focus, e.th.OldFileAge, now) },
		func() (domain.Suggestion, bool) { return detectLargeFile(focus, e.th.LargeFileBytes) },
		func() (domain.Suggestion, bool) { return detectTemporaryFile(focus) },
	}
	for _, step := range steps {
		if ctx.Err() != nil {
			return nil
		}
		if s, ok := step(); ok {
			out = append(out, s)
		}
	}
	return out
}
