package application

import (
	"time"

	"desksweep/internal/config"
	"desksweep/internal/debug"
	"desksweep/internal/domain"
	"desksweep/internal/ports"
	"desksweep/internal/review"
	"desksweep/internal/suggest"
)

// timeNow is swapped out by tests that pin the clock
var timeNow = time.Now

// Service is the coordinating context of a declutter session. It owns the
// session store, the undo history, and the counters, and it is the only
// writer of that state: all mutating methods must be called from a single
// goroutine. The suggestion engine is the one background collaborator; its
// results come back through Engine().Results() and are committed with
// CommitResult.
type Service struct {
	cfg    *config.Config
	source ports.FileSource
	mover  ports.FileMover
	cloud  ports.CloudMover
	thumbs ports.ThumbnailProvider

	session *domain.Session
	history *domain.UndoHistory
	engine  *suggest.Engine
	review  *review.Context

	lastFocus domain.FileID
	notices   []string
}

// NewService wires a service from its collaborators. Any of mover, cloud and
// thumbs may be nil; the matching operations then degrade to no-ops.
func NewService(cfg *config.Config, source ports.FileSource, mover ports.FileMover, cloud ports.CloudMover, thumbs ports.ThumbnailProvider) *Service {
	th := suggest.Thresholds{
		OldFileAge:        cfg.OldFileAge(),
		LargeFileBytes:    cfg.LargeFileBytes(),
		SameSessionWindow: cfg.SameSessionWindow(),
		SimilarNamesMin:   cfg.SimilarNamesMin,
	}
	return &Service{
		cfg:     cfg,
		source:  source,
		mover:   mover,
		cloud:   cloud,
		thumbs:  thumbs,
		session: domain.NewSession(),
		history: domain.NewUndoHistory(cfg.UndoDepth),
		engine:  suggest.NewEngine(th, cfg.Debounce()),
	}
}

// Session exposes the session store for read-only queries
func (s *Service) Session() *domain.Session { return s.session }

// Engine exposes the suggestion engine, primarily for its results channel
func (s *Service) Engine() *suggest.Engine { return s.engine }

// Config returns the active configuration
func (s *Service) Config() *config.Config { return s.cfg }

// Close releases the background collaborators
func (s *Service) Close() {
	s.engine.Close()
	if s.thumbs != nil {
		s.thumbs.Close()
	}
}

func (s *Service) binMode() domain.BinMode {
	if s.cfg.Deferred() {
		return domain.BinDeferred
	}
	return domain.BinImmediate
}

// Load enumerates the location and replaces the session. An enumeration
// failure is session-fatal: it surfaces as a ScanError and the working list
// stays empty.
func (s *Service) Load(location string) error {
	records, err := s.source.Enumerate(location)
	if err != nil {
		s.session.Load(nil)
		s.lastFocus = ""
		return &ScanError{Location: location, Err: err}
	}
	s.session.Load(records)
	s.lastFocus = ""
	s.review = nil
	s.notices = nil
	s.engine.Cancel()
	debug.Log(debug.SESSION, "loaded %d records from %s", len(records), location)
	return nil
}

// SetFilter restricts the visible sequence to one type and resets the cursor
func (s *Service) SetFilter(t domain.FileType) {
	s.session.SetFilter(t)
}

// ClearFilter removes the active filter
func (s *Service) ClearFilter() {
	s.session.ClearFilter()
}

// Current returns the record at the cursor. Reading it is the sole trigger
// for suggestion recomputation: when the returned identity differs from the
// previously observed one, the in-flight computation (if any) is cancelled
// and, unless the cache already holds an entry for the new file, a fresh
// computation starts and the published suggestions reset to empty.
func (s *Service) Current() (domain.FileRecord, bool) {
	rec, ok := s.session.Current()
	if !ok {
		s.lastFocus = ""
		s.engine.Cancel()
		return domain.FileRecord{}, false
	}
	if rec.ID != s.lastFocus {
		s.lastFocus = rec.ID
		if _, cached := s.session.SuggestionsFor(rec.ID); !cached {
			s.engine.Focus(rec, s.session.Window(s.cfg.ComparisonWindow))
		} else {
			s.engine.Cancel()
		}
		if s.thumbs != nil && rec.Preview == nil {
			s.thumbs.Request(rec)
		}
	}
	return rec, true
}

// CurrentSuggestions returns the cached suggestions for the current file, or
// nil while a computation is pending — the caller is never shown stale
// suggestions for a previous file.
func (s *Service) CurrentSuggestions() []domain.Suggestion {
	rec, ok := s.session.Current()
	if !ok {
		return nil
	}
	sugs, _ := s.session.SuggestionsFor(rec.ID)
	return sugs
}

// CommitResult accepts a completed background computation. The result is
// silently discarded when it is stale: an older generation, a file no longer
// current or no longer in the working list, or a cache slot already filled.
func (s *Service) CommitResult(r suggest.Result) bool {
	if r.Gen != s.engine.Gen() {
		return false
	}
	cur, ok := s.session.Current()
	if !ok || cur.ID != r.ID {
		return false
	}
	if _, cached := s.session.SuggestionsFor(r.ID); cached {
		return false
	}
	return s.session.SetSuggestions(r.ID, r.Suggestions)
}

// Advance skips past the current file without a decision
func (s *Service) Advance() { s.session.Advance() }

// Decide applies a decision to the file at the cursor
func (s *Service) Decide(d domain.Decision) error {
	rec, ok := s.session.Current()
	if !ok {
		return ErrSessionDone
	}
	return s.DecideID(d, rec.ID)
}

// DecideID applies a decision to an arbitrary working-list file
func (s *Service) DecideID(d domain.Decision, id domain.FileID) error {
	rec, ok := s.session.Get(id)
	if !ok {
		return ErrNotFound
	}
	toTrash, ok := domain.Apply(s.session, s.history, d, id, s.binMode())
	if !ok {
		return ErrNotFound
	}
	s.dispatch(d, rec, toTrash)
	debug.Log(debug.SESSION, "decided %s on %s", d, rec.Name)
	return nil
}

// DecideBulk applies one decision to a set of files, advancing the cursor
// once at the end. It runs synchronously on the coordinating goroutine so
// partial states are never observable.
func (s *Service) DecideBulk(d domain.Decision, ids []domain.FileID) {
	var cloudRecs []domain.FileRecord
	if d == domain.DecisionCloud {
		cloudRecs = s.lookup(ids)
	}
	toTrash := domain.ApplyAll(s.session, s.history, d, ids, s.binMode())
	for _, rec := range toTrash {
		s.trash(rec)
	}
	if d == domain.DecisionCloud {
		for _, rec := range cloudRecs {
			s.relocate(rec)
		}
	}
}

func (s *Service) lookup(ids []domain.FileID) []domain.FileRecord {
	var out []domain.FileRecord
	for _, id := range ids {
		if rec, ok := s.session.Get(id); ok {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Service) dispatch(d domain.Decision, rec domain.FileRecord, toTrash []domain.FileRecord) {
	for _, t := range toTrash {
		s.trash(t)
	}
	if d == domain.DecisionCloud {
		s.relocate(rec)
	}
}

// trash hands a binned file to the mover. A failure is absorbed: the
// decision stands and the error is recorded as a notice.
func (s *Service) trash(rec domain.FileRecord) {
	if s.mover == nil {
		return
	}
	if err := s.mover.Trash(rec); err != nil {
		me := &MoveError{Path: rec.Path, Err: err}
		s.notices = append(s.notices, me.Error())
		debug.Log(debug.TRASH, "%v", me)
	}
}

func (s *Service) relocate(rec domain.FileRecord) {
	if s.cloud == nil {
		return
	}
	if err := s.cloud.Relocate(rec); err != nil {
		me := &MoveError{Path: rec.Path, Err: err}
		s.notices = append(s.notices, me.Error())
		debug.Log(debug.TRASH, "%v", me)
	}
}

// Undo reverses the most recent decision. Returns false when the history is
// empty; that is a normal negative result, not a fault.
func (s *Service) Undo() bool {
	ok := domain.Undo(s.session, s.history)
	if ok {
		// The restored file may be the new current; refocus through the
		// usual trigger.
		s.lastFocus = ""
	}
	return ok
}

// Notices drains the accumulated non-fatal error reports
func (s *Service) Notices() []string {
	out := s.notices
	s.notices = nil
	return out
}

// StartGroupReview opens a review context over the suggestion's surviving
// members and warms their previews
func (s *Service) StartGroupReview(sug domain.Suggestion) error {
	ctx := review.Start(s.session, sug)
	if ctx == nil {
		return ErrNotFound
	}
	if s.thumbs != nil {
		for _, m := range ctx.Members {
			if m.Preview == nil {
				s.thumbs.Request(m)
			}
		}
	}
	s.review = ctx
	return nil
}

// Review returns the open review context, if any
func (s *Service) Review() *review.Context { return s.review }

// GroupActions derives the smart actions for the open review
func (s *Service) GroupActions() ([]review.SmartAction, error) {
	if s.review == nil {
		return nil, ErrNoReview
	}
	opts := review.Options{
		KeepNewestCount: s.cfg.KeepNewestCount,
		AgedMemberAge:   s.cfg.AgedMemberAge(),
	}
	return review.DeriveSmartActions(s.review, opts, timeNow()), nil
}

// ApplyGroupAction executes one smart action against the whole group via the
// bulk decision path, then drops the processed members from the context.
// When the context empties, the review closes implicitly.
func (s *Service) ApplyGroupAction(index int) error {
	actions, err := s.GroupActions()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(actions) {
		return ErrInvalidAction
	}
	a := actions[index]
	if len(a.Keep) > 0 {
		s.DecideBulk(domain.DecisionKeep, a.Keep)
	}
	if len(a.Bin) > 0 {
		s.DecideBulk(domain.DecisionBin, a.Bin)
	}
	processed := append(append([]domain.FileID(nil), a.Keep...), a.Bin...)
	if s.review.DropMembers(processed) {
		s.review = nil
	}
	return nil
}

// CloseGroupReview abandons the open review without further decisions
func (s *Service) CloseGroupReview() { s.review = nil }

// RestoreFromBin reinstates a pending-bin file in the working list
// (deferred mode only)
func (s *Service) RestoreFromBin(id domain.FileID) bool {
	return domain.RestoreFromBin(s.session, id)
}

// CommitBin flushes the pending-bin collection through the mover. Individual
// failures are absorbed as notices; the files stay binned either way.
func (s *Service) CommitBin() int {
	pending := s.session.TakePendingBin()
	for _, rec := range pending {
		s.trash(rec)
	}
	return len(pending)
}

// Thumbnail returns the cached preview for a file, if generated yet
func (s *Service) Thumbnail(id domain.FileID) (domain.Thumbnail, bool) {
	if s.thumbs == nil {
		return domain.Thumbnail{}, false
	}
	return s.thumbs.Get(id)
}
