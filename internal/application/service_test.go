package application

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"desksweep/internal/config"
	"desksweep/internal/domain"
	"desksweep/internal/suggest"
)

type fakeSource struct {
	files []domain.FileRecord
	err   error
}

func (f *fakeSource) Enumerate(location string) ([]domain.FileRecord, error) {
	return f.files, f.err
}

type fakeMover struct {
	trashed []domain.FileID
	err     error
}

func (f *fakeMover) Trash(rec domain.FileRecord) error {
	if f.err != nil {
		return f.err
	}
	f.trashed = append(f.trashed, rec.ID)
	return nil
}

type fakeCloud struct {
	relocated []domain.FileID
}

func (f *fakeCloud) Relocate(rec domain.FileRecord) error {
	f.relocated = append(f.relocated, rec.ID)
	return nil
}

func testFiles(n int) []domain.FileRecord {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	files := make([]domain.FileRecord, n)
	for i := range files {
		files[i] = domain.FileRecord{
			ID:        domain.FileID(fmt.Sprintf("f%d", i)),
			Name:      fmt.Sprintf("doc%d.pdf", i),
			Size:      int64(1000 * (i + 1)),
			Type:      domain.FileTypeDocument,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return files
}

func newTestService(t *testing.T, files []domain.FileRecord) (*Service, *fakeMover, *fakeCloud) {
	t.Helper()
	cfg := config.Default()
	cfg.DebounceMs = 1
	mover := &fakeMover{}
	cloud := &fakeCloud{}
	svc := NewService(cfg, &fakeSource{files: files}, mover, cloud, nil)
	t.Cleanup(svc.Close)
	if err := svc.Load("/desk"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return svc, mover, cloud
}

func TestLoadFailureIsSessionFatal(t *testing.T) {
	cfg := config.Default()
	boom := errors.New("permission denied")
	svc := NewService(cfg, &fakeSource{err: boom}, nil, nil, nil)
	defer svc.Close()

	err := svc.Load("/desk")
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("Load() error = %T, want *ScanError", err)
	}
	if !errors.Is(err, boom) {
		t.Error("ScanError does not wrap the cause")
	}
	if svc.Session().Len() != 0 {
		t.Errorf("working list len = %d after failed load, want 0", svc.Session().Len())
	}
}

func TestCurrentTriggersSuggestionComputation(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(3))

	rec, ok := svc.Current()
	if !ok || rec.ID != "f0" {
		t.Fatalf("Current() = %v %v, want f0", rec.ID, ok)
	}
	if sugs := svc.CurrentSuggestions(); sugs != nil {
		t.Errorf("CurrentSuggestions = %v before commit, want nil", sugs)
	}

	select {
	case r := <-svc.Engine().Results():
		if !svc.CommitResult(r) {
			t.Error("CommitResult rejected a fresh result")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no suggestion result arrived")
	}

	if _, cached := svc.Session().SuggestionsFor("f0"); !cached {
		t.Error("suggestion cache empty after commit")
	}
}

func TestCommitResultRejectsStaleGeneration(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(3))

	svc.Current() // focus f0, gen 1
	var stale suggest.Result
	select {
	case stale = <-svc.Engine().Results():
	case <-time.After(2 * time.Second):
		t.Fatal("no result for the first focus")
	}

	// Move on before committing; the old result must now be refused.
	svc.Advance()
	svc.Current() // focus f1, gen 2

	if svc.CommitResult(stale) {
		t.Error("CommitResult accepted a result from a superseded generation")
	}
}

func TestCommitResultRejectsNonCurrentFile(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(2))

	r := suggest.Result{ID: "f1", Gen: svc.Engine().Gen()}
	if svc.CommitResult(r) {
		t.Error("CommitResult accepted a result for a file that is not current")
	}
}

func TestDecideBinImmediateTrashes(t *testing.T) {
	svc, mover, _ := newTestService(t, testFiles(3))

	if err := svc.Decide(domain.DecisionBin); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if len(mover.trashed) != 1 || mover.trashed[0] != "f0" {
		t.Errorf("trashed = %v, want [f0]", mover.trashed)
	}
	if c := svc.Session().Counters(); c.Binned != 1 || c.ReclaimedBytes != 1000 {
		t.Errorf("counters = %+v", c)
	}
}

func TestDecideTrashFailureBecomesNotice(t *testing.T) {
	svc, mover, _ := newTestService(t, testFiles(2))
	mover.err = errors.New("disk full")

	if err := svc.Decide(domain.DecisionBin); err != nil {
		t.Fatalf("Decide() error = %v, trash failures must not fail the decision", err)
	}
	// The decision stands either way.
	if svc.Session().Counters().Binned != 1 {
		t.Error("bin decision rolled back on trash failure")
	}
	notices := svc.Notices()
	if len(notices) != 1 {
		t.Fatalf("notices = %v, want one move error", notices)
	}
	if svc.Notices() != nil {
		t.Error("Notices() did not drain")
	}
}

func TestDecideCloudRelocatesAndCountsAsKept(t *testing.T) {
	svc, _, cloud := newTestService(t, testFiles(2))

	if err := svc.Decide(domain.DecisionCloud); err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if len(cloud.relocated) != 1 || cloud.relocated[0] != "f0" {
		t.Errorf("relocated = %v, want [f0]", cloud.relocated)
	}
	if svc.Session().Counters().Kept != 1 {
		t.Errorf("Kept = %d, want 1", svc.Session().Counters().Kept)
	}
}

func TestDecideOnFinishedSession(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(1))
	svc.Decide(domain.DecisionKeep)

	if err := svc.Decide(domain.DecisionKeep); !errors.Is(err, ErrSessionDone) {
		t.Errorf("Decide() error = %v, want ErrSessionDone", err)
	}
}

func TestUndoRestoresAndRefocuses(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(3))

	svc.Current()
	svc.Decide(domain.DecisionKeep)

	if !svc.Undo() {
		t.Fatal("Undo() = false")
	}
	rec, ok := svc.Current()
	if !ok || rec.ID != "f0" {
		t.Errorf("Current() = %v %v after undo, want f0", rec.ID, ok)
	}
	if svc.Session().Counters().Kept != 0 {
		t.Errorf("Kept = %d after undo, want 0", svc.Session().Counters().Kept)
	}

	svc.Undo()
	if svc.Undo() {
		t.Error("Undo() = true with empty history")
	}
}

func TestGroupReviewFlow(t *testing.T) {
	svc, mover, _ := newTestService(t, testFiles(4))

	sug := domain.Suggestion{
		Kind:    domain.SuggestionDuplicate,
		Members: []domain.FileID{"f0", "f1", "f2"},
	}
	if err := svc.StartGroupReview(sug); err != nil {
		t.Fatalf("StartGroupReview() error = %v", err)
	}

	actions, err := svc.GroupActions()
	if err != nil {
		t.Fatalf("GroupActions() error = %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("actions len = %d, want 1", len(actions))
	}

	// Keep newest (f2), bin f0 and f1; the review closes itself.
	if err := svc.ApplyGroupAction(0); err != nil {
		t.Fatalf("ApplyGroupAction() error = %v", err)
	}
	if svc.Review() != nil {
		t.Error("review still open after processing every member")
	}
	if len(mover.trashed) != 2 {
		t.Errorf("trashed = %v, want two members", mover.trashed)
	}
	c := svc.Session().Counters()
	if c.Kept != 1 || c.Binned != 2 {
		t.Errorf("counters = %+v, want kept 1 binned 2", c)
	}
	if svc.Session().Len() != 1 {
		t.Errorf("working list len = %d, want 1", svc.Session().Len())
	}
}

func TestGroupReviewInvalidAction(t *testing.T) {
	svc, _, _ := newTestService(t, testFiles(3))

	if _, err := svc.GroupActions(); !errors.Is(err, ErrNoReview) {
		t.Errorf("GroupActions() error = %v, want ErrNoReview", err)
	}

	svc.StartGroupReview(domain.Suggestion{
		Kind:    domain.SuggestionDuplicate,
		Members: []domain.FileID{"f0", "f1"},
	})
	if err := svc.ApplyGroupAction(7); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("ApplyGroupAction(7) error = %v, want ErrInvalidAction", err)
	}
}

func TestDeferredBinLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.DebounceMs = 1
	cfg.BinMode = "deferred"
	mover := &fakeMover{}
	svc := NewService(cfg, &fakeSource{files: testFiles(3)}, mover, nil, nil)
	defer svc.Close()
	svc.Load("/desk")

	svc.Decide(domain.DecisionBin)
	svc.Decide(domain.DecisionBin)

	if len(mover.trashed) != 0 {
		t.Errorf("trashed = %v in deferred mode, want nothing yet", mover.trashed)
	}
	if len(svc.Session().PendingBin()) != 2 {
		t.Fatalf("PendingBin len = %d, want 2", len(svc.Session().PendingBin()))
	}

	if !svc.RestoreFromBin("f0") {
		t.Fatal("RestoreFromBin() = false")
	}
	if svc.Session().Counters().Binned != 1 {
		t.Errorf("Binned = %d after restore, want 1", svc.Session().Counters().Binned)
	}

	if n := svc.CommitBin(); n != 1 {
		t.Errorf("CommitBin() = %d, want 1", n)
	}
	if len(mover.trashed) != 1 || mover.trashed[0] != "f1" {
		t.Errorf("trashed = %v, want [f1]", mover.trashed)
	}
	if len(svc.Session().PendingBin()) != 0 {
		t.Error("pending bin not emptied by commit")
	}
}
