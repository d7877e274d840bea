package review

import (
	"fmt"
	"testing"
	"time"

	"desksweep/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func loadedSession(n int) *domain.Session {
	s := domain.NewSession()
	files := make([]domain.FileRecord, n)
	for i := range files {
		files[i] = domain.FileRecord{
			ID:        domain.FileID(fmt.Sprintf("f%d", i)),
			Name:      fmt.Sprintf("shot %d.png", i),
			Size:      int64(100 * (i + 1)),
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		}
	}
	s.Load(files)
	return s
}

func memberSet(ids []domain.FileID) map[domain.FileID]bool {
	out := make(map[domain.FileID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func TestStartResolvesLiveMembers(t *testing.T) {
	s := loadedSession(4)
	sug := domain.Suggestion{
		Kind:    domain.SuggestionDuplicate,
		Members: []domain.FileID{"f0", "f2", "gone"},
	}

	ctx := Start(s, sug)
	if ctx == nil {
		t.Fatal("Start() = nil with live members")
	}
	if len(ctx.Members) != 2 {
		t.Errorf("Members len = %d, want 2 (dead ids dropped)", len(ctx.Members))
	}
}

func TestStartAllMembersGone(t *testing.T) {
	s := loadedSession(2)
	sug := domain.Suggestion{Members: []domain.FileID{"x", "y"}}
	if ctx := Start(s, sug); ctx != nil {
		t.Error("Start() opened a review with no surviving members")
	}
}

func TestDropMembers(t *testing.T) {
	s := loadedSession(3)
	ctx := Start(s, domain.Suggestion{Members: []domain.FileID{"f0", "f1", "f2"}})

	if ctx.DropMembers([]domain.FileID{"f1"}) {
		t.Error("DropMembers reported empty with members left")
	}
	if len(ctx.Members) != 2 {
		t.Errorf("Members len = %d, want 2", len(ctx.Members))
	}
	if !ctx.DropMembers([]domain.FileID{"f0", "f2"}) {
		t.Error("DropMembers did not report the context empty")
	}
}

func TestDeriveSmartActionsDuplicate(t *testing.T) {
	s := loadedSession(4)
	ctx := Start(s, domain.Suggestion{
		Kind:    domain.SuggestionDuplicate,
		Members: []domain.FileID{"f0", "f1", "f2", "f3"},
	})

	actions := DeriveSmartActions(ctx, DefaultOptions(), testNow)
	if len(actions) != 1 {
		t.Fatalf("actions len = %d, want 1", len(actions))
	}
	a := actions[0]
	if len(a.Keep) != 1 || len(a.Bin) != 3 {
		t.Fatalf("keep %d bin %d, want keep 1 bin 3", len(a.Keep), len(a.Bin))
	}
	// f3 has the newest creation time.
	if a.Keep[0] != "f3" {
		t.Errorf("kept %v, want the newest member f3", a.Keep[0])
	}
	if memberSet(a.Bin)["f3"] {
		t.Error("newest member also listed for binning")
	}
}

func TestDeriveSmartActionsSimilarNames(t *testing.T) {
	s := loadedSession(4)
	// Make two members old enough for the bin-aged action.
	files := s.Files()
	for i := 0; i < 2; i++ {
		rec, _, _ := s.Remove(files[i].ID)
		rec.CreatedAt = testNow.AddDate(0, 0, -30)
		s.Reinsert(rec, i)
	}

	ctx := Start(s, domain.Suggestion{
		Kind:    domain.SuggestionSimilarNames,
		Members: []domain.FileID{"f0", "f1", "f2", "f3"},
	})

	opts := Options{KeepNewestCount: 2, AgedMemberAge: 7 * 24 * time.Hour}
	actions := DeriveSmartActions(ctx, opts, testNow)
	if len(actions) != 2 {
		t.Fatalf("actions len = %d, want keep-newest plus bin-aged", len(actions))
	}
	if len(actions[0].Keep) != 2 || len(actions[0].Bin) != 2 {
		t.Errorf("keep %d bin %d, want 2 and 2", len(actions[0].Keep), len(actions[0].Bin))
	}
	if len(actions[1].Bin) != 2 {
		t.Errorf("aged action bins %d, want 2", len(actions[1].Bin))
	}
}

func TestDeriveSmartActionsSameSession(t *testing.T) {
	s := loadedSession(3)
	ctx := Start(s, domain.Suggestion{
		Kind:    domain.SuggestionSameSession,
		Members: []domain.FileID{"f0", "f1", "f2"},
	})

	actions := DeriveSmartActions(ctx, DefaultOptions(), testNow)
	if len(actions) != 2 {
		t.Fatalf("actions len = %d, want keep-all and bin-all", len(actions))
	}
	if len(actions[0].Keep) != 3 || len(actions[0].Bin) != 0 {
		t.Errorf("first action keep %d bin %d, want keep all", len(actions[0].Keep), len(actions[0].Bin))
	}
	if len(actions[1].Bin) != 3 || len(actions[1].Keep) != 0 {
		t.Errorf("second action keep %d bin %d, want bin all", len(actions[1].Keep), len(actions[1].Bin))
	}
}

func TestDeriveSmartActionsSingleFileKinds(t *testing.T) {
	s := loadedSession(1)
	ctx := Start(s, domain.Suggestion{
		Kind:    domain.SuggestionOldFile,
		Members: []domain.FileID{"f0"},
	})
	if actions := DeriveSmartActions(ctx, DefaultOptions(), testNow); actions != nil {
		t.Errorf("actions = %v for a single-file kind, want nil", actions)
	}
}
