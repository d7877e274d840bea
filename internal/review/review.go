// Package review implements group review: materializing a suggestion's
// member files and deriving ranked bulk "smart actions" over them.
package review

import (
	"fmt"
	"sort"
	"time"

	"desksweep/internal/domain"
)

// Options tunes smart-action derivation
type Options struct {
	KeepNewestCount int           // K for "keep newest K" on similar-name groups
	AgedMemberAge   time.Duration // members older than this get a bin-aged action
}

// DefaultOptions mirrors the config defaults
func DefaultOptions() Options {
	return Options{KeepNewestCount: 5, AgedMemberAge: 7 * 24 * time.Hour}
}

// SmartAction is a precomputed bulk decision proposal for a group
type SmartAction struct {
	Label string
	Keep  []domain.FileID
	Bin   []domain.FileID
}

// Context is a focused sub-session over exactly the members of one
// suggestion. Members shrink as bulk actions are applied; an empty context
// closes the review.
type Context struct {
	Suggestion domain.Suggestion
	Members    []domain.FileRecord
}

// Start resolves the suggestion's member ids against the working list,
// keeping only those still present, and opens a review context. Returns nil
// when no member survives.
func Start(s *domain.Session, sug domain.Suggestion) *Context {
	var members []domain.FileRecord
	for _, id := range sug.Members {
		if rec, ok := s.Get(id); ok {
			members = append(members, rec)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return &Context{Suggestion: sug, Members: members}
}

// DropMembers removes processed members from the context. It reports whether
// the context became empty, which implicitly closes the review.
func (c *Context) DropMembers(ids []domain.FileID) bool {
	drop := make(map[domain.FileID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []domain.FileRecord
	for _, m := range c.Members {
		if !drop[m.ID] {
			kept = append(kept, m)
		}
	}
	c.Members = kept
	return len(c.Members) == 0
}

// MemberIDs returns the identities of the remaining members
func (c *Context) MemberIDs() []domain.FileID {
	out := make([]domain.FileID, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.ID
	}
	return out
}

// DeriveSmartActions produces the ordered candidate bulk actions for the
// context's suggestion kind. Kinds without derived actions return nil and
// the caller falls back to manual per-file decisions.
func DeriveSmartActions(c *Context, opts Options, now time.Time) []SmartAction {
	switch c.Suggestion.Kind {
	case domain.SuggestionDuplicate:
		keep, bin := splitNewest(c.Members, 1)
		return []SmartAction{{
			Label: "Keep newest, bin the other copies",
			Keep:  keep,
			Bin:   bin,
		}}

	case domain.SuggestionSimilarNames:
		k := opts.KeepNewestCount
		if k <= 0 {
			k = 1
		}
		if k > len(c.Members) {
			k = len(c.Members)
		}
		keep, bin := splitNewest(c.Members, k)
		actions := []SmartAction{{
			Label: fmt.Sprintf("Keep newest %d, bin the rest", k),
			Keep:  keep,
			Bin:   bin,
		}}
		if aged := agedMembers(c.Members, opts.AgedMemberAge, now); len(aged) > 0 {
			actions = append(actions, SmartAction{
				Label: fmt.Sprintf("Bin the %d older than a week", len(aged)),
				Bin:   aged,
			})
		}
		return actions

	case domain.SuggestionSameSession:
		all := memberIDs(c.Members)
		return []SmartAction{
			{Label: "Keep the whole burst", Keep: all},
			{Label: "Bin the whole burst", Bin: all},
		}
	}
	return nil
}

// splitNewest partitions members into the k newest by creation time (kept)
// and the rest (binned). Ties keep working-list order.
func splitNewest(members []domain.FileRecord, k int) (keep, bin []domain.FileID) {
	idx := make([]int, len(members))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return members[idx[a]].CreatedAt.After(members[idx[b]].CreatedAt)
	})
	newest := make(map[int]bool, k)
	for _, i := range idx[:k] {
		newest[i] = true
	}
	for i, m := range members {
		if newest[i] {
			keep = append(keep, m.ID)
		} else {
			bin = append(bin, m.ID)
		}
	}
	return keep, bin
}

func agedMembers(members []domain.FileRecord, maxAge time.Duration, now time.Time) []domain.FileID {
	var out []domain.FileID
	for _, m := range members {
		if !m.CreatedAt.IsZero() && now.Sub(m.CreatedAt) > maxAge {
			out = append(out, m.ID)
		}
	}
	return out
}

func memberIDs(members []domain.FileRecord) []domain.FileID {
	out := make([]domain.FileID, len(members))
	for i, m := range members {
		out[i] = m.ID
	}
	return out
}
