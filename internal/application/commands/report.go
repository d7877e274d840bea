package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"desksweep/internal/application"
	"desksweep/internal/config"
	"desksweep/internal/domain"
	"desksweep/internal/ports"
	"desksweep/internal/review"
	"desksweep/internal/suggest"
)

// FileGroup is one related-file group found by the batch sweep
type FileGroup struct {
	Kind    domain.SuggestionKind
	Label   string
	Members []domain.FileRecord
}

// ReportResult is the outcome of a non-interactive sweep over a location
type ReportResult struct {
	Location   string
	Total      int
	TotalBytes int64
	Groups     []FileGroup
	Old        []domain.FileRecord
	Large      []domain.FileRecord
	Temporary  []domain.FileRecord
}

// ReportCommand enumerates a location and runs the full suggestion rule set
// over the whole file set at once, without opening a session. Duplicate
// grouping goes through the fingerprint index so it stays cheap on large
// folders.
type ReportCommand struct {
	source   ports.FileSource
	index    ports.FingerprintIndex
	cfg      *config.Config
	Location string
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(source ports.FileSource, index ports.FingerprintIndex, cfg *config.Config, location string) *ReportCommand {
	return &ReportCommand{source: source, index: index, cfg: cfg, Location: location}
}

// Validate checks the command arguments
func (c *ReportCommand) Validate() error {
	if c.Location == "" {
		return &application.ValidationError{
			Field:   "location",
			Message: "location is required",
		}
	}
	return nil
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) (*ReportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	location := config.ExpandPath(c.Location)
	records, err := c.source.Enumerate(location)
	if err != nil {
		return nil, &application.ScanError{Location: location, Err: err}
	}

	res := &ReportResult{Location: location, Total: len(records)}
	byID := make(map[domain.FileID]domain.FileRecord, len(records))
	for _, r := range records {
		res.TotalBytes += r.Size
		byID[r.ID] = r
	}

	if err := c.indexDuplicates(records, byID, res); err != nil {
		return nil, err
	}
	c.groupSimilarNames(records, res)
	c.groupSameSession(records, res)

	now := time.Now()
	for _, r := range records {
		if !r.CreatedAt.IsZero() && now.Sub(r.CreatedAt) > c.cfg.OldFileAge() {
			res.Old = append(res.Old, r)
		}
		if r.Size > c.cfg.LargeFileBytes() {
			res.Large = append(res.Large, r)
		}
		if suggest.IsTemporaryName(r.Name) {
			res.Temporary = append(res.Temporary, r)
		}
	}
	sort.Slice(res.Large, func(i, j int) bool { return res.Large[i].Size > res.Large[j].Size })
	return res, nil
}

func (c *ReportCommand) indexDuplicates(records []domain.FileRecord, byID map[domain.FileID]domain.FileRecord, res *ReportResult) error {
	if err := c.index.Open(); err != nil {
		return fmt.Errorf("failed to open fingerprint index: %w", err)
	}
	defer c.index.Close()
	if err := c.index.Add(records...); err != nil {
		return fmt.Errorf("failed to index files: %w", err)
	}
	groups, err := c.index.DuplicateGroups()
	if err != nil {
		return fmt.Errorf("failed to query duplicates: %w", err)
	}
	for _, ids := range groups {
		g := FileGroup{
			Kind:  domain.SuggestionDuplicate,
			Label: fmt.Sprintf("%d identical copies", len(ids)),
		}
		for _, id := range ids {
			g.Members = append(g.Members, byID[id])
		}
		res.Groups = append(res.Groups, g)
	}
	return nil
}

func (c *ReportCommand) groupSimilarNames(records []domain.FileRecord, res *ReportResult) {
	byStem := make(map[string][]domain.FileRecord)
	var order []string
	for _, r := range records {
		key := suggest.NormalizeStem(r.Name)
		if key == strings.ToLower(filepath.Ext(r.Name)) {
			// Name was nothing but digits and separators; too weak a signal.
			continue
		}
		if len(byStem[key]) == 0 {
			order = append(order, key)
		}
		byStem[key] = append(byStem[key], r)
	}
	for _, key := range order {
		group := byStem[key]
		if len(group) < c.cfg.SimilarNamesMin {
			continue
		}
		res.Groups = append(res.Groups, FileGroup{
			Kind:    domain.SuggestionSimilarNames,
			Label:   fmt.Sprintf("%d files named like %q", len(group), group[0].Name),
			Members: group,
		})
	}
}

func (c *ReportCommand) groupSameSession(records []domain.FileRecord, res *ReportResult) {
	sorted := append([]domain.FileRecord(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	window := c.cfg.SameSessionWindow()

	var burst []domain.FileRecord
	flush := func() {
		if len(burst) >= 3 {
			res.Groups = append(res.Groups, FileGroup{
				Kind:    domain.SuggestionSameSession,
				Label:   fmt.Sprintf("%d files created within minutes of each other", len(burst)),
				Members: append([]domain.FileRecord(nil), burst...),
			})
		}
		burst = nil
	}
	for _, r := range sorted {
		if r.CreatedAt.IsZero() {
			continue
		}
		if len(burst) > 0 && r.CreatedAt.Sub(burst[len(burst)-1].CreatedAt) > window {
			flush()
		}
		burst = append(burst, r)
	}
	flush()
}

// PlannedGroup pairs a detected group with its derived smart actions
type PlannedGroup struct {
	Group   FileGroup
	Actions []review.SmartAction
}

// PlanResult lists the bulk actions group review would offer per group
type PlanResult struct {
	Location string
	Groups   []PlannedGroup
}

// PlanCommand runs a report and derives the smart actions for every group
type PlanCommand struct {
	report *ReportCommand
	cfg    *config.Config
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(source ports.FileSource, index ports.FingerprintIndex, cfg *config.Config, location string) *PlanCommand {
	return &PlanCommand{
		report: NewReportCommand(source, index, cfg, location),
		cfg:    cfg,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) (*PlanResult, error) {
	rep, err := c.report.Execute(ctx)
	if err != nil {
		return nil, err
	}
	opts := review.Options{
		KeepNewestCount: c.cfg.KeepNewestCount,
		AgedMemberAge:   c.cfg.AgedMemberAge(),
	}
	now := time.Now()

	out := &PlanResult{Location: rep.Location}
	for _, g := range rep.Groups {
		rc := &review.Context{
			Suggestion: domain.Suggestion{Kind: g.Kind},
			Members:    g.Members,
		}
		out.Groups = append(out.Groups, PlannedGroup{
			Group:   g,
			Actions: review.DeriveSmartActions(rc, opts, now),
		})
	}
	return out, nil
}
