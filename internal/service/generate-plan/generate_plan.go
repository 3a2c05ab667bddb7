package generate_plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"effort-planner/internal/constants"
	"effort-planner/internal/service/aggregate"
	"effort-planner/internal/service/fill"
	"effort-planner/internal/storage"
)

// State is the position of a run in its pipeline. Every run starts at
// StateIdle and ends at StateAborted, StateFailed or StateSerialized.
type State int

const (
	StateIdle State = iota
	StateAggregating
	StateAborted
	StateFailed
	StateAggregated
	StateFilling
	StateFilled
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAggregating:
		return "aggregating"
	case StateAborted:
		return "aborted"
	case StateFailed:
		return "failed"
	case StateAggregated:
		return "aggregated"
	case StateFilling:
		return "filling"
	case StateFilled:
		return "filled"
	case StateSerialized:
		return "serialized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type SubcontractorLister interface {
	Subcontractors(ctx context.Context) ([]storage.Subcontractor, error)
}

type Options struct {
	StandSheet string
	GuideSheet string
	OutputName string
}

type Request struct {
	Upload   []byte
	FileName string
	Category aggregate.Category
	Stand    string
	Guide    string
}

type Result struct {
	RunID       string
	State       State
	Summary     *aggregate.Summary
	Report      *fill.Report
	File        []byte
	FileName    string
	ContentType string
}

type GeneratePlanService struct {
	log        *slog.Logger
	aggregator *aggregate.Aggregator
	template   *fill.Template
	filler     *fill.Filler
	directory  SubcontractorLister
	opts       Options
	newRunID   func() string
}

// NewGenerateService wires a plan pipeline. directory may be nil, in which
// case company names are not looked up.
func NewGenerateService(
	log *slog.Logger,
	aggregator *aggregate.Aggregator,
	template *fill.Template,
	filler *fill.Filler,
	directory SubcontractorLister,
	opts Options,
) *GeneratePlanService {
	return &GeneratePlanService{
		log:        log,
		aggregator: aggregator,
		template:   template,
		filler:     filler,
		directory:  directory,
		opts:       opts,
		newRunID:   uuid.NewString,
	}
}

// Preview aggregates the upload without touching the template.
func (s *GeneratePlanService) Preview(ctx context.Context, upload []byte, category aggregate.Category) (*aggregate.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.aggregator.Aggregate(upload, category)
}

// Generate runs one plan: aggregate, fill a fresh template copy, serialize.
// The result is returned even on failure so callers can report the run ID
// and where the run stopped. A *aggregate.NoMatchWarning leaves the run in
// StateAborted with no file.
func (s *GeneratePlanService) Generate(ctx context.Context, req Request) (*Result, error) {
	const op = "service.generate_plan.Generate"

	res := &Result{RunID: s.newRunID(), State: StateIdle}
	log := s.log.With(slog.String("op", op), slog.String("run_id", res.RunID))

	res.State = StateAggregating
	log.Debug("aggregating", slog.String("file", req.FileName), slog.String("category", req.Category.String()))

	summary, err := s.Preview(ctx, req.Upload, req.Category)
	if err != nil {
		if errors.Is(err, aggregate.ErrNoMatch) {
			res.State = StateAborted
			log.Info("no matching rows", slog.String("category", req.Category.String()))
			return res, err
		}
		res.State = StateFailed
		log.Warn("aggregation failed", slog.String("error", err.Error()))
		return res, err
	}
	res.Summary = summary
	res.State = StateAggregated

	log.Info("aggregated",
		slog.Int("count", summary.Count),
		slog.Int("parsed", summary.Parsed),
		slog.Float64("length_total", summary.LengthTotal),
	)

	s.checkCompanies(ctx, log, req.Stand, req.Guide)

	if err := ctx.Err(); err != nil {
		res.State = StateFailed
		return res, err
	}

	res.State = StateFilling

	f, err := s.template.Open()
	if err != nil {
		res.State = StateFailed
		return res, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	report, err := s.filler.Fill(f, summary.LengthTotal, []fill.Target{
		{Sheet: s.opts.StandSheet, Company: req.Stand},
		{Sheet: s.opts.GuideSheet, Company: req.Guide},
	})
	res.Report = report
	if err != nil {
		res.State = StateFailed
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.State = StateFilled

	for _, issue := range report.Issues {
		log.Warn("template issue", slog.String("issue", issue.Error()))
	}

	data, err := fill.Save(f)
	if err != nil {
		res.State = StateFailed
		log.Error("failed to save workbook", slog.String("error", err.Error()))
		return res, err
	}

	res.File = data
	res.FileName = s.opts.OutputName
	res.ContentType = constants.MimeXLSX
	res.State = StateSerialized

	log.Info("plan generated", slog.Int("bytes", len(data)), slog.Int("issues", len(report.Issues)))

	return res, nil
}

// checkCompanies logs names that are not in the directory. The names are
// free text, so nothing is rejected.
func (s *GeneratePlanService) checkCompanies(ctx context.Context, log *slog.Logger, names ...string) {
	if s.directory == nil {
		return
	}

	subs, err := s.directory.Subcontractors(ctx)
	if err != nil {
		log.Warn("subcontractor lookup failed", slog.String("error", err.Error()))
		return
	}

	known := storage.Names(subs)
	for _, name := range names {
		if !slices.Contains(known, name) {
			log.Warn("company is not a known subcontractor", slog.String("company", name))
		}
	}
}
