package generate_plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"effort-planner/internal/service/aggregate"
	"effort-planner/internal/service/fill"
	plan "effort-planner/internal/service/generate-plan"
)

type PlanGenerator interface {
	Generate(ctx context.Context, req plan.Request) (*plan.Result, error)
	Preview(ctx context.Context, upload []byte, category aggregate.Category) (*aggregate.Summary, error)
}

type PreviewResponse struct {
	Category    string          `json:"category"`
	Count       int             `json:"count"`
	Parsed      int             `json:"parsed"`
	LengthTotal float64         `json:"length_total"`
	Message     string          `json:"message"`
	Header      []string        `json:"header"`
	Rows        []aggregate.Row `json:"rows"`
}

type NoMatchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func PreviewPlan(log *slog.Logger, gen PlanGenerator, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.PreviewPlan"

		data, fileName, err := readUpload(w, r, maxUpload)
		if err != nil {
			log.With(slog.String("op", op)).Warn("bad upload", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		category, err := aggregate.ParseCategory(r.FormValue("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		summary, err := gen.Preview(ctx, data, category)
		if err != nil {
			writeRunError(w, r, log.With(slog.String("op", op), slog.String("file", fileName)), err)
			return
		}

		render.JSON(w, r, PreviewResponse{
			Category:    summary.Category.String(),
			Count:       summary.Count,
			Parsed:      summary.Parsed,
			LengthTotal: summary.LengthTotal,
			Message:     summaryMessage(summary),
			Header:      summary.Header,
			Rows:        summary.Rows,
		})
	}
}

func GeneratePlan(log *slog.Logger, gen PlanGenerator, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.plan.GeneratePlan"

		data, fileName, err := readUpload(w, r, maxUpload)
		if err != nil {
			log.With(slog.String("op", op)).Warn("bad upload", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		category, err := aggregate.ParseCategory(r.FormValue("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		res, err := gen.Generate(ctx, plan.Request{
			Upload:   data,
			FileName: fileName,
			Category: category,
			Stand:    r.FormValue("stand"),
			Guide:    r.FormValue("guide"),
		})
		if res != nil && res.RunID != "" {
			w.Header().Set("X-Run-ID", res.RunID)
		}
		if err != nil {
			writeRunError(w, r, log.With(slog.String("op", op), slog.String("file", fileName)), err)
			return
		}

		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName})

		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", disposition)
		w.Header().Set("X-Plan-Count", strconv.Itoa(res.Summary.Count))
		w.Header().Set("X-Plan-Total", strconv.FormatFloat(res.Summary.LengthTotal, 'f', -1, 64))
		for _, warning := range res.Report.Warnings() {
			w.Header().Add("X-Plan-Warning", url.QueryEscape(warning))
		}

		if _, err := w.Write(res.File); err != nil {
			log.Error("failed to write response", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

// writeRunError maps run errors to status codes. A no-match is a warning
// for the operator, reported as 422 with a JSON body.
func writeRunError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		loadErr *aggregate.LoadError
		saveErr *fill.SaveError
	)

	switch {
	case errors.Is(err, aggregate.ErrNoMatch):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, NoMatchResponse{Status: "no_match", Message: err.Error()})
	case errors.As(err, &loadErr):
		log.Warn("cannot load specification list", slog.String("error", err.Error()))
		http.Error(w, "cannot read specification list: "+err.Error(), http.StatusBadRequest)
	case errors.As(err, &saveErr):
		log.Error("failed to save workbook", slog.String("error", err.Error()))
		http.Error(w, "failed to save the effort plan", http.StatusInternalServerError)
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("run timed out", slog.String("error", err.Error()))
		http.Error(w, "run timed out", http.StatusServiceUnavailable)
	default:
		log.Error("run failed", slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func summaryMessage(s *aggregate.Summary) string {
	label := s.Category.String()
	return fmt.Sprintf("category %q (%d machines): total length %.2fm", label, s.Count, s.LengthTotal)
}
