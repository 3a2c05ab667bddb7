package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"effort-planner/internal/service/aggregate"
	"effort-planner/internal/storage"
)

type SubcontractorLister interface {
	Subcontractors(ctx context.Context) ([]storage.Subcontractor, error)
}

// Response feeds the three selectors of the planner form.
type Response struct {
	Categories     []string `json:"categories"`
	Subcontractors []string `json:"subcontractors"`
}

func GetOptions(log *slog.Logger, dir SubcontractorLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.options.GetOptions"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		subs, err := dir.Subcontractors(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list subcontractors")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		cats := aggregate.Categories()
		resp := Response{
			Categories:     make([]string, 0, len(cats)),
			Subcontractors: storage.Names(subs),
		}
		for _, c := range cats {
			resp.Categories = append(resp.Categories, c.String())
		}

		render.JSON(w, r, resp)
	}
}
