package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"effort-planner/internal/storage"
)

type Subcontractors interface {
	Subcontractors(ctx context.Context) ([]storage.Subcontractor, error)
}

func GetSubcontractorsAdmin(log *slog.Logger, dir Subcontractors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subcontractors.get.GetSubcontractorsAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		subs, err := dir.Subcontractors(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list subcontractors")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if subs == nil {
			subs = []storage.Subcontractor{}
		}

		render.JSON(w, r, subs)
	}
}
