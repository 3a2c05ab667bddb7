package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"effort-planner/internal/storage"
)

type SubcontractorSaver interface {
	SaveSubcontractor(ctx context.Context, sub storage.Subcontractor) error
}

func SaveSubcontractorAdmin(log *slog.Logger, dir SubcontractorSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subcontractors.save.SaveSubcontractorAdmin"

		var req struct {
			Name      string `json:"name"`
			SortOrder int    `json:"sort_order"`
			IsActive  *bool  `json:"is_active"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		sub := storage.Subcontractor{Name: req.Name, SortOrder: req.SortOrder, IsActive: true}
		if req.IsActive != nil {
			sub.IsActive = *req.IsActive
		}

		if err := sub.Validate(); err != nil {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := dir.SaveSubcontractor(ctx, sub); err != nil {
			if errors.Is(err, storage.ErrEmptyName) {
				http.Error(w, "name is required", http.StatusBadRequest)
				return
			}
			log.Error("failed to save subcontractor", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("subcontractor saved", slog.String("name", sub.Name), slog.Bool("active", sub.IsActive))

		render.JSON(w, r, map[string]interface{}{
			"status":        "saved",
			"subcontractor": sub,
		})
	}
}
