package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	generateplan "effort-planner/http-server/generate-plan"
	getoptions "effort-planner/http-server/options/get"
	getsubs "effort-planner/http-server/subcontractors/get"
	savesubs "effort-planner/http-server/subcontractors/save"
	"effort-planner/internal/app"
	"effort-planner/internal/config"
	"effort-planner/internal/middleware/auth"
)

func routes(cfg *config.Config, log *slog.Logger, planner *app.App) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Run-ID", "X-Plan-Count", "X-Plan-Total", "X-Plan-Warning"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	maxUpload := cfg.Workbook.MaxUploadMB << 20

	router.Get("/api/options", getoptions.GetOptions(log, planner.Directory))
	router.Post("/api/plan/preview", generateplan.PreviewPlan(log, planner.Plan, maxUpload))
	router.Post("/api/plan/generate", generateplan.GeneratePlan(log, planner.Plan, maxUpload))

	if cfg.AdminLogin != "" {
		adminRouter := chi.NewRouter()
		adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

		adminRouter.Get("/subcontractors", getsubs.GetSubcontractorsAdmin(log, planner.Directory))
		adminRouter.Post("/subcontractors", savesubs.SaveSubcontractorAdmin(log, planner.Directory))

		router.Mount("/api/admin", adminRouter)
	} else {
		log.Info("admin routes disabled: no admin login configured")
	}

	if cfg.FrontendDir != "" {
		serveFrontend(router, log, cfg.FrontendDir)
	}

	return router
}

// serveFrontend serves the built SPA: existing files as-is, anything else
// falls back to index.html.
func serveFrontend(router chi.Router, log *slog.Logger, frontendDir string) {
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return
	}

	index := filepath.Join(frontendDir, "index.html")

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
