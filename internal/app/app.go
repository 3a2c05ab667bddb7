// Package app assembles the planner from its configuration.
package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"effort-planner/internal/config"
	"effort-planner/internal/service/aggregate"
	"effort-planner/internal/service/fill"
	generate_plan "effort-planner/internal/service/generate-plan"
	"effort-planner/internal/storage/directory"
)

type App struct {
	Plan      *generate_plan.GeneratePlanService
	Directory directory.Directory
	Template  *fill.Template
}

// Build loads the template and opens the subcontractor directory
// concurrently. A template failure is a *fill.StartupError.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	wb := cfg.Workbook

	var (
		tmpl *fill.Template
		dir  directory.Directory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tmpl, err = fill.LoadTemplate(wb.TemplatePath)
		return err
	})
	g.Go(func() error {
		var err error
		dir, err = directory.Open(gctx, cfg.Directory)
		return err
	})

	if err := g.Wait(); err != nil {
		if dir != nil {
			dir.Close()
		}
		return nil, err
	}

	missing, err := tmpl.MissingSheets(wb.StandSheet, wb.GuideSheet)
	if err != nil {
		dir.Close()
		return nil, &fill.StartupError{Path: wb.TemplatePath, Err: err}
	}
	for _, sheet := range missing {
		log.Warn("template sheet missing", slog.String("template", tmpl.Name()), slog.String("sheet", sheet))
	}

	plan := generate_plan.NewGenerateService(
		log,
		aggregate.New(aggregate.Schema{
			Sheet:          wb.SpecSheet,
			CategoryColumn: wb.CategoryColumn,
			LengthColumn:   wb.LengthColumn,
		}),
		tmpl,
		fill.NewFiller(fill.Markers{Distance: wb.DistanceMarker, Formula: wb.FormulaMarker}),
		dir,
		generate_plan.Options{
			StandSheet: wb.StandSheet,
			GuideSheet: wb.GuideSheet,
			OutputName: wb.OutputName,
		},
	)

	return &App{Plan: plan, Directory: dir, Template: tmpl}, nil
}

func (a *App) Close() error {
	return a.Directory.Close()
}
