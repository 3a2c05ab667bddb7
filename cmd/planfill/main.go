// Command planfill fills the effort plan template from a specification list
// without starting the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"effort-planner/internal/app"
	"effort-planner/internal/config"
	"effort-planner/internal/lib/logger"
	"effort-planner/internal/service/aggregate"
	generate_plan "effort-planner/internal/service/generate-plan"
)

const (
	exitOK      = 0
	exitError   = 1
	exitNoMatch = 2
)

type options struct {
	spec       string
	category   string
	stand      string
	guide      string
	template   string
	out        string
	configPath string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, aggregate.ErrNoMatch):
		return exitNoMatch
	default:
		return exitError
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "planfill --spec list.xlsx --category A",
		Short: "Fill the stand/guide effort plan from a specification list",
		Long: `planfill filters the specification list by category, sums the
length column and writes the total and the chosen companies into the
effort plan template.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), stdout, opts)
		},
	}

	cmd.Flags().StringVar(&opts.spec, "spec", "", "Specification list workbook (.xlsx or .xlsm)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Category A-L, or \"blank\"")
	cmd.Flags().StringVar(&opts.stand, "stand", "", "Stand company")
	cmd.Flags().StringVar(&opts.guide, "guide", "", "Guide company")
	cmd.Flags().StringVar(&opts.template, "template", "", "Template path (default: from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output path (default: configured output name)")
	cmd.Flags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "Config file")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func run(ctx context.Context, stdout io.Writer, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.template != "" {
		cfg.Workbook.TemplatePath = opts.template
	}

	category, err := aggregate.ParseCategory(opts.category)
	if err != nil {
		return err
	}

	upload, err := os.ReadFile(opts.spec)
	if err != nil {
		return fmt.Errorf("failed to read specification list: %w", err)
	}

	log, closeLog := logger.Setup(cfg.Env, "")
	defer closeLog()

	planner, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer planner.Close()

	res, err := planner.Plan.Generate(ctx, generate_plan.Request{
		Upload:   upload,
		FileName: filepath.Base(opts.spec),
		Category: category,
		Stand:    opts.stand,
		Guide:    opts.guide,
	})
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = res.FileName
	}
	if err := os.WriteFile(out, res.File, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	s := res.Summary
	fmt.Fprintf(stdout, "category %q: %d machines, total length %.2fm\n", s.Category.String(), s.Count, s.LengthTotal)
	for _, warning := range res.Report.Warnings() {
		fmt.Fprintf(stdout, "warning: %s\n", warning)
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)

	log.Debug("run finished", slog.String("run_id", res.RunID))

	return nil
}
