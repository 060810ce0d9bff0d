package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/greboid/termplan/pkg/planner"
	"github.com/greboid/termplan/pkg/report"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

var (
	planConstraints     constraintFlags
	planFormat          string
	planOutput          string
	planTimeout         time.Duration
	planPreferLightLoad bool
)

var planCmd = &cobra.Command{
	Use:   "plan [directory|termplan.yaml]",
	Short: "Assign every course of a catalog to a term",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planConstraints.register(planCmd)
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "", "Output format: table, json, yaml or markdown (default from settings, else table)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Write the plan to this file instead of stdout")
	planCmd.Flags().DurationVar(&planTimeout, "timeout", 0, "Abort planning after this long (0 disables)")
	planCmd.Flags().BoolVar(&planPreferLightLoad, "prefer-light-load", false, "Do not suggest raising the credit maximum")
}

func runPlan(cmd *cobra.Command, args []string) error {
	fs := util.DefaultFS()
	progress := cmd.ErrOrStderr()

	file, err := loadCatalog(fs, progress, catalogArg(args))
	if err != nil {
		return err
	}

	cons, err := planConstraints.apply(cmd, file.Constraints)
	if err != nil {
		return err
	}

	format := planFormat
	if format == "" {
		format = settings.Format
	}
	outputFormat, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if planTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, planTimeout)
		defer cancel()
	}

	_, _ = fmt.Fprintf(progress, "Planning %d course(s) into %d term(s)...\n", len(file.Courses), cons.Slots)

	outcome, err := planner.Plan(ctx, file.Catalog(), cons, planner.Options{
		Policy:          settings.ClassificationPolicy(),
		PreferLightLoad: planPreferLightLoad || settings.PreferLightLoad,
	})
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}

	rep := report.Build(outcome.Catalog, cons, outcome.Result, outcome.Hints).WithCategories(outcome.Categories)

	if planOutput != "" {
		var buf bytes.Buffer
		if err := rep.Write(&buf, outputFormat); err != nil {
			return err
		}
		if err := fs.WriteFile(planOutput, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", planOutput, err)
		}
		written := planOutput
		if abs, err := util.ResolveAbsolutePath(planOutput); err == nil {
			written = abs
		}
		_, _ = fmt.Fprintf(progress, "Plan written to %s\n", written)
	} else if err := rep.Write(cmd.OutOrStdout(), outputFormat); err != nil {
		return err
	}

	if !outcome.Feasible() {
		return errInfeasible
	}
	return nil
}
