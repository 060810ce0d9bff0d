package cmd

import (
	"fmt"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/planner"
	"github.com/spf13/cobra"
)

var (
	hintsConstraints     constraintFlags
	hintsConflict        bool
	hintsPreferLightLoad bool
)

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Suggest constraint changes for a plan that does not fit",
	Args:  cobra.NoArgs,
	RunE:  runHints,
}

func init() {
	rootCmd.AddCommand(hintsCmd)

	hintsConstraints.register(hintsCmd)
	hintsCmd.Flags().BoolVar(&hintsConflict, "elective-conflict", false, "Elective groups could not be resolved")
	hintsCmd.Flags().BoolVar(&hintsPreferLightLoad, "prefer-light-load", false, "Do not suggest raising the credit maximum")
}

func runHints(cmd *cobra.Command, _ []string) error {
	cons, err := hintsConstraints.apply(cmd, catalog.Constraints{})
	if err != nil {
		return err
	}

	hints := planner.Advise(planner.AdviceInput{
		Slots:            cons.Slots,
		MaxPerSlot:       cons.MaxPerSlot,
		CoreqTogether:    cons.CoreqTogether,
		ElectiveConflict: hintsConflict,
		PreferLightLoad:  hintsPreferLightLoad || settings.PreferLightLoad,
	})

	out := cmd.OutOrStdout()
	if len(hints) == 0 {
		_, _ = fmt.Fprintln(out, "No suggestions")
		return nil
	}
	for _, hint := range hints {
		_, _ = fmt.Fprintf(out, "%s\n  %s=%s\n", hint.Message, hint.Key, hint.Value)
	}
	return nil
}
