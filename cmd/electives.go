package cmd

import (
	"fmt"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/planner"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

var electivesCmd = &cobra.Command{
	Use:   "electives [directory|termplan.yaml]",
	Short: "Resolve the elective groups of a catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runElectives,
}

func init() {
	rootCmd.AddCommand(electivesCmd)
}

func runElectives(cmd *cobra.Command, args []string) error {
	file, err := loadCatalog(util.DefaultFS(), cmd.ErrOrStderr(), catalogArg(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cat := file.Catalog()
	if len(cat.Groups) == 0 {
		_, _ = fmt.Fprintln(out, "Catalog declares no elective groups")
		return nil
	}

	groups := make([]catalog.ElectiveGroup, len(cat.Groups))
	for i, group := range cat.Groups {
		group.Candidates = cat.GroupPool(group)
		groups[i] = group
	}

	selection := planner.SelectGroups(groups, cat.Weights(), cat.Prerequisites())
	for _, group := range groups {
		picked, ok := selection.ByGroup[group.ID]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s (%d of %d): %v\n", group.ID, group.Required, len(group.Candidates), picked)
	}

	if !selection.Feasible {
		return fmt.Errorf("resolving elective groups: %s", selection.Message)
	}

	_, _ = fmt.Fprintf(out, "✓ %d elective(s) selected\n", len(selection.Selected))
	return nil
}
