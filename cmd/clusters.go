package cmd

import (
	"fmt"
	"strings"

	"github.com/greboid/termplan/pkg/planner"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

var clustersConstraints constraintFlags

var clustersCmd = &cobra.Command{
	Use:   "clusters [directory|termplan.yaml]",
	Short: "Show the corequisite clusters of a catalog and check them against the credit maximum",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClusters,
}

func init() {
	rootCmd.AddCommand(clustersCmd)

	clustersConstraints.register(clustersCmd)
}

func runClusters(cmd *cobra.Command, args []string) error {
	file, err := loadCatalog(util.DefaultFS(), cmd.ErrOrStderr(), catalogArg(args))
	if err != nil {
		return err
	}

	cons, err := clustersConstraints.apply(cmd, file.Constraints)
	if err != nil {
		return err
	}

	cat := file.Catalog()
	result := planner.BuildClusters(cat.Weights(), cat.Corequisites(), cons.MaxPerSlot)

	out := cmd.OutOrStdout()
	for i, members := range result.Members {
		if len(members) < 2 {
			continue
		}
		_, _ = fmt.Fprintf(out, "Cluster %d: %s (%d credits)\n", i, strings.Join(members, ", "), result.Sums[i])
	}

	if !result.Feasible {
		return fmt.Errorf("corequisite clusters exceed %d credits: %s", cons.MaxPerSlot, strings.Join(result.Notes, "; "))
	}

	_, _ = fmt.Fprintf(out, "✓ %d cluster(s) within %d credits\n", len(result.Members), cons.MaxPerSlot)
	return nil
}
