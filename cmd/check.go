package cmd

import (
	"fmt"
	"sort"

	"github.com/greboid/termplan/pkg/graph"
	"github.com/greboid/termplan/pkg/planner"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [directory|termplan.yaml]",
	Short: "Validate a catalog and show its prerequisite layers",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	file, err := loadCatalog(util.DefaultFS(), cmd.ErrOrStderr(), catalogArg(args))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Building prerequisite graph...")
	g, err := graph.Build(file.Catalog())
	if err != nil {
		return fmt.Errorf("building prerequisite graph: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Graph contains %d course(s) and %d prerequisite edge(s)\n", g.V(), g.Edges())

	_, _ = fmt.Fprintln(out, "Resolving course order...")
	order := g.Order()
	if !order.OK {
		return &graph.CircularDependencyError{Chain: g.FindCycle()}
	}

	earliest, err := planner.EarliestSlots(g, order)
	if err != nil {
		return err
	}

	layers := make(map[int][]string)
	for _, v := range order.Vertices {
		layers[earliest[v]] = append(layers[earliest[v]], g.ID(v))
	}
	depths := make([]int, 0, len(layers))
	for depth := range layers {
		depths = append(depths, depth)
	}
	sort.Ints(depths)

	_, _ = fmt.Fprintf(out, "Resolved into %d layer(s):\n", len(depths))
	for _, depth := range depths {
		_, _ = fmt.Fprintf(out, "  Term %d or later: %v\n", depth, layers[depth])
	}

	_, _ = fmt.Fprintf(out, "✓ %d course(s), %d group(s)\n", len(file.Courses), len(file.Groups))
	return nil
}
