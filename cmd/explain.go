package cmd

import (
	"fmt"
	"strings"

	"github.com/greboid/termplan/pkg/graph"
	"github.com/greboid/termplan/pkg/planner"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain COURSE [directory|termplan.yaml]",
	Short: "Show the longest prerequisite chain leading to a course",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	file, err := loadCatalog(util.DefaultFS(), cmd.ErrOrStderr(), catalogArg(args[1:]))
	if err != nil {
		return err
	}

	cat := file.Catalog()
	target := args[0]
	if _, ok := cat.Lookup(target); !ok {
		return fmt.Errorf("unknown course %q", target)
	}

	g, err := graph.Build(cat)
	if err != nil {
		return fmt.Errorf("building prerequisite graph: %w", err)
	}

	chain := planner.ExplainChain(cat.Prerequisites(), target)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, strings.Join(chain, " → "))

	if !g.Order().OK {
		return &graph.CircularDependencyError{Chain: g.FindCycle()}
	}

	_, _ = fmt.Fprintf(out, "%s cannot be taken before term %d\n", target, len(chain))
	return nil
}
