package cmd

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/util"
	"github.com/spf13/cobra"
)

// constraintFlags are the flags that override catalog constraints.
type constraintFlags struct {
	terms         int
	minCredits    int
	maxCredits    int
	coreqTogether bool
}

func (f *constraintFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.terms, "terms", 0, "Number of terms (overrides the catalog)")
	cmd.Flags().IntVar(&f.minCredits, "min-credits", 0, "Minimum credits per term (overrides the catalog)")
	cmd.Flags().IntVar(&f.maxCredits, "max-credits", 0, "Maximum credits per term (overrides the catalog)")
	cmd.Flags().BoolVar(&f.coreqTogether, "coreq-together", false, "Require corequisites to share a term (overrides the catalog)")
}

// apply resolves the constraints for a run: catalog values, or the settings
// defaults when the catalog has none, then any flags given explicitly.
func (f *constraintFlags) apply(cmd *cobra.Command, fromCatalog catalog.Constraints) (catalog.Constraints, error) {
	cons := settings.Constraints(fromCatalog)

	if cmd.Flags().Changed("terms") {
		cons.Slots = f.terms
	}
	if cmd.Flags().Changed("min-credits") {
		cons.MinPerSlot = f.minCredits
	}
	if cmd.Flags().Changed("max-credits") {
		cons.MaxPerSlot = f.maxCredits
	}
	if cmd.Flags().Changed("coreq-together") {
		cons.CoreqTogether = f.coreqTogether
	}

	if err := cons.Validate(); err != nil {
		return catalog.Constraints{}, fmt.Errorf("invalid constraints: %w", err)
	}
	return cons, nil
}

// loadCatalog loads the catalog named by a CLI argument. A directory holding
// the default catalog file loads that file; any other directory is merged
// from all the fragments below it.
func loadCatalog(fs util.WalkableFS, out io.Writer, input string) (*catalog.File, error) {
	catalogPath, err := catalog.ResolveCatalogPath(fs, input)
	if err != nil {
		return nil, err
	}

	if input != "" && catalogPath != input {
		if _, err := fs.Stat(catalogPath); errors.Is(err, iofs.ErrNotExist) {
			dir := path.Dir(catalogPath)
			_, _ = fmt.Fprintf(out, "Merging catalog fragments in %s...\n", dir)
			file, err := catalog.LoadDir(fs, dir)
			if err != nil {
				return nil, fmt.Errorf("loading catalog directory %s: %w", dir, err)
			}
			return file, nil
		}
	}

	_, _ = fmt.Fprintf(out, "Loading catalog from %s...\n", catalogPath)
	file, err := catalog.Load(fs, catalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", catalogPath, err)
	}
	return file, nil
}

func catalogArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
