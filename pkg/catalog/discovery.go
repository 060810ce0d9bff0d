package catalog

import (
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/greboid/termplan/pkg/util"
)

const DefaultCatalogFilename = "termplan.yaml"

// ResolveCatalogPath maps a CLI argument to a catalog file: empty input is
// the default file in the working directory, a directory is the default file
// inside it.
func ResolveCatalogPath(fs iofs.StatFS, input string) (string, error) {
	if input == "" {
		return DefaultCatalogFilename, nil
	}

	info, err := fs.Stat(input)
	if err != nil {
		return "", fmt.Errorf("accessing path: %w", err)
	}

	if info.IsDir() {
		return path.Join(input, DefaultCatalogFilename), nil
	}

	return input, nil
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".hcl":
		return !strings.HasPrefix(name, ".")
	}
	return false
}

// FindCatalogFiles returns every catalog fragment below dir in lexical order.
func FindCatalogFiles(fs util.WalkableFS, dir string) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string

	err = fs.WalkDir(dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCatalogFile(d.Name()) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return files, nil
}

// LoadDir merges every catalog fragment below dir into one file. Items and
// groups are concatenated; at most one fragment may declare constraints.
// Cross-fragment references are validated on the merged result.
func LoadDir(fs util.WalkableFS, dir string) (*File, error) {
	files, err := FindCatalogFiles(fs, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found in %s", dir)
	}

	merged := &File{}
	constraintsFrom := ""

	for _, p := range files {
		fragment, err := loadFragment(fs, p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}

		if !fragment.Constraints.IsEmpty() {
			if constraintsFrom != "" {
				return nil, fmt.Errorf("constraints declared in both %s and %s", constraintsFrom, p)
			}
			constraintsFrom = p
			merged.Constraints = fragment.Constraints
		}

		merged.Courses = append(merged.Courses, fragment.Courses...)
		merged.Groups = append(merged.Groups, fragment.Groups...)

		slog.Debug("loaded catalog fragment",
			"path", p,
			"courses", len(fragment.Courses),
			"groups", len(fragment.Groups))
	}

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// loadFragment decodes a single file without reference validation, since
// references may point into sibling fragments.
func loadFragment(fs util.WalkableFS, p string) (*File, error) {
	data, err := fs.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var fragment *File
	if strings.EqualFold(path.Ext(p), ".hcl") {
		fragment, err = decodeHCL(data, p)
	} else {
		fragment, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return fragment, nil
}
