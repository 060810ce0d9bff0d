package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a catalog, shared by the YAML and HCL formats.
type File struct {
	Constraints Constraints     `yaml:"constraints,omitempty"`
	Courses     []Item          `yaml:"courses"`
	Groups      []ElectiveGroup `yaml:"groups,omitempty"`
}

func (f *File) Catalog() *Catalog {
	return &Catalog{
		Items:  f.Courses,
		Groups: f.Groups,
	}
}

// Load reads a catalog file, choosing the format from its extension.
func Load(fs fs.ReadFileFS, filePath string) (*File, error) {
	data, err := fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	if strings.EqualFold(path.Ext(filePath), ".hcl") {
		return ParseHCL(data, filePath)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	file, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}

	if err := Validate(file); err != nil {
		return nil, err
	}

	return file, nil
}

func decodeYAML(data []byte) (*File, error) {
	var file File

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, loadErrorf(CodeInvalidType, "", "%s", strings.Join(typeErr.Errors, "; "))
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &file, nil
}

// Validate checks a catalog file the way the planner expects it: unique,
// non-empty identifiers, positive credits, resolvable references and offered
// terms inside the term range. Constraints are only checked when present.
func Validate(file *File) error {
	if !file.Constraints.IsEmpty() {
		if err := validateConstraints(file.Constraints); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(file.Courses))
	for i, item := range file.Courses {
		context := fmt.Sprintf("courses[%d]", i)
		if err := validateItem(item, file.Constraints.Slots, context); err != nil {
			return err
		}
		if seen[item.ID] {
			return loadErrorf(CodeDuplicateCourseID, context+".id", "duplicate course id %q", item.ID)
		}
		seen[item.ID] = true
	}

	for _, item := range file.Courses {
		context := fmt.Sprintf("courses[%s]", item.ID)
		for _, pre := range item.Prereqs {
			if !seen[pre] {
				return loadErrorf(CodeUnknownPrerequisite, context+".prereqs", "unknown prerequisite %q", pre)
			}
		}
		for _, co := range item.Coreqs {
			if !seen[co] {
				return loadErrorf(CodeUnknownCorequisite, context+".coreqs", "unknown corequisite %q", co)
			}
		}
	}

	for i, group := range file.Groups {
		if err := validateGroup(group, seen, fmt.Sprintf("groups[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateConstraints(c Constraints) error {
	const context = "constraints"
	if c.Slots <= 0 {
		return loadErrorf(CodeNonPositiveValue, context+".terms", "must be greater than 0, got %d", c.Slots)
	}
	if c.MinPerSlot <= 0 {
		return loadErrorf(CodeNonPositiveValue, context+".min-credits", "must be greater than 0, got %d", c.MinPerSlot)
	}
	if c.MaxPerSlot <= 0 {
		return loadErrorf(CodeNonPositiveValue, context+".max-credits", "must be greater than 0, got %d", c.MaxPerSlot)
	}
	if c.MinPerSlot > c.MaxPerSlot {
		return loadErrorf(CodeInvalidCreditRange, context, "min-credits (%d) cannot be greater than max-credits (%d)", c.MinPerSlot, c.MaxPerSlot)
	}
	return validateOfferedTerms(c.OfferedSlots, c.Slots, context+".offered-terms")
}

func validateItem(item Item, slots int, context string) error {
	if item.ID == "" {
		return loadErrorf(CodeMissingField, context+".id", "id is required")
	}
	if strings.TrimSpace(item.ID) == "" {
		return loadErrorf(CodeEmptyString, context+".id", "id cannot be blank")
	}
	if item.Name == "" {
		return loadErrorf(CodeMissingField, context+".name", "name is required")
	}
	if item.Weight == 0 {
		return loadErrorf(CodeMissingField, context+".credits", "credits is required")
	}
	if item.Weight < 0 {
		return loadErrorf(CodeNonPositiveValue, context+".credits", "must be greater than 0, got %d", item.Weight)
	}
	for j, pre := range item.Prereqs {
		if pre == "" {
			return loadErrorf(CodeEmptyString, fmt.Sprintf("%s.prereqs[%d]", context, j), "prerequisite id cannot be empty")
		}
	}
	for j, co := range item.Coreqs {
		if co == "" {
			return loadErrorf(CodeEmptyString, fmt.Sprintf("%s.coreqs[%d]", context, j), "corequisite id cannot be empty")
		}
	}
	if slots > 0 {
		return validateOfferedTerms(item.OfferedSlots, slots, context+".offered-terms")
	}
	for _, s := range item.OfferedSlots {
		if s < 1 {
			return loadErrorf(CodeInvalidOfferedTerm, context+".offered-terms", "offered term %d must be at least 1", s)
		}
	}
	return nil
}

func validateOfferedTerms(terms []int, slots int, context string) error {
	for _, s := range terms {
		if s < 1 || s > slots {
			return loadErrorf(CodeInvalidOfferedTerm, context, "offered term %d must be within [1..%d]", s, slots)
		}
	}
	return nil
}

func validateGroup(group ElectiveGroup, known map[string]bool, context string) error {
	if group.ID == "" {
		return loadErrorf(CodeMissingField, context+".id", "id is required")
	}
	if group.Required <= 0 {
		return loadErrorf(CodeNonPositiveValue, context+".required", "must be greater than 0, got %d", group.Required)
	}
	for _, c := range group.Candidates {
		if !known[c] {
			return loadErrorf(CodeInvalidGroup, context+".candidates", "unknown candidate %q", c)
		}
	}
	for c := range group.Priorities {
		if !known[c] {
			return loadErrorf(CodeInvalidGroup, context+".priorities", "unknown candidate %q", c)
		}
	}
	return nil
}
