package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclCatalogFile is the top-level structure of an HCL catalog:
//
//	constraints {
//	  terms       = 8
//	  min_credits = 12
//	  max_credits = 18
//	}
//
//	course "CS101" {
//	  name    = "Programming I"
//	  credits = 3
//	}
type hclCatalogFile struct {
	Constraints *hclConstraints `hcl:"constraints,block"`
	Courses     []*hclCourse    `hcl:"course,block"`
	Groups      []*hclGroup     `hcl:"group,block"`
}

type hclConstraints struct {
	Terms         int   `hcl:"terms"`
	MinCredits    int   `hcl:"min_credits"`
	MaxCredits    int   `hcl:"max_credits"`
	CoreqTogether *bool `hcl:"coreq_together,optional"`
	OfferedTerms  []int `hcl:"offered_terms,optional"`
}

type hclCourse struct {
	ID           string   `hcl:"id,label"`
	Name         string   `hcl:"name"`
	Credits      int      `hcl:"credits"`
	Prereqs      []string `hcl:"prereqs,optional"`
	Coreqs       []string `hcl:"coreqs,optional"`
	Group        string   `hcl:"group,optional"`
	OfferedTerms []int    `hcl:"offered_terms,optional"`
}

type hclGroup struct {
	ID         string         `hcl:"id,label"`
	Required   int            `hcl:"required"`
	Candidates []string       `hcl:"candidates,optional"`
	Priorities map[string]int `hcl:"priorities,optional"`
}

// ParseHCL decodes and validates an HCL catalog. filename is only used in
// diagnostics.
func ParseHCL(data []byte, filename string) (*File, error) {
	file, err := decodeHCL(data, filename)
	if err != nil {
		return nil, err
	}

	if err := Validate(file); err != nil {
		return nil, err
	}
	return file, nil
}

func decodeHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL file %s: %w", filename, diags)
	}

	var parsed hclCatalogFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		if missing := firstMissingArgument(diags); missing != nil {
			return nil, loadErrorf(CodeMissingField, rangeContext(missing), "%s", missing.Detail)
		}
		return nil, fmt.Errorf("decoding HCL file %s: %w", filename, diags)
	}

	return parsed.toFile(), nil
}

func (p *hclCatalogFile) toFile() *File {
	file := &File{}

	if c := p.Constraints; c != nil {
		file.Constraints = Constraints{
			Slots:        c.Terms,
			MinPerSlot:   c.MinCredits,
			MaxPerSlot:   c.MaxCredits,
			OfferedSlots: c.OfferedTerms,
		}
		if c.CoreqTogether != nil {
			file.Constraints.CoreqTogether = *c.CoreqTogether
		}
	}

	for _, c := range p.Courses {
		file.Courses = append(file.Courses, Item{
			ID:           c.ID,
			Name:         c.Name,
			Weight:       c.Credits,
			Prereqs:      c.Prereqs,
			Coreqs:       c.Coreqs,
			Group:        c.Group,
			OfferedSlots: c.OfferedTerms,
		})
	}

	for _, g := range p.Groups {
		file.Groups = append(file.Groups, ElectiveGroup{
			ID:         g.ID,
			Required:   g.Required,
			Candidates: g.Candidates,
			Priorities: g.Priorities,
		})
	}

	return file
}

func firstMissingArgument(diags hcl.Diagnostics) *hcl.Diagnostic {
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Summary == "Missing required argument" {
			return d
		}
	}
	return nil
}

func rangeContext(d *hcl.Diagnostic) string {
	if d.Subject == nil {
		return ""
	}
	return d.Subject.String()
}
