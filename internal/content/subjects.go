package content

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const SubjectUntagged = "untagged"

// PredefinedSubjects are the built-in tags offered everywhere a subject can
// be chosen. Anything else a user types becomes a custom subject.
var PredefinedSubjects = []string{"math", "science", "history", "english"}

var defaultSubjectLabels = map[string]string{
	"math":     "Mathematics",
	"science":  "Science",
	"history":  "History",
	"english":  "English",
	"other":    "Other",
	"untagged": "Untagged",
}

// SubjectTaxonomy resolves subject keys to display labels. A deployment can
// extend or override the defaults from a YAML file.
type SubjectTaxonomy struct {
	labels map[string]string
}

func NewSubjectTaxonomy() *SubjectTaxonomy {
	labels := make(map[string]string, len(defaultSubjectLabels))
	for k, v := range defaultSubjectLabels {
		labels[k] = v
	}
	return &SubjectTaxonomy{labels: labels}
}

// LoadSubjectTaxonomy reads a YAML mapping of subject key to label and lays
// it over the defaults.
func LoadSubjectTaxonomy(path string) (*SubjectTaxonomy, error) {
	t := NewSubjectTaxonomy()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	for k, v := range overrides {
		t.labels[k] = v
	}
	return t, nil
}

// Label returns the display label for a subject key, falling back to the
// key itself for custom subjects.
func (t *SubjectTaxonomy) Label(subject string) string {
	if label, ok := t.labels[subject]; ok {
		return label
	}
	return subject
}

// Class returns the style class for a subject, "custom" for anything
// outside the built-in set.
func (t *SubjectTaxonomy) Class(subject string) string {
	if subject == SubjectUntagged {
		return subject
	}
	for _, s := range PredefinedSubjects {
		if s == subject {
			return subject
		}
	}
	return "custom"
}

// SubjectOption is one entry of a subject filter dropdown.
type SubjectOption struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Separator bool   `json:"separator,omitempty"`
}

// FilterOptions builds the subject dropdown for a set of materials'
// subjects: built-ins first, then any custom subjects sorted under a
// separator, then untagged when present. Rebuilding from the same subjects
// yields the same options.
func (t *SubjectTaxonomy) FilterOptions(subjects []string) []SubjectOption {
	seen := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		if s != "" {
			seen[s] = true
		}
	}

	options := []SubjectOption{{Value: "", Label: "All Subjects"}}
	for _, s := range PredefinedSubjects {
		options = append(options, SubjectOption{Value: s, Label: t.Label(s)})
	}

	var custom []string
	for s := range seen {
		if s == SubjectUntagged {
			continue
		}
		predefined := false
		for _, p := range PredefinedSubjects {
			if p == s {
				predefined = true
				break
			}
		}
		if !predefined {
			custom = append(custom, s)
		}
	}
	sort.Strings(custom)
	if len(custom) > 0 {
		options = append(options, SubjectOption{Label: "── Custom Subjects ──", Separator: true})
		for _, s := range custom {
			options = append(options, SubjectOption{Value: s, Label: s})
		}
	}

	if seen[SubjectUntagged] {
		options = append(options, SubjectOption{Value: SubjectUntagged, Label: t.Label(SubjectUntagged)})
	}
	return options
}
