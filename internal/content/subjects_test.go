package content

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSubjectTaxonomy_LabelAndClass(t *testing.T) {
	taxonomy := NewSubjectTaxonomy()
	if got := taxonomy.Label("math"); got != "Mathematics" {
		t.Fatalf("expected Mathematics, got %q", got)
	}
	if got := taxonomy.Label("astrobiology"); got != "astrobiology" {
		t.Fatalf("expected custom subject to label as itself, got %q", got)
	}
	if got := taxonomy.Class("science"); got != "science" {
		t.Fatalf("expected science class, got %q", got)
	}
	if got := taxonomy.Class("astrobiology"); got != "custom" {
		t.Fatalf("expected custom class, got %q", got)
	}
	if got := taxonomy.Class(SubjectUntagged); got != SubjectUntagged {
		t.Fatalf("expected untagged class, got %q", got)
	}
}

func TestLoadSubjectTaxonomy_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.yaml")
	if err := os.WriteFile(path, []byte("math: Maths\nlatin: Latin\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	taxonomy, err := LoadSubjectTaxonomy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := taxonomy.Label("math"); got != "Maths" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := taxonomy.Label("latin"); got != "Latin" {
		t.Fatalf("expected added label, got %q", got)
	}
	if got := taxonomy.Label("science"); got != "Science" {
		t.Fatalf("expected default kept, got %q", got)
	}
}

func TestFilterOptions_Layout(t *testing.T) {
	taxonomy := NewSubjectTaxonomy()
	subjects := []string{"math", "zoology", "untagged", "chemistry", "math", ""}

	options := taxonomy.FilterOptions(subjects)

	if options[0].Value != "" || options[0].Label != "All Subjects" {
		t.Fatalf("expected All Subjects first, got %+v", options[0])
	}
	// Built-ins always present, in fixed order.
	for i, s := range PredefinedSubjects {
		if options[i+1].Value != s {
			t.Fatalf("expected %q at slot %d, got %+v", s, i+1, options[i+1])
		}
	}
	sep := options[len(PredefinedSubjects)+1]
	if !sep.Separator || sep.Label != "── Custom Subjects ──" {
		t.Fatalf("expected separator, got %+v", sep)
	}
	if options[len(PredefinedSubjects)+2].Value != "chemistry" || options[len(PredefinedSubjects)+3].Value != "zoology" {
		t.Fatalf("expected sorted custom subjects, got %+v", options)
	}
	last := options[len(options)-1]
	if last.Value != SubjectUntagged {
		t.Fatalf("expected untagged last, got %+v", last)
	}
}

func TestFilterOptions_StableAcrossRebuilds(t *testing.T) {
	taxonomy := NewSubjectTaxonomy()
	subjects := []string{"zoology", "math", "chemistry"}
	first := taxonomy.FilterOptions(subjects)
	second := taxonomy.FilterOptions(subjects)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical options across rebuilds")
	}
}

func TestFilterOptions_NoCustomNoSeparator(t *testing.T) {
	taxonomy := NewSubjectTaxonomy()
	options := taxonomy.FilterOptions([]string{"math", "science"})
	for _, o := range options {
		if o.Separator {
			t.Fatalf("unexpected separator: %+v", options)
		}
	}
	if len(options) != 1+len(PredefinedSubjects) {
		t.Fatalf("unexpected option count %d", len(options))
	}
}
