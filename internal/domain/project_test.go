package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestProjectRegister_AppendsNewLabel(t *testing.T) {
	p := NewProject("refs", "", false)

	out, err := p.Register(Dataset{Label: "e_coli", Files: FileSet{KindFasta: "ecoli.fasta"}})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !out.IsRegistered("e_coli") {
		t.Fatalf("expected e_coli registered")
	}
	if p.IsRegistered("e_coli") {
		t.Fatalf("expected receiver not mutated")
	}
}

func TestProjectRegister_MergesExistingLabel(t *testing.T) {
	p := NewProject("", "", false)
	p, _ = p.Register(Dataset{Label: "test1", Files: FileSet{KindFasta: "https://x/a.fasta"}})
	p, _ = p.Register(Dataset{Label: "test1", Files: FileSet{KindGenbank: "https://x/a.gbk"}})

	if len(p.Datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(p.Datasets))
	}
	ds, err := p.Dataset("test1")
	if err != nil {
		t.Fatalf("Dataset error: %v", err)
	}
	if ds.Fasta() != "https://x/a.fasta" || ds.Genbank() != "https://x/a.gbk" {
		t.Fatalf("expected merged slots, got %+v", ds.Files)
	}
}

func TestProjectRegister_EmptyLabel(t *testing.T) {
	_, err := NewProject("", "", false).Register(Dataset{})
	if !errors.Is(err, &EntryError{Kind: EntryInvalidLabel}) {
		t.Fatalf("expected invalid label, got %v", err)
	}
}

func TestProjectRemove(t *testing.T) {
	p := NewProject("", "", false)
	p, _ = p.Register(Dataset{Label: "a", Files: FileSet{KindBED: "a.bed"}})
	p, _ = p.Register(Dataset{Label: "b", Files: FileSet{KindBED: "b.bed"}})

	out, err := p.Remove("a")
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if got := out.Labels(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected [b], got %v", got)
	}
	if len(p.Datasets) != 2 {
		t.Fatalf("expected receiver not mutated")
	}

	_, err = out.Remove("missing")
	var re *RegistryError
	if !errors.As(err, &re) || re.Kind != RegistryNotRegistered {
		t.Fatalf("expected not registered, got %v", err)
	}
}

func TestProjectDatasetURLs(t *testing.T) {
	p := NewProject("", "", false)
	p, _ = p.Register(Dataset{Label: "mix", Files: FileSet{
		KindGenbank: "https://host/x.gbk",
		KindFasta:   "https://host/x.fasta",
		KindBED:     "local.bed",
	}})

	urls, err := p.DatasetURLs("mix")
	if err != nil {
		t.Fatalf("DatasetURLs error: %v", err)
	}
	want := []string{"https://host/x.fasta", "https://host/x.gbk"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("expected %v, got %v", want, urls)
	}
}

func TestFileKindAccepts(t *testing.T) {
	cases := []struct {
		kind FileKind
		in   string
		want bool
	}{
		{KindFasta, "ref.fasta", true},
		{KindFasta, "ref.FA.gz", true},
		{KindFasta, "https://host/dir/MN908947.3.fasta?x=1", true},
		{KindGenbank, "ref.gbk", true},
		{KindGFF, "ann.gff3", true},
		{KindBED, "ref.fasta", false},
		{KindGTF, "", false},
	}
	for _, c := range cases {
		if got := c.kind.Accepts(c.in); got != c.want {
			t.Errorf("%s.Accepts(%q) = %v, want %v", c.kind, c.in, got, c.want)
		}
	}
}

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"https://example.org/a.fasta": true,
		"http://example.org/a.fasta":  true,
		"ftp://example.org/a.fasta":   false,
		"data/a.fasta":                false,
		"/abs/a.fasta":                false,
	}
	for in, want := range cases {
		if got := IsRemote(in); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", in, got, want)
		}
	}
}
