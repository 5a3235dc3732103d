package yamlmanifest

import (
	"fmt"
	"strings"

	"github.com/nrminor/py-refman/internal/domain"
)

func toDomain(path string, m yamlManifest) (domain.Project, error) {
	p := domain.NewProject(m.Title, m.Description, m.Global)
	if m.LastModified != nil {
		p.UpdatedAt = m.LastModified.UTC()
	}

	seen := map[string]bool{}
	for i, d := range m.Datasets {
		label := strings.TrimSpace(d.Label)
		if label == "" {
			return domain.Project{}, invalid(path, fmt.Errorf("datasets[%d].label is required", i))
		}
		if seen[label] {
			return domain.Project{}, invalid(path, fmt.Errorf("datasets[%d]: duplicate label %q", i, label))
		}
		seen[label] = true

		files := domain.FileSet{}
		for k, v := range map[domain.FileKind]string{
			domain.KindFasta:   d.Fasta,
			domain.KindGenbank: d.Genbank,
			domain.KindGFA:     d.GFA,
			domain.KindGFF:     d.GFF,
			domain.KindGTF:     d.GTF,
			domain.KindBED:     d.BED,
		} {
			if v = strings.TrimSpace(v); v != "" {
				files[k] = v
			}
		}
		p.Datasets = append(p.Datasets, domain.Dataset{Label: label, Files: files})
	}
	return p, nil
}

func fromDomain(p domain.Project) yamlManifest {
	m := yamlManifest{
		Title:       p.Title,
		Description: p.Description,
		Global:      p.Global,
		Datasets:    make([]yamlDataset, 0, len(p.Datasets)),
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt.UTC()
		m.LastModified = &t
	}
	for _, d := range p.Datasets {
		m.Datasets = append(m.Datasets, yamlDataset{
			Label:   d.Label,
			Fasta:   d.Fasta(),
			Genbank: d.Genbank(),
			GFA:     d.GFA(),
			GFF:     d.GFF(),
			GTF:     d.GTF(),
			BED:     d.BED(),
		})
	}
	return m
}

func invalid(path string, err error) error {
	return &domain.RegistryError{Kind: domain.RegistryInvalidManifest, Path: path, Err: err}
}
