package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/query"
)

// registryView is the stable shape printed by `list --format json|yaml`.
type registryView struct {
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	Global       bool          `json:"global" yaml:"global"`
	LastModified string        `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Datasets     []datasetView `json:"datasets" yaml:"datasets"`
}

type datasetView struct {
	Label   string `json:"label" yaml:"label"`
	Fasta   string `json:"fasta,omitempty" yaml:"fasta,omitempty"`
	Genbank string `json:"genbank,omitempty" yaml:"genbank,omitempty"`
	GFA     string `json:"gfa,omitempty" yaml:"gfa,omitempty"`
	GFF     string `json:"gff,omitempty" yaml:"gff,omitempty"`
	GTF     string `json:"gtf,omitempty" yaml:"gtf,omitempty"`
	BED     string `json:"bed,omitempty" yaml:"bed,omitempty"`
}

func newRegistryView(p domain.Project, datasets []domain.Dataset) registryView {
	v := registryView{
		Title:       p.Title,
		Description: p.Description,
		Global:      p.Global,
		Datasets:    make([]datasetView, 0, len(datasets)),
	}
	if !p.UpdatedAt.IsZero() {
		v.LastModified = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	for _, ds := range datasets {
		v.Datasets = append(v.Datasets, datasetView{
			Label:   ds.Label,
			Fasta:   ds.Fasta(),
			Genbank: ds.Genbank(),
			GFA:     ds.GFA(),
			GFF:     ds.GFF(),
			GTF:     ds.GTF(),
			BED:     ds.BED(),
		})
	}
	return v
}

func printRegistry(w io.Writer, v registryView, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "pretty", "":
		printPrettyRegistry(w, v)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func printPrettyRegistry(w io.Writer, v registryView) {
	title := v.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "Registry: %s\n", title)
	if v.Description != "" {
		fmt.Fprintf(w, "About:    %s\n", v.Description)
	}
	if v.LastModified != "" {
		fmt.Fprintf(w, "Modified: %s\n", v.LastModified)
	}
	fmt.Fprintln(w)

	if len(v.Datasets) == 0 {
		fmt.Fprintln(w, "no datasets registered")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LABEL", "KIND", "LOCATION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, ds := range v.Datasets {
		for _, slot := range ds.slots() {
			t.Row(ds.Label, slot[0], slot[1])
		}
	}
	fmt.Fprintln(w, t.Render())
}

// slots pairs each populated kind with its location, in display order.
func (d datasetView) slots() [][2]string {
	all := [][2]string{
		{string(domain.KindFasta), d.Fasta},
		{string(domain.KindGenbank), d.Genbank},
		{string(domain.KindGFA), d.GFA},
		{string(domain.KindGFF), d.GFF},
		{string(domain.KindGTF), d.GTF},
		{string(domain.KindBED), d.BED},
	}
	out := all[:0]
	for _, s := range all {
		if s[1] != "" {
			out = append(out, s)
		}
	}
	return out
}

func printQuery(w io.Writer, v registryView, expr string) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	values, err := query.Select(body, expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.Join(values, "\n"))
	return err
}
