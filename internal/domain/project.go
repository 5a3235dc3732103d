package domain

import "time"

// Project is a registry: metadata plus the registered datasets.
//
// Register and Remove return a replacement project; the receiver is never mutated.
type Project struct {
	Title       string
	Description string
	Global      bool
	UpdatedAt   time.Time

	Datasets []Dataset
}

// NewProject returns an empty registry.
func NewProject(title, description string, global bool) Project {
	return Project{
		Title:       title,
		Description: description,
		Global:      global,
		Datasets:    []Dataset{},
	}
}

// IsRegistered reports whether label is present.
func (p Project) IsRegistered(label string) bool {
	return p.index(label) >= 0
}

// Dataset returns the dataset registered under label.
func (p Project) Dataset(label string) (Dataset, error) {
	i := p.index(label)
	if i < 0 {
		return Dataset{}, NotRegistered(label)
	}
	return p.Datasets[i].Clone(), nil
}

// DatasetURLs returns the remote file locations of the dataset under label.
func (p Project) DatasetURLs(label string) ([]string, error) {
	ds, err := p.Dataset(label)
	if err != nil {
		return nil, err
	}
	return ds.URLs(), nil
}

// Labels returns every registered label in registry order.
func (p Project) Labels() []string {
	out := make([]string, 0, len(p.Datasets))
	for _, d := range p.Datasets {
		out = append(out, d.Label)
	}
	return out
}

// Register adds ds, or merges its non-empty file slots into an existing dataset
// with the same label.
func (p Project) Register(ds Dataset) (Project, error) {
	if ds.Label == "" {
		return p, &EntryError{Kind: EntryInvalidLabel}
	}

	out := p.clone()
	if i := out.index(ds.Label); i >= 0 {
		out.Datasets[i] = out.Datasets[i].Merge(ds)
		return out, nil
	}
	out.Datasets = append(out.Datasets, ds.Clone())
	return out, nil
}

// Remove drops the dataset under label.
func (p Project) Remove(label string) (Project, error) {
	i := p.index(label)
	if i < 0 {
		return p, NotRegistered(label)
	}

	out := p.clone()
	out.Datasets = append(out.Datasets[:i], out.Datasets[i+1:]...)
	return out, nil
}

func (p Project) index(label string) int {
	for i, d := range p.Datasets {
		if d.Label == label {
			return i
		}
	}
	return -1
}

func (p Project) clone() Project {
	out := p
	out.Datasets = make([]Dataset, 0, len(p.Datasets)+1)
	for _, d := range p.Datasets {
		out.Datasets = append(out.Datasets, d.Clone())
	}
	return out
}
