package yamlmanifest

import "time"

type yamlManifest struct {
	Title        string        `yaml:"title,omitempty"`
	Description  string        `yaml:"description,omitempty"`
	Global       bool          `yaml:"global,omitempty"`
	LastModified *time.Time    `yaml:"last_modified,omitempty"`
	Datasets     []yamlDataset `yaml:"datasets"`
}

type yamlDataset struct {
	Label   string `yaml:"label"`
	Fasta   string `yaml:"fasta,omitempty"`
	Genbank string `yaml:"genbank,omitempty"`
	GFA     string `yaml:"gfa,omitempty"`
	GFF     string `yaml:"gff,omitempty"`
	GTF     string `yaml:"gtf,omitempty"`
	BED     string `yaml:"bed,omitempty"`
}
