package domain

import (
	"net/url"
	"sort"
	"strings"
)

// FileKind identifies one of the genomic file slots a dataset can hold.
type FileKind string

const (
	KindFasta   FileKind = "fasta"
	KindGenbank FileKind = "genbank"
	KindGFA     FileKind = "gfa"
	KindGFF     FileKind = "gff"
	KindGTF     FileKind = "gtf"
	KindBED     FileKind = "bed"
)

// FileKinds lists every slot in display order.
var FileKinds = []FileKind{KindFasta, KindGenbank, KindGFA, KindGFF, KindGTF, KindBED}

var kindExtensions = map[FileKind][]string{
	KindFasta:   {".fasta", ".fa", ".fna", ".faa", ".ffn", ".fas"},
	KindGenbank: {".gb", ".gbk", ".gbff", ".genbank"},
	KindGFA:     {".gfa"},
	KindGFF:     {".gff", ".gff3"},
	KindGTF:     {".gtf"},
	KindBED:     {".bed"},
}

// Extensions returns the file extensions accepted for the kind.
func (k FileKind) Extensions() []string {
	return kindExtensions[k]
}

// Accepts reports whether a path or URL carries an extension valid for k.
// A trailing .gz is ignored.
func (k FileKind) Accepts(location string) bool {
	p := strings.ToLower(location)
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Path != "" {
		p = strings.ToLower(u.Path)
	}
	p = strings.TrimSuffix(p, ".gz")
	for _, ext := range kindExtensions[k] {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// FileSet maps file slots to local paths or HTTP(S) URLs. Empty values mean "unset".
type FileSet map[FileKind]string

// Dataset is a labelled group of reference files.
type Dataset struct {
	Label string
	Files FileSet
}

func (d Dataset) Fasta() string   { return d.Files[KindFasta] }
func (d Dataset) Genbank() string { return d.Files[KindGenbank] }
func (d Dataset) GFA() string     { return d.Files[KindGFA] }
func (d Dataset) GFF() string     { return d.Files[KindGFF] }
func (d Dataset) GTF() string     { return d.Files[KindGTF] }
func (d Dataset) BED() string     { return d.Files[KindBED] }

// Kinds returns the populated slots in display order.
func (d Dataset) Kinds() []FileKind {
	out := make([]FileKind, 0, len(d.Files))
	for _, k := range FileKinds {
		if strings.TrimSpace(d.Files[k]) != "" {
			out = append(out, k)
		}
	}
	return out
}

// URLs returns the remote locations of the dataset, sorted by slot order.
func (d Dataset) URLs() []string {
	var out []string
	for _, k := range d.Kinds() {
		if IsRemote(d.Files[k]) {
			out = append(out, d.Files[k])
		}
	}
	return out
}

// Merge returns a copy of d with every non-empty slot of other applied on top.
func (d Dataset) Merge(other Dataset) Dataset {
	out := Dataset{Label: d.Label, Files: FileSet{}}
	for k, v := range d.Files {
		out.Files[k] = v
	}
	for k, v := range other.Files {
		if strings.TrimSpace(v) != "" {
			out.Files[k] = v
		}
	}
	return out
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	out := Dataset{Label: d.Label, Files: make(FileSet, len(d.Files))}
	for k, v := range d.Files {
		out.Files[k] = v
	}
	return out
}

// IsRemote reports whether location is an HTTP(S) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return false
	}
	s := strings.ToLower(u.Scheme)
	return (s == "http" || s == "https") && u.Host != ""
}

// SortDatasets orders datasets by label.
func SortDatasets(in []Dataset) {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Label < in[j].Label })
}
