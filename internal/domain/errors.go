package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrNoRemoteFiles   = errors.New("no files to download")
)

// EntryErrorKind classifies failures while building a dataset entry.
type EntryErrorKind string

const (
	EntryFileNotFound     EntryErrorKind = "file_not_found"
	EntryInvalidLabel     EntryErrorKind = "invalid_label"
	EntryInvalidExtension EntryErrorKind = "invalid_extension"
	EntryUnreachableURL   EntryErrorKind = "unreachable_url"
	EntryEmptyDataset     EntryErrorKind = "empty_dataset"
)

// EntryError reports a dataset entry that failed file access or validation.
type EntryError struct {
	Kind  EntryErrorKind
	Label string
	Path  string // file path or URL
	Err   error
}

// FileNotFound builds the error returned when a local dataset file is missing.
func FileNotFound(path string) *EntryError {
	return &EntryError{Kind: EntryFileNotFound, Path: path}
}

func (e *EntryError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var base string
	switch e.Kind {
	case EntryFileNotFound:
		base = fmt.Sprintf("file not found: %q", e.Path)
	case EntryInvalidLabel:
		base = fmt.Sprintf("invalid dataset label %q", e.Label)
	case EntryInvalidExtension:
		base = fmt.Sprintf("unexpected file extension for %q", e.Path)
	case EntryUnreachableURL:
		base = fmt.Sprintf("remote file is not reachable: %s", e.Path)
	case EntryEmptyDataset:
		base = fmt.Sprintf("dataset %q has no files", e.Label)
	default:
		base = fmt.Sprintf("dataset entry error (%s)", e.Kind)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *EntryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another EntryError by kind, so callers can test with a bare template.
func (e *EntryError) Is(target error) bool {
	t, ok := target.(*EntryError)
	return ok && e != nil && t.Kind == e.Kind
}

// DownloadErrorKind classifies failures of the download protocol.
type DownloadErrorKind string

const (
	DownloadRequest       DownloadErrorKind = "request"
	DownloadStatus        DownloadErrorKind = "status"
	DownloadWrite         DownloadErrorKind = "write"
	DownloadNoRemoteFiles DownloadErrorKind = "no_remote_files"
)

// DownloadError reports a network or local write failure while fetching a dataset.
type DownloadError struct {
	Kind       DownloadErrorKind
	Label      string
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var base string
	switch e.Kind {
	case DownloadRequest:
		base = fmt.Sprintf("request to %s failed", e.URL)
	case DownloadStatus:
		base = fmt.Sprintf("server returned HTTP %d for %s", e.StatusCode, e.URL)
	case DownloadWrite:
		base = fmt.Sprintf("could not write %s", e.URL)
	case DownloadNoRemoteFiles:
		base = fmt.Sprintf("dataset %q has no files to download", e.Label)
	default:
		base = fmt.Sprintf("download error (%s)", e.Kind)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *DownloadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *DownloadError) Is(target error) bool {
	t, ok := target.(*DownloadError)
	return ok && e != nil && t.Kind == e.Kind
}

// RegistryErrorKind classifies failures of registry state.
type RegistryErrorKind string

const (
	RegistryNotRegistered   RegistryErrorKind = "not_registered"
	RegistryNotFound        RegistryErrorKind = "not_found"
	RegistryInvalidManifest RegistryErrorKind = "invalid_manifest"
	RegistryIO              RegistryErrorKind = "io"
	RegistryInvalidOptions  RegistryErrorKind = "invalid_options"
)

// RegistryError reports a failure reading, writing or querying the registry.
type RegistryError struct {
	Kind  RegistryErrorKind
	Label string
	Path  string // Optional: manifest path
	Err   error
}

// NotRegistered builds the error returned for a label absent from the registry.
func NotRegistered(label string) *RegistryError {
	return &RegistryError{Kind: RegistryNotRegistered, Label: label}
}

func (e *RegistryError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var base string
	switch e.Kind {
	case RegistryNotRegistered:
		base = fmt.Sprintf("dataset %q is not registered", e.Label)
	case RegistryNotFound:
		base = fmt.Sprintf("no registry found at %q (run `refman init` first)", e.Path)
	case RegistryInvalidManifest:
		base = fmt.Sprintf("invalid registry manifest %q", e.Path)
	case RegistryIO:
		base = fmt.Sprintf("registry i/o failed (path=%s)", e.Path)
	case RegistryInvalidOptions:
		base = "invalid registry options"
	default:
		base = fmt.Sprintf("registry error (%s)", e.Kind)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *RegistryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *RegistryError) Is(target error) bool {
	t, ok := target.(*RegistryError)
	return ok && e != nil && t.Kind == e.Kind
}
