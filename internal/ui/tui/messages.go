package tui

import "github.com/nrminor/py-refman/internal/domain"

type registryLoadedMsg struct {
	project domain.Project
	err     error
}

type downloadDoneMsg struct {
	label string
	dest  string
	err   error
}

type removeDoneMsg struct {
	label   string
	project domain.Project
	err     error
}
