package types

import "errors"

var (
	ErrNoAccountSections = errors.New("no account sections found in configuration file")
	ErrAllSectionsFailed = errors.New("no report could be produced for any account section")
)
