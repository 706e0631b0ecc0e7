package archiver

import (
	"errors"
	"fmt"
)

// ErrPageNotFound is returned by PageClient implementations when the
// requested page does not exist on the wiki.
var ErrPageNotFound = errors.New("page not found")

// MissingConfigError means the archiver template is not transcluded on the
// page, or a required parameter is absent.
type MissingConfigError struct {
	Page  string
	Param string
}

func (e *MissingConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("no archiver configuration found on [[%s]]", e.Page)
	}
	return fmt.Sprintf("missing required parameter %q in archiver configuration on [[%s]]", e.Param, e.Page)
}

// MalformedConfigError means a parameter value failed to parse.
type MalformedConfigError struct {
	Param  string
	Value  string
	Reason string
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed value %q for parameter %q: %s", e.Value, e.Param, e.Reason)
}

// AlgorithmError means the algo parameter uses an unsupported form.
// Only old(<duration>) is implemented.
type AlgorithmError struct {
	Algo string
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("unsupported archiving algorithm %q", e.Algo)
}

// ArchiveSecurityError means the computed archive title points outside the
// source page's subpage tree and no valid key overrides the restriction.
type ArchiveSecurityError struct {
	Page    string
	Archive string
}

func (e *ArchiveSecurityError) Error() string {
	return fmt.Sprintf("archive title %q is not a subpage of [[%s]] and no valid key was supplied", e.Archive, e.Page)
}
