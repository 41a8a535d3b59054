package data

import "errors"

var (
	// ErrCorruptStore indicates a stored collection could not be
	// decoded; the in-memory state has been reset to empty.
	ErrCorruptStore = errors.New("stored data is corrupt")

	// ErrFileNotFound indicates the file was not present in the
	// container the caller named.
	ErrFileNotFound = errors.New("file not found")

	// ErrProjectNotFound indicates no project exists with the given ID.
	ErrProjectNotFound = errors.New("project not found")

	// ErrEmptyProjectName indicates a project create/update with a
	// blank name.
	ErrEmptyProjectName = errors.New("project name must not be empty")

	// ErrNotHTML indicates an import of a file outside the HTML
	// extension class.
	ErrNotHTML = errors.New("only HTML files can be imported")
)
