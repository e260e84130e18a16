package desk

import "fmt"

// StorageError reports that the underlying Store rejected a read or write,
// for example because a quota was exceeded. It is never retried.
type StorageError struct {
	Op  string // "get", "set" or "remove"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError reports an update that targeted an id absent from the
// collection.
type NotFoundError struct {
	Kind string // "equipment", "sim card", "ad spot"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// DuplicateFolderError reports folder creation against an existing name.
type DuplicateFolderError struct {
	Name string
}

func (e *DuplicateFolderError) Error() string {
	return fmt.Sprintf("folder already exists: %q", e.Name)
}

// GeocodeNotFoundError reports a geocoding search with no candidates.
type GeocodeNotFoundError struct {
	Query string
}

func (e *GeocodeNotFoundError) Error() string {
	return fmt.Sprintf("no location found for %q", e.Query)
}

// MediaReadError reports an uploaded file that could not be converted into
// a storable data URI.
type MediaReadError struct {
	Name string
	Err  error
}

func (e *MediaReadError) Error() string {
	return fmt.Sprintf("reading media %q: %v", e.Name, e.Err)
}

func (e *MediaReadError) Unwrap() error { return e.Err }
