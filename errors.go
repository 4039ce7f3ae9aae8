package opfgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/opfgo/blobstore"
	"github.com/hupe1980/opfgo/persistence"
)

var (
	// ErrIO is returned when a dataset file cannot be opened.
	ErrIO = errors.New("opfgo: io failure")

	// ErrNotFound is returned when a dataset does not exist in a repository.
	ErrNotFound = errors.New("opfgo: not found")
)

// IOError reports a dataset file that could not be opened for reading or writing.
//
// It matches ErrIO with errors.Is; the underlying OS error can be reached via
// errors.Unwrap.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("opfgo: cannot open %s for %s: %v", e.Path, e.Op, e.cause)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.cause} }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var oe *persistence.OpenError
	if errors.As(err, &oe) {
		return &IOError{Op: oe.Mode, Path: oe.Path, cause: oe.Err}
	}

	if errors.Is(err, blobstore.ErrNotFound) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
