package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound is returned when the corpus root directory does not exist.
	ErrRootNotFound = errors.New("root directory does not exist")

	// ErrRootNotDir is returned when the corpus root is not a directory.
	ErrRootNotDir = errors.New("root is not a directory")

	// ErrEmptyCorpus is returned when no readable, non-empty documents were found.
	ErrEmptyCorpus = errors.New("no valid documents found")
)

// ConfigurationError is a fatal startup problem with the corpus input.
type ConfigurationError struct {
	Root string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("corpus %s: %v", e.Root, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
