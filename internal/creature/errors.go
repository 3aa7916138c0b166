package creature

import (
	"errors"
	"fmt"
)

// ErrUnknownCreature is returned by ReloadOne for names never registered.
var ErrUnknownCreature = errors.New("unknown creature")

// DocumentError reports a record tree with the wrong root element.
// It aborts the whole load batch.
type DocumentError struct {
	Path string
	Root string // root element found
	Want string // root element expected
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("malformed document %s: root %q, want %q", e.Path, e.Root, e.Want)
}

// FieldError reports a creature record without a required field.
// The record is discarded; already published templates are unaffected.
type FieldError struct {
	Creature string
	Field    string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("creature %q: missing %s", e.Creature, e.Field)
}

// ReloadError reports a failed single-template reload.
// The previously published template is left untouched.
type ReloadError struct {
	Name string
	Err  error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reloading creature %q: %v", e.Name, e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}
