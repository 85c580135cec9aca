// Package form holds the pure create/edit form reducers behind the entity
// screens. A screen feeds field-change events into Apply and renders the
// returned state; derived fields (username, email, class code) are recomputed
// on every event while the form is in create mode and frozen in edit mode.
// Reducers never touch I/O or ambient state.
package form

// Mode gates derivation: derived fields only auto-populate while creating.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)
