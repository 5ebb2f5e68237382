package service

import "errors"

var (
	// ErrEchoSameUnit is returned when an annotation is linked to the unit it
	// was raised in.
	ErrEchoSameUnit = errors.New("echo link must point to a different unit")
	// ErrEchoUnitNotFound is returned when an echo link targets a unit that
	// does not exist.
	ErrEchoUnitNotFound = errors.New("echo unit not found")
	// ErrChecklistItemNotFound is returned when a checked toggle targets an
	// item the current rule set did not generate.
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	// ErrReorderMismatch is returned when a reorder does not name exactly the
	// units of the section.
	ErrReorderMismatch = errors.New("reorder must name every unit of the section exactly once")
	// ErrUnknownSection is returned for a section outside the fixed sequence.
	ErrUnknownSection = errors.New("unknown section")
	// ErrSenseCoverageIncomplete is returned when a document tries to reach
	// the full-coverage section before all five senses are activated.
	ErrSenseCoverageIncomplete = errors.New("sense coverage incomplete")
)
