package duel

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMovePool = errors.New("move pool has no usable moves")
	ErrUnknownMove   = errors.New("move is not in the assigned move set")
	ErrWrongPhase    = errors.New("battle is not waiting for a player move")
	ErrInvertedRange = errors.New("oracle returned a max damage lower than its min damage")
	ErrAborted       = errors.New("battle was aborted")
)

// DataError is returned for malformed or undersized input records.
// Loading stops at the first one.
type DataError struct {
	// Source is the file or input the record came from
	Source string
	// Record is the record key (usually a name) or a row number when no name was read yet
	Record string
	Field  string
	Err    error
}

func (e *DataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad data in %s, record %q: %v", e.Source, e.Record, e.Err)
	}

	return fmt.Sprintf("bad data in %s, record %q, field %q: %v", e.Source, e.Record, e.Field, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// InvalidMoveError rejects a player move. The battle state is left untouched when this is returned.
type InvalidMoveError struct {
	Move   string
	Reason error
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q: %v", e.Move, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return e.Reason
}

// DamageOracleError wraps any failure to get a damage roll for a move:
// transport errors, timeouts, bad responses and unusable bounds.
type DamageOracleError struct {
	Attacker string
	Defender string
	Move     string
	Err      error
}

func (e *DamageOracleError) Error() string {
	return fmt.Sprintf("damage oracle failed for %s using %s on %s: %v", e.Attacker, e.Move, e.Defender, e.Err)
}

func (e *DamageOracleError) Unwrap() error {
	return e.Err
}
