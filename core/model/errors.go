package model

import "errors"

// ErrInvariant marks a broken engine invariant: a double-buffered job, an
// impossible task state or exhausted relaxation with candidates left.
// These are programming errors and are never recovered.
var ErrInvariant = errors.New("invariant violation")
