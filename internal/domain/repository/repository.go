package repository

import "errors"

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// Condition is a column level filter used by existence checks.
// Where entries must match, Not entries must differ.
type Condition struct {
	Where map[string]any
	Not   map[string]any
}

// Where starts a condition requiring column to equal value.
func Where(column string, value any) Condition {
	return Condition{Where: map[string]any{column: value}}
}

// And adds another equality requirement.
func (c Condition) And(column string, value any) Condition {
	w := make(map[string]any, len(c.Where)+1)
	for k, v := range c.Where {
		w[k] = v
	}
	w[column] = value
	return Condition{Where: w, Not: c.Not}
}

// Except excludes rows whose column equals value.
func (c Condition) Except(column string, value any) Condition {
	n := make(map[string]any, len(c.Not)+1)
	for k, v := range c.Not {
		n[k] = v
	}
	n[column] = value
	return Condition{Where: c.Where, Not: n}
}
