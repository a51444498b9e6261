package simplequery

import (
	"errors"
	"fmt"
)

// ErrAndWhereWithoutWhere is returned when AndWhere is used before any Where
// established a filter list.
var ErrAndWhereWithoutWhere = errors.New("simplequery: AndWhere requires a prior Where")

// ErrMissingTable is returned when a statement is rendered without a target table.
type ErrMissingTable struct {
	Kind Kind
}

func (e *ErrMissingTable) Error() string {
	return fmt.Sprintf("simplequery: %s statement has no table", e.Kind)
}

// NewErrMissingTable constructs a new ErrMissingTable for the given statement kind.
func NewErrMissingTable(kind Kind) error {
	return &ErrMissingTable{Kind: kind}
}

// ErrMissingFields is returned when an INSERT or UPDATE has nothing to write.
type ErrMissingFields struct {
	Kind Kind
}

func (e *ErrMissingFields) Error() string {
	return fmt.Sprintf("simplequery: %s statement requires at least one field", e.Kind)
}

// NewErrMissingFields constructs a new ErrMissingFields for the given statement kind.
func NewErrMissingFields(kind Kind) error {
	return &ErrMissingFields{Kind: kind}
}

// ErrInvalidOperator is returned for comparison operators outside the
// supported set.
type ErrInvalidOperator struct {
	Operator string
}

func (e *ErrInvalidOperator) Error() string {
	return fmt.Sprintf("simplequery: operator %q is not supported", e.Operator)
}

// NewErrInvalidOperator constructs a new ErrInvalidOperator.
func NewErrInvalidOperator(op string) error {
	return &ErrInvalidOperator{Operator: op}
}

// ErrEmptyColumn is returned when a field, filter or column has no name.
type ErrEmptyColumn struct {
	Clause string
}

func (e *ErrEmptyColumn) Error() string {
	return fmt.Sprintf("simplequery: empty column name in %s", e.Clause)
}

// NewErrEmptyColumn constructs a new ErrEmptyColumn for the given clause name.
func NewErrEmptyColumn(clause string) error {
	return &ErrEmptyColumn{Clause: clause}
}

// ErrKindMismatch is returned when an operation receives a statement of the
// wrong kind, e.g. Query with an INSERT.
type ErrKindMismatch struct {
	Want Kind
	Got  Kind
}

func (e *ErrKindMismatch) Error() string {
	return fmt.Sprintf("simplequery: expected a %s statement, got %s", e.Want, e.Got)
}

// NewErrKindMismatch constructs a new ErrKindMismatch.
func NewErrKindMismatch(want, got Kind) error {
	return &ErrKindMismatch{Want: want, Got: got}
}
