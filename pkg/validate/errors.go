package validate

import "errors"

var (
	ErrUnknownRule       = errors.New("validate: unknown rule")
	ErrUnknownFunc       = errors.New("validate: unknown validation function")
	ErrNoFinder          = errors.New("validate: rule needs a finder")
	ErrInvalidIdentifier = errors.New("validate: invalid table or field name")
	ErrInvalidRuleValue  = errors.New("validate: invalid rule value")
	ErrLookup            = errors.New("validate: lookup failed")
)
