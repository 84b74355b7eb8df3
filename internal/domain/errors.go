package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Artifact descriptor errors (invalid input: fail fast, never partially computed)
	ErrMsgInvalidArtifact   = "invalid artifact descriptor"
	ErrMsgInvalidRarity     = "rarity must be between 1 and 5"
	ErrMsgInvalidLevel      = "level exceeds rarity cap"
	ErrMsgTooManySubstats   = "artifact cannot have more than 4 substats"
	ErrMsgDuplicateSubstat  = "duplicate substat"
	ErrMsgMainStatSubstat   = "substat duplicates the main stat"
	ErrMsgInvalidMainStat   = "main stat not valid for slot"
	ErrMsgRollCountMismatch = "roll history does not match level and rarity"

	// Data inconsistency errors
	ErrMsgRollHistory = "no roll combination reproduces substat value"

	// Probability bookkeeping errors (internal defect, never auto-corrected)
	ErrMsgMassInvariant = "probability mass invariant violated"

	// Table lookup errors
	ErrMsgNoData = "no data for combination"

	// Scoring configuration errors
	ErrMsgInvalidScoring = "invalid scoring configuration"

	// Validation errors (used for partial matches)
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Invalid input
	ErrInvalidArtifact = errors.New(ErrMsgInvalidArtifact)
	ErrInvalidScoring  = errors.New(ErrMsgInvalidScoring)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)

	// Data inconsistency
	ErrRollHistory = errors.New(ErrMsgRollHistory)

	// Invariant violation
	ErrMassInvariant = errors.New(ErrMsgMassInvariant)

	// Unsupported configuration
	ErrNoData = errors.New(ErrMsgNoData)
)
