package stage

import (
	"fmt"
	"math"
)

// ViolationKind identifies which consistency rule a stage map broke.
type ViolationKind string

const (
	MissingKey  ViolationKind = "missing_stage_key"
	UnknownKey  ViolationKind = "unknown_stage_key"
	Sequence    ViolationKind = "sequence_violation"
	Progression ViolationKind = "progression_violation"
)

// ValidationError reports a single broken rule. Message is stable and meant
// for direct display to the client so forms can be corrected.
type ValidationError struct {
	Kind    ViolationKind
	Key     string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingKeyError(key string) *ValidationError {
	return &ValidationError{Kind: MissingKey, Key: key, Message: fmt.Sprintf("Missing required stage: %s", key)}
}

func unknownKeyError(key string) *ValidationError {
	return &ValidationError{Kind: UnknownKey, Key: key, Message: fmt.Sprintf("Unknown stage: %s", key)}
}

func sequenceError(earlier, later string) *ValidationError {
	return &ValidationError{
		Kind:    Sequence,
		Key:     later,
		Message: fmt.Sprintf("Invalid interview sequence: %s must be true if %s is true", earlier, later),
	}
}

func progressionError(key, message string) *ValidationError {
	return &ValidationError{Kind: Progression, Key: key, Message: message}
}

// ValidateFull checks a complete stage map as used on creation. All six base
// stages must be present before the sequence and progression rules run.
func ValidateFull(m Map) error {
	for _, k := range orderPrefix {
		if _, ok := m[k]; !ok {
			return missingKeyError(k)
		}
	}
	for _, k := range orderSuffix {
		if _, ok := m[k]; !ok {
			return missingKeyError(k)
		}
	}
	if err := checkKnown(m); err != nil {
		return err
	}
	return validate(m)
}

// ValidatePatch checks an update. The patch is first merged over the existing
// map and the merged result is validated, so a patch can never leave the
// record inconsistent even when its fields look fine in isolation.
func ValidatePatch(existing, patch Map) error {
	if err := checkKnown(patch); err != nil {
		return err
	}
	return validate(Merge(existing, patch))
}

// validate runs the sequence and progression rules over a merged map.
func validate(m Map) error {
	interviews := interviewKeys(m)

	// a completed round n requires every round 1..n-1 to be completed,
	// whether or not those keys were ever written
	for _, k := range interviews {
		if !m[k] {
			continue
		}
		n := interviewIndex(k)
		if n == math.MaxInt {
			continue // malformed suffix, ordered last; covered by the pairwise check below
		}
		for prev := 1; prev < n; prev++ {
			prevKey := fmt.Sprintf("%s%d", interviewPrefix, prev)
			if !m[prevKey] {
				return sequenceError(prevKey, k)
			}
		}
	}

	// pairwise check over the keys actually present keeps malformed
	// interview keys (non-numeric suffix, sorted last) in sequence too
	for i := 0; i+1 < len(interviews); i++ {
		if m[interviews[i+1]] && !m[interviews[i]] {
			return sequenceError(interviews[i], interviews[i+1])
		}
	}

	anyInterview := false
	for _, k := range interviews {
		if m[k] {
			anyInterview = true
			break
		}
	}

	if anyInterview && !m[Applied] {
		return progressionError(Applied, "Cannot be in Interview stage without being Applied")
	}
	if m[Offer] && !anyInterview {
		return progressionError(Offer, "Cannot have an Offer without any Interview")
	}
	if m[Hired] && !m[Offer] {
		return progressionError(Hired, "Cannot be Hired without an Offer")
	}
	if m[PastRoles] && !m[Hired] && !m[Ineligible] {
		return progressionError(PastRoles, "Past Roles requires either Hired or Ineligible status")
	}

	return nil
}
