// Package stage models a candidate's progress through a hiring pipeline as a
// set of named boolean flags.
//
// Six base stages are always present once a map has been through WithDefaults:
//
//	saved ──► applied ──► interview-1..N ──► offer ──► hired ──► past-roles
//	                 │
//	                 └──────────────► ineligible ──► past-roles
//
// Interview rounds are dynamic: any number of interview-<N> keys may exist,
// ordered by ascending N. The map is not a strict forward-only state machine;
// flags may be toggled freely as long as the combination stays consistent
// (see Validate rules in validate.go).
package stage

import (
	"math"
	"strconv"
	"strings"
)

const (
	Saved      = "saved"
	Applied    = "applied"
	Offer      = "offer"
	Hired      = "hired"
	PastRoles  = "past-roles"
	Ineligible = "ineligible"

	interviewPrefix = "interview-"
)

// orderPrefix and orderSuffix are the fixed base stages surrounding the
// dynamic interview keys in canonical order.
var orderPrefix = []string{Saved, Applied}
var orderSuffix = []string{Offer, Hired, PastRoles, Ineligible}

// baseStages holds every always-present flag for membership checks.
var baseStages = map[string]bool{
	Saved:      true,
	Applied:    true,
	Offer:      true,
	Hired:      true,
	PastRoles:  true,
	Ineligible: true,
}

// Map is one candidate's stage flags for one position.
type Map map[string]bool

// IsInterview reports whether key names an interview round.
func IsInterview(key string) bool {
	return strings.HasPrefix(key, interviewPrefix)
}

// IsBase reports whether key is one of the six base stages.
func IsBase(key string) bool {
	return baseStages[key]
}

// interviewIndex returns the numeric ordering index of an interview key.
// A non-numeric suffix sorts last (treated as an infinite index) rather than
// failing; stored data from older clients contains such keys and the original
// system tolerated them.
func interviewIndex(key string) int {
	suffix := strings.TrimPrefix(key, interviewPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return math.MaxInt
	}
	return n
}

// MalformedInterviewKeys returns the interview keys of m whose suffix is not
// a non-negative integer. Such keys are tolerated and ordered after all
// numeric rounds, but callers should surface them.
func MalformedInterviewKeys(m Map) []string {
	var out []string
	for _, k := range interviewKeys(m) {
		if interviewIndex(k) == math.MaxInt {
			out = append(out, k)
		}
	}
	return out
}

// checkKnown returns an UnknownKey error for the first key in m that is
// neither a base stage nor an interview-<N> key.
func checkKnown(m Map) error {
	for k := range m {
		if !IsBase(k) && !IsInterview(k) {
			return unknownKeyError(k)
		}
	}
	return nil
}

// WithDefaults builds a complete stage map from a possibly partial input:
// every base stage missing from in defaults to false, interview keys are
// carried over as-is. Keys matching neither pattern are rejected.
func WithDefaults(in Map) (Map, error) {
	if err := checkKnown(in); err != nil {
		return nil, err
	}

	out := make(Map, len(baseStages)+len(in))
	for k := range baseStages {
		out[k] = false
	}
	for k, v := range in {
		out[k] = v
	}
	return out, nil
}

// Merge applies patch over existing: keys present in patch overwrite, all
// other keys keep their prior value. Neither input is modified.
func Merge(existing, patch Map) Map {
	out := make(Map, len(existing)+len(patch))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Clone returns a copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// interviewKeys returns the interview keys of m sorted by ascending round
// number, ties (and non-numeric suffixes) broken lexicographically so the
// order is reproducible.
func interviewKeys(m Map) []string {
	keys := make([]string, 0, 4)
	for k := range m {
		if IsInterview(k) {
			keys = append(keys, k)
		}
	}
	sortInterviewKeys(keys)
	return keys
}

func sortInterviewKeys(keys []string) {
	// insertion sort; interview counts are tiny
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func less(a, b string) bool {
	ia, ib := interviewIndex(a), interviewIndex(b)
	if ia != ib {
		return ia < ib
	}
	return a < b
}
