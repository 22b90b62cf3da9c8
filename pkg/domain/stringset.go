package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of strings with deterministic (sorted) JSON
// serialization. Insertion order is irrelevant by design; consumers that
// need stability should use Values.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	s.Union(values)
	return s
}

// Add inserts a single value.
func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

// Union inserts all values. Duplicates are no-ops, which makes repeated
// application idempotent.
func (s StringSet) Union(values []string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Has reports whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// ContainsAll reports whether every value is in the set.
func (s StringSet) ContainsAll(values []string) bool {
	for _, v := range values {
		if !s.Has(v) {
			return false
		}
	}
	return true
}

// Values returns the members sorted lexicographically.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes from an array of strings.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
