package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringSet is an ordered set of strings. It decodes from either a single
// value or a list so that both legacy data shapes load into one form.
type StringSet []string

// NewStringSet trims values, drops empties and duplicates (case-insensitive),
// keeping the first spelling seen.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || set.Contains(v) {
			continue
		}
		set = append(set, v)
	}
	return set
}

// Contains reports whether v is in the set, ignoring case.
func (s StringSet) Contains(v string) bool {
	for _, have := range s {
		if strings.EqualFold(have, v) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	if s == nil {
		return StringSet{}
	}
	out := make(StringSet, len(s))
	copy(out, s)
	return out
}

// MarshalJSON always encodes a list, never null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s.Clone()))
}

// UnmarshalJSON accepts a string, a list of strings, or null.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = NewStringSet(list...)
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = NewStringSet(one)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *StringSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}
		*s = NewStringSet(one)
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = NewStringSet(list...)
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
	return nil
}
