package logic

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"stockhub/internal/domain"
)

// MatchMode selects how a search term is compared with option fields
type MatchMode int

const (
	// MatchSubstring is a case-insensitive substring match
	MatchSubstring MatchMode = iota
	// MatchFuzzy matches when the term's characters appear in order, ignoring case
	MatchFuzzy
)

func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// ParseMatchMode converts a configuration string to a MatchMode.
// The empty string selects MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "fuzzy":
		return MatchFuzzy, nil
	default:
		return MatchSubstring, fmt.Errorf("unknown match mode %q", s)
	}
}

// Field reads a field off an option as a string.
// Missing and nil fields, typed nil pointers included, yield ("", false);
// other values are formatted, with whole floats (as decoded from JSON)
// printed without a fraction.
func Field(option domain.Option, key string) (string, bool) {
	if option == nil {
		return "", false
	}
	raw, ok := option[key]
	if !ok || isNil(raw) {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// OptionFilter matches options against a search term over a set of fields
type OptionFilter struct {
	keys []string
	mode MatchMode
}

// NewOptionFilter creates a filter over the given search keys
func NewOptionFilter(keys []string, mode MatchMode) *OptionFilter {
	k := make([]string, len(keys))
	copy(k, keys)
	return &OptionFilter{keys: k, mode: mode}
}

// Keys returns the fields the filter searches
func (f *OptionFilter) Keys() []string {
	return f.keys
}

// Matches reports whether any search key of the option matches the term.
// An empty term matches everything.
func (f *OptionFilter) Matches(option domain.Option, term string) bool {
	if term == "" {
		return true
	}

	query := strings.ToLower(term)
	for _, key := range f.keys {
		value, ok := Field(option, key)
		if !ok {
			continue
		}
		if f.matchValue(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func (f *OptionFilter) matchValue(value, query string) bool {
	switch f.mode {
	case MatchFuzzy:
		return fuzzy.Match(query, value)
	default:
		return strings.Contains(value, query)
	}
}

// Indices returns the positions of matching options, in their original order
func (f *OptionFilter) Indices(options []domain.Option, term string) []int {
	indices := make([]int, 0, len(options))
	for i, option := range options {
		if f.Matches(option, term) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Filter returns the matching options, in their original order
func (f *OptionFilter) Filter(options []domain.Option, term string) []domain.Option {
	result := make([]domain.Option, 0, len(options))
	for _, i := range f.Indices(options, term) {
		result = append(result, options[i])
	}
	return result
}
