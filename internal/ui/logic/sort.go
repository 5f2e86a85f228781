package logic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"stockhub/internal/domain"
)

// SortMode represents different option orderings
type SortMode int

const (
	// SortNone keeps the order the backend returned
	SortNone SortMode = iota
	SortByLabel
	SortByKey

	sortModeCount
)

// Next returns the mode after m, wrapping around after the last one
func (m SortMode) Next() SortMode {
	return (m + 1) % sortModeCount
}

func (m SortMode) String() string {
	switch m {
	case SortNone:
		return "none"
	case SortByLabel:
		return "label"
	case SortByKey:
		return "key"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode converts a configuration string to a SortMode
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "label", "name":
		return SortByLabel, nil
	case "key", "id":
		return SortByKey, nil
	default:
		return SortNone, fmt.Errorf("unknown sort mode %q", s)
	}
}

// OptionSorter orders option lists before they are handed to a select
type OptionSorter struct {
	displayKey string
	valueKey   string
}

// NewOptionSorter creates a sorter reading labels and keys from the given fields
func NewOptionSorter(displayKey, valueKey string) *OptionSorter {
	return &OptionSorter{displayKey: displayKey, valueKey: valueKey}
}

// Sort returns a sorted copy of options; the input slice is left untouched
func (s *OptionSorter) Sort(options []domain.Option, mode SortMode) []domain.Option {
	sorted := make([]domain.Option, len(options))
	copy(sorted, options)

	switch mode {
	case SortByLabel:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, _ := Field(sorted[i], s.displayKey)
			b, _ := Field(sorted[j], s.displayKey)
			return strings.ToLower(a) < strings.ToLower(b)
		})
	case SortByKey:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, _ := Field(sorted[i], s.valueKey)
			b, _ := Field(sorted[j], s.valueKey)
			return lessKey(a, b)
		})
	}
	return sorted
}

// lessKey compares numerically when both keys are integers
func lessKey(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
