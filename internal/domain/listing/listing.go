// Package listing derives the rendered subset of a fetched collection from
// the user's search, filter and sort selections. Everything runs in memory.
package listing

import (
	"strings"

	"github.com/claimex/backend/pkg/enum"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// All is the sentinel of every filter dimension meaning no constraint.
const All = "All"

type SortKey string

var (
	SortRecent  = enum.New(SortKey("recent"))
	SortPopular = enum.New(SortKey("popular"))
	SortReward  = enum.New(SortKey("reward"))
)

type Predicate[T any] func(T) bool

// Filter keeps the items matching every predicate. The result does not depend
// on the order of predicates.
func Filter[T any](items []T, predicates ...Predicate[T]) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		for _, p := range predicates {
			if !p(item) {
				return false
			}
		}
		return true
	})
}

// Sort returns a sorted copy. Equal items keep their relative order.
func Sort[T any](items []T, less func(a, b T) bool) []T {
	result := slices.Clone(items)
	if less != nil {
		slices.SortStableFunc(result, less)
	}

	return result
}

func isConstrained(value string) bool {
	return value != "" && value != All
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Search matches items whose any field contains q, ignoring case. An empty q
// matches everything.
func Search[T any](q string, fields ...func(T) string) Predicate[T] {
	return func(item T) bool {
		if q == "" {
			return true
		}

		for _, field := range fields {
			if containsFold(field(item), q) {
				return true
			}
		}

		return false
	}
}

// Equal matches items whose field equals value, unless value is empty or All.
func Equal[T any](value string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		return !isConstrained(value) || field(item) == value
	}
}
