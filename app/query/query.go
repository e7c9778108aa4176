// Package query filters and orders product listings.
//
// Filters are independent predicates ANDed together, so the order they are
// applied in never changes the result. Sorting runs last and is stable.
//
//	spec, err := query.Parse(r.URL.Query())
//	products = query.Apply(products, spec)
package query

import (
	"math"
	"strings"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// Recognised sort keys.
const (
	SortName      = "name"
	SortPrice     = "price"
	SortCreatedAt = "created_at"
)

// OrderDesc reverses the comparator of a recognised sort key.
const OrderDesc = "desc"

// Spec describes one listing request. Nil and empty fields do not filter.
type Spec struct {
	CategoryID *uint
	MinPrice   *float64
	MaxPrice   *float64
	SearchTerm string
	SortBy     string
	SortOrder  string
}

type predicate func(models.ProductWithCategory) bool

// Apply returns the products matching every filter in spec, ordered as spec
// asks. The input slice is never modified.
func Apply(products []models.ProductWithCategory, spec Spec) []models.ProductWithCategory {
	out := collection.Filter(products, all(spec.predicates()))
	return collection.SortStableBy(out, spec.less())
}

func all(preds []predicate) predicate {
	return func(p models.ProductWithCategory) bool {
		for _, keep := range preds {
			if !keep(p) {
				return false
			}
		}
		return true
	}
}

func (s Spec) predicates() []predicate {
	var preds []predicate

	if s.CategoryID != nil {
		id := *s.CategoryID
		preds = append(preds, func(p models.ProductWithCategory) bool {
			return p.CategoryID == id
		})
	}
	if s.MinPrice != nil {
		lo := cents(*s.MinPrice)
		preds = append(preds, func(p models.ProductWithCategory) bool {
			return cents(p.Price) >= lo
		})
	}
	if s.MaxPrice != nil {
		hi := cents(*s.MaxPrice)
		preds = append(preds, func(p models.ProductWithCategory) bool {
			return cents(p.Price) <= hi
		})
	}
	if s.SearchTerm != "" {
		term := strings.ToLower(s.SearchTerm)
		preds = append(preds, func(p models.ProductWithCategory) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term)
		})
	}
	return preds
}

// cents rounds a price to whole cents so 9.99 and 9.990000001 compare equal.
// Bounds are rounded too, so min_price=9.994 and max_price=9.991 both become
// 999 and still match a 9.99 product.
func cents(v float64) float64 {
	return math.Round(v * 100)
}

func (s Spec) less() func(a, b models.ProductWithCategory) bool {
	var cmp func(a, b models.ProductWithCategory) bool

	switch s.SortBy {
	case SortName:
		cmp = func(a, b models.ProductWithCategory) bool { return a.Name < b.Name }
	case SortPrice:
		// NaN is neither less nor greater than anything, so it ties.
		cmp = func(a, b models.ProductWithCategory) bool { return a.Price < b.Price }
	case SortCreatedAt:
		cmp = func(a, b models.ProductWithCategory) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b models.ProductWithCategory) bool { return a.ID < b.ID }
	}

	if s.SortOrder == OrderDesc {
		return func(a, b models.ProductWithCategory) bool { return cmp(b, a) }
	}
	return cmp
}
