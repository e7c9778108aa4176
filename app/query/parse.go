package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ParseError lists the query parameters that could not be parsed, keyed by
// parameter name.
type ParseError struct {
	Fields map[string]string
}

func (e *ParseError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("query: invalid parameters: %s", strings.Join(keys, ", "))
}

// Parse reads category_id, min_price, max_price, search_term, sort_by and
// sort_order. Absent or empty parameters are left unset.
func Parse(values url.Values) (Spec, error) {
	spec := Spec{
		SearchTerm: values.Get("search_term"),
		SortBy:     values.Get("sort_by"),
		SortOrder:  values.Get("sort_order"),
	}
	fields := map[string]string{}

	if raw := strings.TrimSpace(values.Get("category_id")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fields["category_id"] = "The category_id must be a positive integer."
		} else {
			id := uint(n)
			spec.CategoryID = &id
		}
	}

	spec.MinPrice = parsePrice(values, "min_price", fields)
	spec.MaxPrice = parsePrice(values, "max_price", fields)

	if len(fields) > 0 {
		return Spec{}, &ParseError{Fields: fields}
	}
	return spec, nil
}

func parsePrice(values url.Values, key string, fields map[string]string) *float64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[key] = fmt.Sprintf("The %s must be a number.", key)
		return nil
	}
	return &v
}
