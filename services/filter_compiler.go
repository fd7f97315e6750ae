package services

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/akjilan/digital-ecommerce/models"
)

// CompileFilter turns raw catalog query parameters into a ProductFilterSpec.
// It never fails: every malformed or out-of-range field falls back to its
// default so sloppy public clients still get a page.
func CompileFilter(raw map[string]string) models.ProductFilterSpec {
	spec := models.DefaultFilterSpec()

	if page, ok := parseInt(raw["page"]); ok && page >= 1 {
		spec.Page = page
	}

	limit, present := raw["limit"]
	if !present {
		limit = raw["pageSize"]
	}
	if size, ok := parseInt(limit); ok {
		spec.PageSize = clamp(size, 1, models.MaxPageSize)
	}

	spec.PriceMin = parsePrice(raw["minPrice"])
	spec.PriceMax = parsePrice(raw["maxPrice"])
	if spec.PriceMin != nil && spec.PriceMax != nil && *spec.PriceMin > *spec.PriceMax {
		spec.PriceMin, spec.PriceMax = nil, nil
	}

	spec.InStockOnly = raw["inStock"] == "true"
	spec.Text = optionalText(raw["q"])
	spec.ProductType = optionalText(raw["type"])
	spec.Region = optionalText(raw["region"])
	spec.Sizes = splitList(raw["sizes"])
	spec.Colors = splitList(raw["colors"])
	spec.Sort = parseSort(raw["sort"])

	return spec
}

// CompileFilterFromQuery compiles a URL query, taking the first value of each key.
func CompileFilterFromQuery(values url.Values) models.ProductFilterSpec {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return CompileFilter(raw)
}

// parseInt accepts out-of-range integers as the nearest representable
// value, so callers clamp them like any other large number.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// splitList splits a comma list, dropping blanks and repeats while keeping
// first-seen order.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func parseSort(s string) models.SortOrder {
	switch models.SortOrder(s) {
	case models.SortPriceAsc:
		return models.SortPriceAsc
	case models.SortPriceDesc:
		return models.SortPriceDesc
	default:
		return models.SortNewest
	}
}
