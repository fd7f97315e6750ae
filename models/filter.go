package models

import (
	"math"
	"strconv"
	"strings"
)

// SortOrder is the closed set of catalog orderings.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// Pagination bounds for the public catalog.
const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// ProductFilterSpec is the validated form of a catalog query. Every field is
// either absent (nil / empty) or already normalized.
type ProductFilterSpec struct {
	Text        *string
	PriceMin    *float64
	PriceMax    *float64
	InStockOnly bool
	ProductType *string
	Region      *string
	Sizes       []string
	Colors      []string
	Sort        SortOrder
	Page        int
	PageSize    int
}

// DefaultFilterSpec is the spec produced for an empty query.
func DefaultFilterSpec() ProductFilterSpec {
	return ProductFilterSpec{
		Sort:     SortNewest,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Offset is the number of matching rows that precede the requested page. It
// saturates instead of overflowing for absurd page numbers.
func (s ProductFilterSpec) Offset() int {
	if s.Page <= 1 || s.PageSize <= 0 {
		return 0
	}
	if s.Page-1 > math.MaxInt/s.PageSize {
		return math.MaxInt
	}
	return (s.Page - 1) * s.PageSize
}

// CacheKey renders the spec in a canonical order so equal specs share a key.
func (s ProductFilterSpec) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(optString(s.Text))
	b.WriteString("|min=")
	b.WriteString(optFloat(s.PriceMin))
	b.WriteString("|max=")
	b.WriteString(optFloat(s.PriceMax))
	b.WriteString("|stock=")
	b.WriteString(strconv.FormatBool(s.InStockOnly))
	b.WriteString("|type=")
	b.WriteString(optString(s.ProductType))
	b.WriteString("|region=")
	b.WriteString(optString(s.Region))
	b.WriteString("|sizes=")
	b.WriteString(strings.Join(s.Sizes, ","))
	b.WriteString("|colors=")
	b.WriteString(strings.Join(s.Colors, ","))
	b.WriteString("|sort=")
	b.WriteString(string(s.Sort))
	b.WriteString("|p=")
	b.WriteString(strconv.Itoa(s.Page))
	b.WriteString("|l=")
	b.WriteString(strconv.Itoa(s.PageSize))
	return b.String()
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return strconv.Quote(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
