package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductStatus is the publication state of a catalog row.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// ProductType distinguishes shippable goods from downloads.
type ProductType string

const (
	ProductTypePhysical ProductType = "physical"
	ProductTypeDigital  ProductType = "digital"
)

// DefaultCurrency is used when a product row carries no currency.
const DefaultCurrency = "USD"

// Product is a catalog row stored in Postgres.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     *string        `gorm:"column:user_id;type:varchar(64);index" json:"ownerId,omitempty"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text;not null;default:''" json:"description"`
	Price       float64        `gorm:"type:numeric(12,2);not null;index" json:"price"`
	Currency    string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Status      ProductStatus  `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	Type        string         `gorm:"type:varchar(16)" json:"type,omitempty"`
	Region      string         `gorm:"type:varchar(32)" json:"region,omitempty"`
	Sizes       pq.StringArray `gorm:"type:text[]" json:"sizes"`
	Colors      pq.StringArray `gorm:"type:text[]" json:"colors"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProductSummary is the read projection handed to clients and to the assistant.
type ProductSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	Description string    `json:"description"`
	Type        string    `json:"type,omitempty"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
}

// Summary projects a catalog row. Slices are copied so the summary does not
// alias the row it was read from.
func (p *Product) Summary() ProductSummary {
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	stock := p.Stock
	if stock < 0 {
		stock = 0
	}
	return ProductSummary{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Currency:    currency,
		Stock:       stock,
		Description: p.Description,
		Type:        p.Type,
		Sizes:       append([]string{}, p.Sizes...),
		Colors:      append([]string{}, p.Colors...),
	}
}

// Summaries projects a slice of rows, preserving order.
func Summaries(products []Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for i := range products {
		out = append(out, products[i].Summary())
	}
	return out
}
