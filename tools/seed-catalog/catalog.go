package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/lib/pq"
)

// seedProduct is the JSON shape accepted by -file.
type seedProduct struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Type        string   `json:"type"`
	Region      string   `json:"region"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
}

func (s seedProduct) toModel() models.Product {
	currency := s.Currency
	if currency == "" {
		currency = "USD"
	}
	status := models.ProductStatus(s.Status)
	if status == "" {
		status = models.ProductStatusActive
	}
	return models.Product{
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Price:       s.Price,
		Currency:    currency,
		Stock:       s.Stock,
		Status:      status,
		Type:        s.Type,
		Region:      s.Region,
		Images:      pq.StringArray(s.Images),
		Sizes:       pq.StringArray(s.Sizes),
		Colors:      pq.StringArray(s.Colors),
	}
}

var demoCatalog = []seedProduct{
	{Title: "Desk Mat XL", Slug: "desk-mat-xl", Description: "900 x 400 mm stitched desk mat with non-slip rubber base, 12 colour options.", Price: 24.99, Stock: 400, Type: "physical", Images: []string{"https://picsum.photos/seed/mat/800/600"}, Colors: []string{"black", "grey", "navy"}},
	{Title: "Linen Shirt", Slug: "linen-shirt", Description: "Breathable relaxed-fit linen shirt.", Price: 49, Stock: 35, Type: "physical", Region: "EU", Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"white", "sand"}},
	{Title: "Merino Beanie", Slug: "merino-beanie", Description: "Soft ribbed beanie in 100% merino wool.", Price: 22, Stock: 0, Type: "physical", Sizes: []string{"One Size"}, Colors: []string{"charcoal", "forest"}},
	{Title: "Ceramic Mug", Slug: "ceramic-mug", Description: "350 ml stoneware mug, dishwasher safe.", Price: 8, Stock: 120, Type: "physical", Colors: []string{"white", "blue"}},
	{Title: "Canvas Tote", Slug: "canvas-tote", Description: "Heavy cotton canvas tote with inner pocket.", Price: 18.5, Stock: 60, Type: "physical", Colors: []string{"natural", "black"}},
	{Title: "Style Guide eBook", Slug: "style-guide-ebook", Description: "A 60-page PDF on building a capsule wardrobe.", Price: 9.5, Stock: 9999, Type: "digital"},
	{Title: "Photo Presets Pack", Slug: "photo-presets-pack", Description: "20 Lightroom presets for warm, film-like tones.", Price: 15, Stock: 9999, Type: "digital"},
	{Title: "Running Socks (3 pack)", Slug: "running-socks-3-pack", Description: "Cushioned running socks with arch support.", Price: 14, Stock: 80, Type: "physical", Region: "US", Sizes: []string{"S", "M", "L"}, Colors: []string{"white", "black"}},
}

// loadCatalog reads products from path, or returns the demo catalog when
// path is empty.
func loadCatalog(path string) ([]models.Product, error) {
	entries := demoCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		entries = nil
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	seen := make(map[string]bool, len(entries))
	products := make([]models.Product, 0, len(entries))
	for i, e := range entries {
		if e.Title == "" || e.Slug == "" {
			return nil, fmt.Errorf("entry %d: title and slug are required", i)
		}
		if seen[e.Slug] {
			return nil, fmt.Errorf("entry %d: duplicate slug %q", i, e.Slug)
		}
		seen[e.Slug] = true
		products = append(products, e.toModel())
	}
	return products, nil
}
