package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the catalog data access used by the storefront.
type ProductRepository interface {
	FindPage(ctx context.Context, spec models.ProductFilterSpec) ([]models.Product, int64, error)
	FindRecentActive(ctx context.Context, limit int) ([]models.Product, error)
	Upsert(ctx context.Context, product *models.Product) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// snapshotRead makes count and page observe the same committed state.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// FindPage returns the requested page of active products matching spec along
// with the total number of matches. The row query is skipped when the page
// starts past the end of the result set.
func (r *GormProductRepository) FindPage(ctx context.Context, spec models.ProductFilterSpec) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Scopes(matching(spec)).
			Count(&total).Error; err != nil {
			return err
		}

		offset := spec.Offset()
		if int64(offset) >= total {
			return nil
		}

		return tx.Scopes(matching(spec), ordered(spec.Sort)).
			Offset(offset).
			Limit(spec.PageSize).
			Find(&products).Error
	}, snapshotRead)
	if err != nil {
		return nil, 0, err
	}

	if products == nil {
		products = []models.Product{}
	}
	return products, total, nil
}

// FindRecentActive returns up to limit active products, newest first.
func (r *GormProductRepository) FindRecentActive(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where(column("status")+" = ?", models.ProductStatusActive).
		Scopes(ordered(models.SortNewest)).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Upsert inserts a product or updates the existing row with the same slug.
func (r *GormProductRepository) Upsert(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: column("slug")}},
			DoUpdates: clause.AssignmentColumns([]string{
				column("title"), column("description"), column("price"), column("currency"),
				column("images"), column("stock"), column("status"), column("type"),
				column("region"), column("sizes"), column("colors"), column("updatedAt"),
			}),
		}).
		Create(product).Error
}

// matching applies the catalog predicate. Only active rows are ever visible.
func matching(spec models.ProductFilterSpec) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(column("status")+" = ?", models.ProductStatusActive)

		if spec.Text != nil {
			pattern := "%" + escapeLike(*spec.Text) + "%"
			db = db.Where("("+column("title")+" ILIKE ? OR "+column("description")+" ILIKE ?)", pattern, pattern)
		}
		if spec.PriceMin != nil {
			db = db.Where(column("price")+" >= ?", *spec.PriceMin)
		}
		if spec.PriceMax != nil {
			db = db.Where(column("price")+" <= ?", *spec.PriceMax)
		}
		if spec.InStockOnly {
			db = db.Where(column("stock") + " > 0")
		}
		if spec.ProductType != nil {
			db = db.Where(column("type")+" = ?", *spec.ProductType)
		}
		if spec.Region != nil {
			db = db.Where(column("region")+" = ?", *spec.Region)
		}
		if len(spec.Sizes) > 0 {
			db = db.Where(column("sizes")+" && ?", pq.Array(spec.Sizes))
		}
		if len(spec.Colors) > 0 {
			db = db.Where(column("colors")+" && ?", pq.Array(spec.Colors))
		}
		return db
	}
}

// ordered applies the sort with an id tie-break so equal keys page stably.
func ordered(sort models.SortOrder) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case models.SortPriceAsc:
			return db.Order(column("price") + " ASC").Order(column("id") + " ASC")
		case models.SortPriceDesc:
			return db.Order(column("price") + " DESC").Order(column("id") + " ASC")
		default:
			return db.Order(column("createdAt") + " DESC").Order(column("id") + " DESC")
		}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
