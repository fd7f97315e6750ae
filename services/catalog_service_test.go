package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListProducts_LastPage(t *testing.T) {
	svc := services.NewCatalogService(seedProducts(25), zap.NewNop())

	spec := services.CompileFilter(map[string]string{"page": "3", "limit": "12"})
	result, err := svc.ListProducts(context.Background(), spec)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 12, result.PageSize)
}

func TestListProducts_PastEndIsEmpty(t *testing.T) {
	svc := services.NewCatalogService(seedProducts(5), zap.NewNop())

	spec := services.CompileFilter(map[string]string{"page": "9"})
	result, err := svc.ListProducts(context.Background(), spec)
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}

func TestListProducts_HugePageIsEmpty(t *testing.T) {
	repo := seedProducts(5)
	repo.overReturn = true
	svc := services.NewCatalogService(repo, zap.NewNop())

	spec := services.CompileFilter(map[string]string{"page": "99999999999999999999"})
	result, err := svc.ListProducts(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(5), result.Total)
}

func TestListProducts_OnlyActive(t *testing.T) {
	repo := seedProducts(3)
	repo.products[1].Status = models.ProductStatusDraft
	svc := services.NewCatalogService(repo, zap.NewNop())

	result, err := svc.ListProducts(context.Background(), models.DefaultFilterSpec())
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}

func TestListProducts_StoreUnavailable(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("connection refused")}
	svc := services.NewCatalogService(repo, zap.NewNop())

	result, err := svc.ListProducts(context.Background(), models.DefaultFilterSpec())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)
}

func TestListProducts_PaginationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("page length matches min(pageSize, total-offset)", prop.ForAll(
		func(n, page, pageSize int) bool {
			svc := services.NewCatalogService(seedProducts(n), zap.NewNop())
			spec := models.DefaultFilterSpec()
			spec.Page = page
			spec.PageSize = pageSize

			result, err := svc.ListProducts(context.Background(), spec)
			if err != nil {
				return false
			}
			want := pageSize
			if remaining := n - (page-1)*pageSize; remaining < want {
				want = max(0, remaining)
			}
			wantPages := (n + pageSize - 1) / pageSize
			return len(result.Items) == want &&
				result.Total == int64(n) &&
				result.TotalPages == wantPages
		},
		gen.IntRange(0, 120),
		gen.IntRange(1, 15),
		gen.IntRange(1, models.MaxPageSize),
	))

	properties.TestingRun(t)
}
