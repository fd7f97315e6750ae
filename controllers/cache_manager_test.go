package controllers

import (
	"context"
	"strings"
	"testing"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCatalogPageKey_Versioned(t *testing.T) {
	spec := models.DefaultFilterSpec()

	v1 := CatalogPageKey(1, spec)
	v2 := CatalogPageKey(2, spec)
	assert.True(t, strings.HasPrefix(v1, "catalog:v:1:"))
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, v1, CatalogPageKey(1, models.DefaultFilterSpec()))

	spec.Page = 2
	assert.NotEqual(t, v1, CatalogPageKey(1, spec))
}

func TestCacheManager_NilClientDisabled(t *testing.T) {
	cm := NewCacheManager(nil, 0, nil, zap.NewNop())
	assert.False(t, cm.Enabled())

	page, ok := cm.GetCatalogPage(context.Background(), models.DefaultFilterSpec())
	assert.Nil(t, page)
	assert.False(t, ok)
	assert.NoError(t, cm.Invalidate(context.Background()))
	cm.SetCatalogPageAsync(models.DefaultFilterSpec(), CatalogPage{})

	var nilManager *CacheManager
	assert.False(t, nilManager.Enabled())
}

func TestCacheManager_UnreachableRedis(t *testing.T) {
	cm := NewCacheManager(newTestRedisClient(), 0, nil, zap.NewNop())
	assert.True(t, cm.Enabled())

	_, ok := cm.GetCatalogPage(context.Background(), models.DefaultFilterSpec())
	assert.False(t, ok)
	assert.Error(t, cm.Invalidate(context.Background()))
}
