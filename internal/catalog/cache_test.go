package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sorplus/public-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	categories []models.Category
	err        error
	calls      int
}

func (f *fakeSource) Categories(ctx context.Context) ([]models.Category, error) {
	f.calls++
	return f.categories, f.err
}

func boolPtr(b bool) *bool { return &b }

func TestCacheFillsOnFirstRead(t *testing.T) {
	source := &fakeSource{categories: []models.Category{
		{ID: "1", Name: "Kargo"},
		{ID: "2", Name: "Telekom", IsActive: boolPtr(false)},
		{ID: "3", Name: "E-Ticaret", IsActive: boolPtr(true)},
	}}
	cache := NewCache(source)

	options := cache.Options(context.Background())
	require.Len(t, options, 2) // inactive category filtered out
	assert.Equal(t, "Kargo", options[0].Name)
	assert.Equal(t, "E-Ticaret", options[1].Name)

	cache.Options(context.Background())
	assert.Equal(t, 1, source.calls) // warm cache, no second fetch
}

func TestCacheColdFailureDegradesToEmpty(t *testing.T) {
	source := &fakeSource{err: errors.New("backend down")}
	cache := NewCache(source)

	assert.Empty(t, cache.Options(context.Background()))
	assert.True(t, cache.RefreshedAt().IsZero())
}

func TestRefreshReplacesOptions(t *testing.T) {
	source := &fakeSource{categories: []models.Category{{ID: "1", Name: "Kargo"}}}
	cache := NewCache(source)
	require.NoError(t, cache.Refresh(context.Background()))

	source.categories = []models.Category{{ID: "9", Name: "Bankacılık"}}
	require.NoError(t, cache.Refresh(context.Background()))

	options := cache.Options(context.Background())
	require.Len(t, options, 1)
	assert.Equal(t, "Bankacılık", options[0].Name)
	assert.False(t, cache.RefreshedAt().IsZero())
}

func TestRefreshFailureKeepsPreviousOptions(t *testing.T) {
	source := &fakeSource{categories: []models.Category{{ID: "1", Name: "Kargo"}}}
	cache := NewCache(source)
	require.NoError(t, cache.Refresh(context.Background()))

	source.err = errors.New("backend down")
	assert.Error(t, cache.Refresh(context.Background()))

	options := cache.Options(context.Background())
	require.Len(t, options, 1)
	assert.Equal(t, "Kargo", options[0].Name)
}
