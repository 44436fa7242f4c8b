package source

import (
	"testing"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogFromConfig(t *testing.T) {
	cfg := adapter.DefaultConfig()

	_, err := NewCatalogFromConfig(cfg, nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	cfg.OMDb.APIKey = "secret"
	cfg.OMDb.BaseURL = ""
	catalog, err := NewCatalogFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, catalog)

	_, err = NewCatalogFromConfig(nil, nil)
	assert.Error(t, err)
}
