package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCatalogSettingsMissingFileUsesDefaults(t *testing.T) {
	holder, err := LoadCatalogSettings(filepath.Join(t.TempDir(), "missing.yml"), zap.NewNop())
	require.NoError(t, err)

	settings := holder.Get()
	assert.Equal(t, "BBD", settings.LocalCurrency)
	assert.Equal(t, 2.00, settings.DefaultExchangeRate)
	assert.Empty(t, settings.DutyPresets)
}

func TestLoadCatalogSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	content := []byte(`catalog:
  localCurrency: JMD
  defaultExchangeRate: 155.5
  dutyPresets:
    - label: Electronics
      rate: 20
    - label: Books
      rate: 0
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	holder, err := LoadCatalogSettings(path, zap.NewNop())
	require.NoError(t, err)

	settings := holder.Get()
	assert.Equal(t, "JMD", settings.LocalCurrency)
	assert.Equal(t, 155.5, settings.DefaultExchangeRate)
	require.Len(t, settings.DutyPresets, 2)
	assert.Equal(t, DutyPreset{Label: "Electronics", Rate: 20}, settings.DutyPresets[0])
	assert.Equal(t, DutyPreset{Label: "Books", Rate: 0}, settings.DutyPresets[1])
}

func TestLoadCatalogSettingsRejectsInvalidRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	content := []byte(`catalog:
  defaultExchangeRate: -1
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	_, err := LoadCatalogSettings(path, zap.NewNop())
	require.Error(t, err)
}

func TestNilHolderReturnsDefaults(t *testing.T) {
	var holder *CatalogSettingsHolder
	assert.Equal(t, DefaultCatalogSettings(), holder.Get())
}
