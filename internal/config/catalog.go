package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultLocalCurrency       = "BBD"
	DefaultFormExchangeRate    = 2.00
	catalogSettingsKey         = "catalog"
	catalogSettingsEnvPrefix   = "LANDEDCOST"
	catalogSettingsDefaultName = "catalog"
)

// CatalogSettings are presentation and bootstrap settings that can change
// without a restart. Pricing constants are not part of it.
type CatalogSettings struct {
	LocalCurrency       string       `mapstructure:"localCurrency"`
	DefaultExchangeRate float64      `mapstructure:"defaultExchangeRate"`
	DutyPresets         []DutyPreset `mapstructure:"dutyPresets"`
}

type DutyPreset struct {
	Label string  `mapstructure:"label"`
	Rate  float64 `mapstructure:"rate"`
}

func DefaultCatalogSettings() CatalogSettings {
	return CatalogSettings{
		LocalCurrency:       DefaultLocalCurrency,
		DefaultExchangeRate: DefaultFormExchangeRate,
	}
}

type CatalogSettingsHolder struct {
	current atomic.Value // holds CatalogSettings
}

// NewStaticCatalogSettings returns a holder that never reloads.
func NewStaticCatalogSettings(settings CatalogSettings) *CatalogSettingsHolder {
	holder := &CatalogSettingsHolder{}
	holder.current.Store(settings)
	return holder
}

func NewCatalogSettingsHolder(cfg Config, log *zap.Logger) (*CatalogSettingsHolder, error) {
	return LoadCatalogSettings(cfg.CatalogConfigPath, log)
}

// LoadCatalogSettings reads the settings file at path and watches it for changes.
// A missing file falls back to the defaults.
func LoadCatalogSettings(path string, log *zap.Logger) (*CatalogSettingsHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.catalog")

	v := viper.New()
	path = strings.TrimSpace(path)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(catalogSettingsDefaultName)
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/landedcost")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(catalogSettingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogSettings()
	v.SetDefault(catalogSettingsKey+".localCurrency", defaults.LocalCurrency)
	v.SetDefault(catalogSettingsKey+".defaultExchangeRate", defaults.DefaultExchangeRate)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, fmt.Errorf("read catalog settings: %w", err)
		}
		log.Info("catalog settings file not found, using defaults", zap.String("path", path))
		watch = false
	}

	var settings CatalogSettings
	if err := v.UnmarshalKey(catalogSettingsKey, &settings); err != nil {
		return nil, err
	}
	if err := validateCatalogSettings(settings); err != nil {
		return nil, err
	}

	holder := NewStaticCatalogSettings(settings)
	if !watch {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogSettings
		if err := v.UnmarshalKey(catalogSettingsKey, &updated); err != nil {
			log.Warn("catalog settings reload failed", zap.Error(err))
			return
		}
		if err := validateCatalogSettings(updated); err != nil {
			log.Warn("invalid catalog settings ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("catalog settings reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *CatalogSettingsHolder) Get() CatalogSettings {
	if h == nil {
		return DefaultCatalogSettings()
	}
	return h.current.Load().(CatalogSettings)
}

func validateCatalogSettings(s CatalogSettings) error {
	if strings.TrimSpace(s.LocalCurrency) == "" {
		return errors.New("catalog.localCurrency cannot be empty")
	}
	if s.DefaultExchangeRate <= 0 || math.IsNaN(s.DefaultExchangeRate) || math.IsInf(s.DefaultExchangeRate, 0) {
		return errors.New("catalog.defaultExchangeRate must be positive")
	}
	for _, preset := range s.DutyPresets {
		if strings.TrimSpace(preset.Label) == "" {
			return errors.New("catalog.dutyPresets label cannot be empty")
		}
		if preset.Rate < 0 {
			return fmt.Errorf("catalog.dutyPresets %q rate cannot be negative", preset.Label)
		}
	}
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
