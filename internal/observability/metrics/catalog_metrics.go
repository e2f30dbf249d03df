package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CallSitePreview = "preview"
	CallSiteSave    = "save"
	CallSiteRender  = "render"
)

// CatalogMetrics tracks pricing engine usage and catalog writes.
type CatalogMetrics struct {
	computations  *prometheus.CounterVec
	productWrites *prometheus.CounterVec
	vatFlagDrift  prometheus.Counter
	cacheLookups  *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog collectors on registerer.
func NewCatalogMetrics(cfg Config, registerer prometheus.Registerer) *CatalogMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "landedcost"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &CatalogMetrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "landedcost_pricing_computations_total",
			Help:        "Pricing engine evaluations by call site and threshold outcome.",
			ConstLabels: constLabels,
		}, []string{"call_site", "vat_applies"}),
		productWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "landedcost_product_writes_total",
			Help:        "Catalog product writes by operation.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		vatFlagDrift: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "landedcost_vat_flag_drift_total",
			Help:        "Saved products whose stored VAT flag disagrees with their declared value.",
			ConstLabels: constLabels,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "landedcost_duty_category_cache_lookups_total",
			Help:        "Duty category cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	registerer.MustRegister(m.computations, m.productWrites, m.vatFlagDrift, m.cacheLookups)
	return m
}

// IncComputation counts one engine evaluation.
func (m *CatalogMetrics) IncComputation(callSite string, vatApplies bool) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(callSite, strconv.FormatBool(vatApplies)).Inc()
}

func (m *CatalogMetrics) IncProductWrite(operation string) {
	if m == nil {
		return
	}
	m.productWrites.WithLabelValues(operation).Inc()
}

func (m *CatalogMetrics) IncVATFlagDrift() {
	if m == nil {
		return
	}
	m.vatFlagDrift.Inc()
}

// IncCacheLookup records a hit or a miss.
func (m *CatalogMetrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
