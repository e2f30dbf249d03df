package tracing

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
)

var allowedSpanKeys = map[attribute.Key]struct{}{
	"http.method":             {},
	"http.route":              {},
	"http.status_code":        {},
	"http.server_duration_ms": {},
	"request_id":              {},
	"pricing.call_site":       {},
	"pricing.vat_applies":     {},
}

// SafeAttributes keeps only attributes that cannot carry user-entered values.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedSpanKeys[attr.Key]; ok {
			out = append(out, attr)
		}
	}
	return out
}

// SafeError replaces the error message with a generic one so request payloads
// do not leak into span events.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New("request failed")
}
