package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsUserValues(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/products/:id"),
		attribute.String("product.item", "Bluetooth speaker"),
		attribute.Int("http.status_code", 200),
	)

	assert.Len(t, attrs, 2)
	for _, attr := range attrs {
		assert.NotEqual(t, attribute.Key("product.item"), attr.Key)
	}
}

func TestSafeErrorHidesMessage(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	err := SafeError(errors.New("duplicate key value violates unique constraint duty_categories_code_key"))
	assert.EqualError(t, err, "request failed")
}
