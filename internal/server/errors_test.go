package server

import (
	"fmt"
	"net/http"
	"testing"

	authdomain "github.com/smallbiznis/landedcost/internal/auth/domain"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/pricing"
	productdomain "github.com/smallbiznis/landedcost/internal/product/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		typ    string
		field  string
	}{
		{err: pricing.ErrInvalidCost, status: http.StatusBadRequest, typ: "validation_error", field: "cost"},
		{err: pricing.ErrInvalidQuantity, status: http.StatusBadRequest, typ: "validation_error", field: "quantity"},
		{err: productdomain.ErrInvalidItem, status: http.StatusBadRequest, typ: "validation_error", field: "item"},
		{err: dutydomain.ErrInvalidLabel, status: http.StatusBadRequest, typ: "validation_error", field: "label"},
		{err: authdomain.ErrInvalidEmail, status: http.StatusBadRequest, typ: "validation_error", field: "email"},
		{err: authdomain.ErrInvalidCredentials, status: http.StatusUnauthorized, typ: "unauthorized"},
		{err: authdomain.ErrSessionExpired, status: http.StatusUnauthorized, typ: "unauthorized"},
		{err: authdomain.ErrSignUpDisabled, status: http.StatusForbidden, typ: "forbidden"},
		{err: authdomain.ErrUserExists, status: http.StatusConflict, typ: "conflict"},
		{err: productdomain.ErrInvalidOwner, status: http.StatusUnauthorized, typ: "unauthorized"},
		{err: fmt.Errorf("find product: %w", productdomain.ErrNotFound), status: http.StatusNotFound, typ: "not_found"},
		{err: ErrTooManyRequests, status: http.StatusTooManyRequests, typ: "rate_limited"},
		{err: fmt.Errorf("boom"), status: http.StatusInternalServerError, typ: "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
			if tc.field != "" && assert.Len(t, payload.Errors, 1) {
				assert.Equal(t, tc.field, payload.Errors[0].Field)
			}
		})
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(pricing.ErrInvalidExchangeRate)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "invalid_exchange_rate", code)

	typ, code = classifyErrorForLog(authdomain.ErrSessionRevoked)
	assert.Equal(t, "unauthorized", typ)
	assert.Equal(t, "unauthorized", code)
}
