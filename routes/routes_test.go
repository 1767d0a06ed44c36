package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pasarin/ratelim"

	"github.com/julienschmidt/httprouter"
)

func TestShippingEstimateRequiresAuth(t *testing.T) {
	router := httprouter.New()
	AddShippingRoutes(router, ratelim.NewRateLimiter())

	req := httptest.NewRequest(http.MethodPost, "/api/shipping/estimate",
		strings.NewReader(`{"items":[{"weight":1,"quantity":1}]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}
