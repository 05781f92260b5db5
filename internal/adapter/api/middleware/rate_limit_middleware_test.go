package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"lokapasar/internal/adapter/api/middleware"
)

func doRequest(e *echo.Echo, mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)

	return rec
}

func TestRateLimiterBlocksAfterBudgetExhausted(t *testing.T) {
	e := echo.New()
	mw := middleware.NewRateLimiter(2, time.Minute).Middleware()

	assert.Equal(t, http.StatusOK, doRequest(e, mw, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doRequest(e, mw, "10.0.0.1").Code)

	rec := doRequest(e, mw, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "retry_after")
}

func TestRateLimiterInstancesAreIndependent(t *testing.T) {
	e := echo.New()
	strict := middleware.NewRateLimiter(1, time.Minute).Middleware()
	loose := middleware.NewRateLimiter(10, time.Minute).Middleware()

	assert.Equal(t, http.StatusOK, doRequest(e, strict, "10.0.0.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, strict, "10.0.0.2").Code)

	// The same client is still within budget on a separately constructed limiter.
	assert.Equal(t, http.StatusOK, doRequest(e, loose, "10.0.0.2").Code)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	e := echo.New()
	mw := middleware.NewRateLimiter(1, time.Minute).Middleware()

	assert.Equal(t, http.StatusOK, doRequest(e, mw, "10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, mw, "10.0.0.3").Code)
	assert.Equal(t, http.StatusOK, doRequest(e, mw, "10.0.0.4").Code)
}
