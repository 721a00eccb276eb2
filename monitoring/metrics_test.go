package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareLabelsStatusAsNumber(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/games/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/games/:id", "404"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/12", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(HttpRequestsTotal.WithLabelValues("GET", "/games/:id", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(ActiveRequests))
}

func TestRecordPurchase(t *testing.T) {
	completed := testutil.ToFloat64(PurchasesTotal.WithLabelValues("game", "completed"))
	rejected := testutil.ToFloat64(PurchasesTotal.WithLabelValues("game", "insufficient_funds"))
	revenue := testutil.ToFloat64(RevenueTotal.WithLabelValues("game"))

	RecordPurchase("game", "completed", decimal.RequireFromString("59.5"))
	RecordPurchase("game", "insufficient_funds", decimal.RequireFromString("100"))

	assert.Equal(t, completed+1, testutil.ToFloat64(PurchasesTotal.WithLabelValues("game", "completed")))
	assert.Equal(t, rejected+1, testutil.ToFloat64(PurchasesTotal.WithLabelValues("game", "insufficient_funds")))
	assert.InDelta(t, revenue+59.5, testutil.ToFloat64(RevenueTotal.WithLabelValues("game")), 1e-9)
}

func TestRecordLogin(t *testing.T) {
	ok := testutil.ToFloat64(AuthenticationAttempts.WithLabelValues("success"))
	bad := testutil.ToFloat64(AuthenticationAttempts.WithLabelValues("failure"))

	RecordLogin(true)
	RecordLogin(false)
	RecordLogin(false)

	assert.Equal(t, ok+1, testutil.ToFloat64(AuthenticationAttempts.WithLabelValues("success")))
	assert.Equal(t, bad+2, testutil.ToFloat64(AuthenticationAttempts.WithLabelValues("failure")))
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Error(t, Register(reg))
}
