package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/application/session"
	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/domain/store"
	"github.com/raceday/pro-upgrade/internal/interfaces/http/handlers"
	"github.com/raceday/pro-upgrade/tests/mocks"
)

var proLifetime = entity.Product{
	ID:           "app.raceday.pro.lifetime",
	DisplayName:  "RaceDay Pro",
	DisplayPrice: "$14.99",
}

// testAuth stands in for the JWT middleware.
func testAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newRouter(svc *mocks.MockStoreService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(func(string) store.Service { return svc }, nil, zap.NewNop())
	h := handlers.NewScreenHandler(sessions)

	router := gin.New()
	upgrade := router.Group("/v1/screen/upgrade", testAuth("u1"))
	upgrade.GET("", h.GetScreen)
	upgrade.POST("/purchase", h.Purchase)
	upgrade.POST("/restore", h.Restore)
	upgrade.POST("/reload", h.Reload)
	upgrade.POST("/alerts/:alert/dismiss", h.DismissAlert)
	return router
}

func newReadyStore() *mocks.MockStoreService {
	svc := mocks.NewMockStoreService()
	svc.On("LoadProducts", mock.Anything).Return(nil)
	svc.On("IsProUser").Return(false)
	svc.On("Products").Return([]entity.Product{proLifetime})
	svc.On("IsLoading").Return(false)
	svc.On("TransactionState").Return(nil)
	return svc
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestGetScreen(t *testing.T) {
	router := newRouter(newReadyStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/screen/upgrade", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, w)
	section := view["section"].(map[string]interface{})
	assert.Equal(t, "ready", section["kind"])
	assert.Equal(t, false, section["button_disabled"])
	hero := view["hero"].(map[string]interface{})
	assert.Equal(t, "Upgrade to RaceDay Pro", hero["headline"])
}

func TestPurchaseEndpoint(t *testing.T) {
	t.Run("successful purchase shows the success alert", func(t *testing.T) {
		svc := newReadyStore()
		svc.On("Purchase", mock.Anything, proLifetime).Return(entity.PurchaseResult{Outcome: entity.PurchaseSuccess}, nil)
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"product_id": proLifetime.ID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/purchase", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		alerts := view["alerts"].(map[string]interface{})
		assert.Equal(t, true, alerts["show_success"])
	})

	t.Run("unknown product id is a 404", func(t *testing.T) {
		router := newRouter(newReadyStore())

		body, _ := json.Marshal(map[string]string{"product_id": "app.raceday.pro.unknown"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/purchase", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing product id is a 400", func(t *testing.T) {
		router := newRouter(newReadyStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/purchase", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failed purchase surfaces the error alert", func(t *testing.T) {
		svc := newReadyStore()
		svc.On("Purchase", mock.Anything, proLifetime).Return(entity.PurchaseResult{Outcome: entity.PurchaseFailed}, nil)
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"product_id": proLifetime.ID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/purchase", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		alerts := view["alerts"].(map[string]interface{})
		assert.Equal(t, "Purchase failed", alerts["error"])
	})
}

func TestRestoreEndpoint(t *testing.T) {
	svc := newReadyStore()
	svc.On("RestorePurchases", mock.Anything).Return(nil)
	router := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/restore", nil)
	router.ServeHTTP(w, req)

	// IsProUser is mocked false: no alert, still a clean 200.
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, w)
	alerts := view["alerts"].(map[string]interface{})
	assert.Equal(t, false, alerts["show_restore"])
}

func TestDismissEndpoints(t *testing.T) {
	t.Run("success dismissal closes the screen", func(t *testing.T) {
		svc := newReadyStore()
		svc.On("Purchase", mock.Anything, proLifetime).Return(entity.PurchaseResult{Outcome: entity.PurchaseSuccess}, nil)
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"product_id": proLifetime.ID})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/purchase", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/alerts/success/dismiss", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("error dismissal is idempotent", func(t *testing.T) {
		router := newRouter(newReadyStore())

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/alerts/error/dismiss", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			view := decodeView(t, w)
			alerts := view["alerts"].(map[string]interface{})
			assert.Nil(t, alerts["error"])
		}
	})

	t.Run("unknown alert is a 400", func(t *testing.T) {
		router := newRouter(newReadyStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/screen/upgrade/alerts/bogus/dismiss", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
