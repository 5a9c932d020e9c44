package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwshop/backend/internal/interfaces/http/dto"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error {
	return p.err
}

func newSystemEngine(db Pinger) *gin.Engine {
	r := gin.New()
	h := NewSystemHandler(db, "1.0.0")
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestSystemHandler(t *testing.T) {
	t.Run("health reports liveness regardless of the database", func(t *testing.T) {
		r := newSystemEngine(&stubPinger{err: errors.New("down")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
	})

	t.Run("ready answers 200 when the database responds", func(t *testing.T) {
		r := newSystemEngine(&stubPinger{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ready answers 503 when the database is unreachable", func(t *testing.T) {
		r := newSystemEngine(&stubPinger{err: errors.New("connection refused")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.OK)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NOT_READY", resp.Error.Code)
	})
}

func TestMutationHandler_InvalidIdentifiers(t *testing.T) {
	newEngine := func() *gin.Engine {
		r := gin.New()
		h := NewMutationHandler(nil, nil)
		h.RegisterRoutes(r.Group("/api/v1"))
		return r
	}

	t.Run("malformed warehouse ID answers 400", func(t *testing.T) {
		r := newEngine()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/v1/warehouses/not-a-uuid/products/"+uuid.NewString()+"/stock", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.OK)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("malformed product ID answers 400", func(t *testing.T) {
		r := newEngine()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/42/stock", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_InvalidIdentifiers(t *testing.T) {
	t.Run("malformed order ID answers 400", func(t *testing.T) {
		r := gin.New()
		h := NewOrderHandler(nil)
		h.RegisterRoutes(r.Group("/api/v1"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders/42/confirm-payment", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}
