package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/handlers"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(counter handlers.PageCounter) *chi.Mux {
	apierror.Install()

	router := chi.NewMux()
	config := huma.DefaultConfig("Test", "1.0.0")
	config.CreateHooks = nil
	api := humachi.New(router, config)

	handlers.RegisterRoutes(api, handlers.NewBooksHandler(
		counter, messaging.Discard[events.PageCountComputed](), zap.NewNop(),
	))

	return router
}

func serve(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestRegisterRoutes(t *testing.T) {
	t.Run("root answers 201", func(t *testing.T) {
		rec, body := serve(t, newRouter(&mockPageCounter{}), "/")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, map[string]any{"message": "Ok", "success": true}, body)
	})

	t.Run("page count answers 200 with an integer total", func(t *testing.T) {
		counter := &mockPageCounter{result: &pages.Result{Total: 4213, Source: pages.SourceCache}}
		rec, body := serve(t, newRouter(counter), "/books/page-count")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"message": handlers.MessageFromCache,
			"success": true,
			"total":   float64(4213),
		}, body)
		assert.Contains(t, rec.Body.String(), `"total":4213`)
	})

	t.Run("page count failure answers 500", func(t *testing.T) {
		counter := &mockPageCounter{err: errors.New("redis get \"total-pages\": connection refused")}
		rec, body := serve(t, newRouter(counter), "/books/page-count")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apierror.MessageInternal, body["message"])
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "connection refused")
	})
}
