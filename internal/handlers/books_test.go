package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/handlers"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/pages"
	"github.com/serroba/book-pages-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPageCounter struct {
	result *pages.Result
	err    error
}

func (m *mockPageCounter) Total(_ context.Context) (*pages.Result, error) {
	return m.result, m.err
}

type computedRecorder struct {
	events []*events.PageCountComputed
	err    error
}

func (r *computedRecorder) publish() messaging.Publish[events.PageCountComputed] {
	return func(_ context.Context, event *events.PageCountComputed) error {
		r.events = append(r.events, event)

		return r.err
	}
}

func TestBooksHandler_PageCount(t *testing.T) {
	apierror.Install()

	t.Run("cache hit", func(t *testing.T) {
		recorder := &computedRecorder{}
		counter := &mockPageCounter{result: &pages.Result{Total: 1200, Source: pages.SourceCache}}
		handler := handlers.NewBooksHandler(counter, recorder.publish(), zap.NewNop())

		resp, err := handler.PageCount(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, handlers.MessageFromCache, resp.Body.Message)
		assert.True(t, resp.Body.Success)
		assert.Equal(t, int64(1200), resp.Body.Total)
		assert.Empty(t, recorder.events, "cache hits publish nothing")
	})

	t.Run("cache miss publishes the computed total", func(t *testing.T) {
		recorder := &computedRecorder{}
		counter := &mockPageCounter{result: &pages.Result{Total: 870, Source: pages.SourceUpstream}}
		handler := handlers.NewBooksHandler(counter, recorder.publish(), zap.NewNop())

		ctx := session.WithID(context.Background(), "session-a")
		resp, err := handler.PageCount(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, handlers.MessageFromUpstream, resp.Body.Message)
		assert.Equal(t, int64(870), resp.Body.Total)

		require.Len(t, recorder.events, 1)
		assert.Equal(t, int64(870), recorder.events[0].Total)
		assert.Equal(t, "session-a", recorder.events[0].SessionID)
		assert.False(t, recorder.events[0].ComputedAt.IsZero())
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		recorder := &computedRecorder{err: errors.New("stream down")}
		counter := &mockPageCounter{result: &pages.Result{Total: 5, Source: pages.SourceUpstream}}
		handler := handlers.NewBooksHandler(counter, recorder.publish(), zap.NewNop())

		resp, err := handler.PageCount(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Body.Total)
	})

	t.Run("failure maps to 500", func(t *testing.T) {
		counter := &mockPageCounter{err: errors.New("catalog returned 503")}
		handler := handlers.NewBooksHandler(counter, messaging.Discard[events.PageCountComputed](), zap.NewNop())

		resp, err := handler.PageCount(context.Background(), nil)

		require.Error(t, err)
		assert.Nil(t, resp)

		var apiErr *apierror.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.GetStatus())
		assert.Equal(t, apierror.MessageInternal, apiErr.Message)
		assert.Equal(t, "catalog returned 503", apiErr.Detail)
		assert.False(t, apiErr.Success)
	})
}

func TestIndex(t *testing.T) {
	resp, err := handlers.Index(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Ok", resp.Body.Message)
	assert.True(t, resp.Body.Success)
}
