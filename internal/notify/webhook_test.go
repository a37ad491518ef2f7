package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChapterDonePostsPayload(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL)
	require.True(t, n.Enabled())
	require.NoError(t, n.ChapterDone(context.Background(), "The Lighthouse Keeper"))
	require.Equal(t, "Chapter done: The Lighthouse Keeper", got.Text)
}

func TestChapterDoneRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL).ChapterDone(context.Background(), "Two")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestDisabledNotifierSkipsDelivery(t *testing.T) {
	n := New("")
	require.False(t, n.Enabled())
	require.NoError(t, n.ChapterDone(context.Background(), "Never sent"))
}

func TestChapterDoneRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(srv.URL).ChapterDone(ctx, "Cancelled")
	require.Error(t, err)
}
