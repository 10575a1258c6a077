package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifier_EmptyTopicIsNoop(t *testing.T) {
	n := NewNotifier("", time.Second)
	assert.NoError(t, n.SessionCompleted(context.Background(), "Chest Therapy", 60))
	assert.NoError(t, n.SessionStopped(context.Background(), "Chest Therapy", 12))
}

func TestNtfyNotifier_SendsCompletion(t *testing.T) {
	var gotTitle, gotBody, gotTags string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second)
	err := n.SessionCompleted(context.Background(), "Chest Therapy", 180)
	require.NoError(t, err)

	assert.Equal(t, "Terapi - Session Complete", gotTitle)
	assert.Contains(t, gotBody, "Chest Therapy")
	assert.Contains(t, gotBody, "180")
	assert.Contains(t, gotTags, "completed")
}

func TestNtfyNotifier_SendsStopped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Terapi - Session Stopped", r.Header.Get("Title"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second)
	assert.NoError(t, n.SessionStopped(context.Background(), "Leg Therapy", 42))
}

func TestNtfyNotifier_ServerErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic not found", http.StatusNotFound)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second)
	err := n.SessionCompleted(context.Background(), "Arm Therapy", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
