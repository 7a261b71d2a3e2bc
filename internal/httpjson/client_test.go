package httpjson

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "curl")
		w.Write([]byte(`{"hello":"world"}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Post(context.Background(), srv.URL, nil, map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.True(t, res.OK())

	var body map[string]string
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestHTTPErrorIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.Equal(t, "upstream down", string(res.Body))
}

func TestConnectionFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(time.Second)
	_, err := client.Get(context.Background(), url, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection failed")
}

func TestDecodeInvalidJSON(t *testing.T) {
	res := &Response{Status: 200, Body: []byte("not json")}
	var v map[string]any
	assert.Error(t, res.Decode(&v))
}

func TestCustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Get(context.Background(), srv.URL, map[string]string{"Authorization": "Bearer tok"})
	require.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("", 2))
}
