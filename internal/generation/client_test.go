package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("", "https://api.openai.com").Configured())
	assert.True(t, NewClient("sk-test", "https://api.openai.com").Configured())
}

func TestGenerateImage(t *testing.T) {
	var gotAuth string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/images/generations", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://cdn.example.com/img/abc.png"}]}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)

	url, err := client.GenerateImage(context.Background(), "dragon sketch")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/abc.png", url)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "dragon sketch", gotBody.Prompt)
	assert.Equal(t, 1, gotBody.N)
	assert.Equal(t, "512x512", gotBody.Size)
}

func TestGenerateImageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Your prompt was rejected","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)

	_, err := client.GenerateImage(context.Background(), "something")
	require.Error(t, err)
	// Текст ошибки API отдается как есть
	assert.Equal(t, "Your prompt was rejected", err.Error())
}

func TestGenerateImageMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)

	_, err := client.GenerateImage(context.Background(), "something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestGenerateImageEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL)

	_, err := client.GenerateImage(context.Background(), "something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty generation result")
}
