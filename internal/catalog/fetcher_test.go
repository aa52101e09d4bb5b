package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

func TestHTTPFetcher_Success(t *testing.T) {
	body := fixtureBytes(t)
	headers := make(chan http.Header, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		headers <- r.Header.Clone()
		_, _ = w.Write(body)
	}))
	defer server.Close()

	ds, err := NewHTTPFetcher(server.URL, validation.MustNewSchemaValidator()).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, ds.Total())
	got := <-headers
	assert.Equal(t, AcceptHeaderJSON, got.Get("Accept"))
	assert.Equal(t, DefaultUserAgent, got.Get("User-Agent"))
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, validation.MustNewSchemaValidator()).Fetch(context.Background())

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, server.URL, netErr.URL)
	assert.Contains(t, err.Error(), domain.ErrMsgNetworkFailure)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPFetcher(url, validation.MustNewSchemaValidator()).Fetch(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.StatusCode)
	assert.Error(t, netErr.Err)
}

func TestHTTPFetcher_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"build_info": {"version": "1"}, "heroes": []}`))
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, validation.MustNewSchemaValidator()).Fetch(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
	assert.NotErrorIs(t, err, domain.ErrNetworkFailure)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Issues)
}

func TestHTTPFetcher_BadURL(t *testing.T) {
	_, err := NewHTTPFetcher("://nope", validation.MustNewSchemaValidator()).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}
