package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

// Fetcher retrieves and validates one complete Dataset.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.Dataset, error)
}

// HTTPFetcher downloads the dataset with a single GET. It never retries;
// the cache decides when to try again.
type HTTPFetcher struct {
	URL       string
	Client    *http.Client
	Validator validation.SchemaValidator
	UserAgent string
}

// NewHTTPFetcher creates a fetcher for url
func NewHTTPFetcher(url string, validator validation.SchemaValidator) *HTTPFetcher {
	return &HTTPFetcher{
		URL: url,
		Client: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
		Validator: validator,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch returns a *domain.NetworkError for transport failures and non-2xx
// responses, and a *domain.ValidationError for payloads of the wrong shape.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*domain.Dataset, error) {
	body, err := f.download(ctx)
	if err != nil {
		return nil, err
	}

	ds, err := f.Validator.ValidateBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to validate dataset from %s: %w", f.URL, err)
	}
	return ds, nil
}

func (f *HTTPFetcher) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &domain.NetworkError{URL: f.URL, Err: err}
	}
	req.Header.Set("Accept", AcceptHeaderJSON)
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.NetworkError{URL: f.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPayloadBytes+1))
	if err != nil {
		return nil, &domain.NetworkError{URL: f.URL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if len(body) > MaxPayloadBytes {
		return nil, &domain.NetworkError{URL: f.URL, Err: fmt.Errorf("payload exceeds %d bytes", MaxPayloadBytes)}
	}
	return body, nil
}
