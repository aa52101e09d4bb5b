package catalog

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

func fixtureBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/all_data.json")
	require.NoError(t, err)
	return data
}

// loadDataset decodes a fresh copy of the scenario dataset
func loadDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := validation.MustNewSchemaValidator().ValidateBytes(fixtureBytes(t))
	require.NoError(t, err)
	return ds
}

func loadStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(loadDataset(t), domain.DefaultSearchThreshold)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// upstream is an httptest server serving the fixture and counting requests.
// While gate is non-nil every request blocks until it is closed.
type upstream struct {
	server   *httptest.Server
	requests atomic.Int32
	gate     chan struct{}
	status   atomic.Int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	return startUpstream(t, nil)
}

// newGatedUpstream blocks every request until the returned upstream's gate is closed
func newGatedUpstream(t *testing.T) *upstream {
	t.Helper()
	return startUpstream(t, make(chan struct{}))
}

func startUpstream(t *testing.T, gate chan struct{}) *upstream {
	t.Helper()
	body := fixtureBytes(t)
	u := &upstream{gate: gate}
	u.status.Store(http.StatusOK)
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		if u.gate != nil {
			<-u.gate
		}
		status := int(u.status.Load())
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) fetcher() *HTTPFetcher {
	return NewHTTPFetcher(u.server.URL, validation.MustNewSchemaValidator())
}
