package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
)

// CatalogStatus is the view of the catalog cache the health endpoints need
type CatalogStatus interface {
	State() catalog.CacheState
	Snapshot() *catalog.Store
	FetchedAt() time.Time
}

// GatewayStatus reports whether the Discord gateway connection is up
type GatewayStatus interface {
	Connected() bool
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status           string     `json:"status"`
	Message          string     `json:"message,omitempty"`
	UptimeSeconds    int64      `json:"uptime_seconds"`
	DiscordConnected bool       `json:"discord_connected"`
	CacheState       string     `json:"cache_state"`
	Entities         int        `json:"entities"`
	DataVersion      string     `json:"data_version,omitempty"`
	FetchedAt        *time.Time `json:"fetched_at,omitempty"`
}

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleHealthz reports liveness along with cache and gateway details.
// It always answers 200 while the process runs.
func HandleHealthz(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthSnapshot(deps)
		resp.Status = StatusOK
		if deps.Gateway != nil && !resp.DiscordConnected {
			resp.Status = StatusDegraded
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleReadyz answers 503 until the first dataset has been loaded
func HandleReadyz(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthSnapshot(deps)
		if deps.Catalog == nil || deps.Catalog.Snapshot() == nil {
			slog.Debug(LogMsgNotReady, "cache_state", resp.CacheState)
			resp.Status = StatusUnavailable
			resp.Message = MsgCatalogNotLoaded
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Status = StatusOK
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleVersion returns version information about the application
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, VersionInfo{
			Version:   version,
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

func healthSnapshot(deps Dependencies) HealthResponse {
	resp := HealthResponse{
		CacheState: string(catalog.StateEmpty),
	}
	if !deps.StartedAt.IsZero() {
		resp.UptimeSeconds = int64(time.Since(deps.StartedAt) / time.Second)
	}
	if deps.Gateway != nil {
		resp.DiscordConnected = deps.Gateway.Connected()
	}
	if deps.Catalog == nil {
		return resp
	}

	resp.CacheState = string(deps.Catalog.State())
	if store := deps.Catalog.Snapshot(); store != nil {
		resp.Entities = store.Len()
		resp.DataVersion = store.BuildInfo().Version
		fetchedAt := deps.Catalog.FetchedAt()
		resp.FetchedAt = &fetchedAt
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(HeaderContentType, HeaderValueJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}
