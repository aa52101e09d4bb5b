package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Catalog metric names
const (
	MetricNameCatalogFetches        = "catalog_fetches_total"
	MetricNameCatalogFetchDuration  = "catalog_fetch_duration_seconds"
	MetricNameCatalogCacheRequests  = "catalog_cache_requests_total"
	MetricNameCatalogEntities       = "catalog_entities"
	MetricNameCatalogNameCollisions = "catalog_name_collisions"
	MetricNameCatalogLastFetch      = "catalog_last_fetch_timestamp_seconds"
	MetricNameSearchesPerformed     = "searches_performed_total"
)

// Discord metric names
const (
	MetricNameCommandsTotal      = "discord_commands_total"
	MetricNameCommandErrors      = "discord_command_errors_total"
	MetricNameCommandDuration    = "discord_command_duration_seconds"
	MetricNameCooldownRejections = "discord_cooldown_rejections_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Catalog metric help text
const (
	HelpTextCatalogFetches        = "Total number of upstream dataset fetches by result"
	HelpTextCatalogFetchDuration  = "Upstream dataset fetch latency in seconds"
	HelpTextCatalogCacheRequests  = "Total number of catalog reads by cache outcome"
	HelpTextCatalogEntities       = "Number of entities in the current catalog by type"
	HelpTextCatalogNameCollisions = "Number of names shared by more than one entity in the current catalog"
	HelpTextCatalogLastFetch      = "Unix time of the last successful dataset fetch"
	HelpTextSearchesPerformed     = "Total number of catalog searches performed"
)

// Discord metric help text
const (
	HelpTextCommandsTotal      = "Total number of slash commands handled"
	HelpTextCommandErrors      = "Total number of slash commands that failed"
	HelpTextCommandDuration    = "Slash command handling latency in seconds"
	HelpTextCooldownRejections = "Total number of slash commands rejected by a cooldown"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelResult  = "result"
	LabelOutcome = "outcome"
	LabelCommand = "command"
)

// ============================================================================
// Label Values
// ============================================================================

// Fetch results
const (
	FetchResultSuccess         = "success"
	FetchResultNetworkError    = "network_error"
	FetchResultValidationError = "validation_error"
	FetchResultError           = "error"
)

// Cache outcomes
const (
	CacheOutcomeHit       = "hit"
	CacheOutcomeMiss      = "miss"
	CacheOutcomeStale     = "stale"
	CacheOutcomeForced    = "forced"
	CacheOutcomeCoalesced = "coalesced"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// FetchLatencyBuckets covers upstream downloads from 50ms up to the 30s fetch timeout
var FetchLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30}
