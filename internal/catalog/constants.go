package catalog

import "time"

// Upstream request settings
const (
	DefaultUserAgent   = "SpellcastersBot/1.0 (+https://github.com/osse101/SpellcastersBot_Go)"
	MaxPayloadBytes    = 32 << 20
	AcceptHeaderJSON   = "application/json"
	DefaultHTTPTimeout = 30 * time.Second
)

// singleflight key for the one dataset this cache holds
const fetchKey = "dataset"

// Log messages
const (
	LogMsgNameCollision    = "Entity name collision, keeping later entity"
	LogMsgFetchStarted     = "Fetching dataset from upstream"
	LogMsgFetchSucceeded   = "Dataset loaded"
	LogMsgFetchFailed      = "Dataset fetch failed, keeping previous data"
	LogMsgCallerCancelled  = "Caller stopped waiting for dataset fetch"
	LogMsgInvalidThreshold = "Ignoring search threshold outside (0, 1]"
)
