package server

import "time"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Health server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgNotReady         = "Readiness check failed"
)

// HTTP header names
const (
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderNoSniff        = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Header values
const (
	HeaderValueJSON                 = "application/json"
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

// Readiness messages
const (
	MsgCatalogNotLoaded = "catalog not loaded"
)

// Paths excluded from request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Server limits
const (
	MaxRequestBodyBytes = 1 << 10
	ReadHeaderTimeout   = 5 * time.Second
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
