package constants

import "time"

// Viper configuration keys. Every key has a default set in cmd/server so the
// service starts with no environment at all (static catalog, no Gemini).
const (
	ViperListenAddr     = "listen_addr"
	ViperPostgresDSN    = "postgres_dsn"
	ViperGeminiAPIKey   = "gemini_api_key"
	ViperGeminiModel    = "gemini_model"
	ViperSourceTimeout  = "source_timeout"
	ViperRequestTimeout = "request_timeout"
	ViperCORSOrigins    = "cors_origins"
)

const (
	DefaultListenAddr     = ":8080"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultSourceTimeout  = 20 * time.Second
	DefaultRequestTimeout = 90 * time.Second
)

// Carbon accounting constants. The allowance is the compliance-free emissions
// budget per shipment; anything above it needs offsetting when the route is
// not already fully compliant.
const (
	ComplianceFreeAllowanceKg = 1000.0

	// Credit selection floors: credits below either are used only as a
	// last-resort fallback.
	MinCreditRating = 4.0
)
