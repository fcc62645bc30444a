package dto

import "github.com/terraship/carbonroute/internal/domain"

// OptimizeRequest is the system boundary input. Validation tags are enforced
// by the echo validator before any external source is called.
type OptimizeRequest struct {
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	Weight      float64 `json:"weight" validate:"required,gt=0"`
	Priority    string  `json:"priority" validate:"required,oneof=cost speed carbon balanced"`
}

// StageLogEntry is one causally-ordered pipeline transition, kept purely for
// observability and explainability.
type StageLogEntry struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// OptimizeResponse is the boundary output. On fatal failure Success is false,
// Error carries the cause and Recommendation is absent.
type OptimizeResponse struct {
	Success           bool                   `json:"success"`
	Recommendation    *domain.Recommendation `json:"recommendation,omitempty"`
	AgentConversation []StageLogEntry        `json:"agent_conversation"`
	Error             string                 `json:"error,omitempty"`
}

type LocationsResponse struct {
	Locations []domain.Location `json:"locations"`
	Count     int               `json:"count"`
}

type CreditsResponse struct {
	Credits []domain.CarbonCredit `json:"credits"`
	Count   int                   `json:"count"`
}
