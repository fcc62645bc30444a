// Package orchestrator drives the analysis pipeline: one route-discovery
// stage, a concurrent per-candidate emissions/compliance fan-out, then a
// synchronous fan-in to the optimization engine.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraship/carbonroute/internal/domain"
	"github.com/terraship/carbonroute/internal/domain/dto"
	"github.com/terraship/carbonroute/internal/pkg/constants"
	"github.com/terraship/carbonroute/internal/pkg/logger"
	"github.com/terraship/carbonroute/internal/service/optimizer"
	"github.com/terraship/carbonroute/internal/sources"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	routes     sources.RouteSource
	emissions  sources.EmissionsSource
	compliance sources.ComplianceSource
	engine     *optimizer.Engine

	sourceTimeout  time.Duration
	requestTimeout time.Duration
}

func NewService(
	routes sources.RouteSource,
	emissions sources.EmissionsSource,
	compliance sources.ComplianceSource,
	engine *optimizer.Engine,
	sourceTimeout, requestTimeout time.Duration,
) *Service {
	return &Service{
		routes:         routes,
		emissions:      emissions,
		compliance:     compliance,
		engine:         engine,
		sourceTimeout:  sourceTimeout,
		requestTimeout: requestTimeout,
	}
}

// Result carries the recommendation plus the stage-transition log. The log is
// completion-ordered and exists for observability only; it is returned even
// when the pipeline fails so callers can explain what happened.
type Result struct {
	Recommendation *domain.Recommendation
	StageLog       []dto.StageLogEntry
}

// candidateOutcome is the fan-out result slot for one candidate. Slots are
// written by at most one goroutine each and read only after the join barrier.
type candidateOutcome struct {
	emissions     domain.EmissionsRecord
	emissionsErr  error
	compliance    domain.ComplianceRecord
	complianceErr error
}

// Optimize runs the full pipeline for one request.
func (s *Service) Optimize(ctx context.Context, req dto.OptimizeRequest) (*Result, error) {
	priority := domain.Priority(req.Priority)
	if _, ok := priority.Weights(); !ok || req.Weight <= 0 {
		return nil, fmt.Errorf("%w", constants.ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	log := newStageLog()

	candidates, err := s.discoverRoutes(ctx, req, log)
	if err != nil {
		return &Result{StageLog: log.entries()}, err
	}

	bundles := s.analyzeCandidates(ctx, candidates, req.Weight, log)
	if len(bundles) == 0 {
		log.add("optimizer", "No candidates with emissions data remain; nothing to rank")
		return &Result{StageLog: log.entries()}, fmt.Errorf("%w", constants.ErrNoViableRoutes)
	}

	recommendation, err := s.engine.Optimize(bundles, priority)
	if err != nil {
		return &Result{StageLog: log.entries()}, fmt.Errorf("optimize: %w", err)
	}

	log.add("optimizer", fmt.Sprintf(
		"Recommended %s (score %.2f) over %d alternative(s) under %s priority",
		recommendation.RecommendedRoute.Name, recommendation.RecommendedRoute.Score,
		len(recommendation.Alternatives), priority,
	))

	return &Result{
		Recommendation: recommendation,
		StageLog:       log.entries(),
	}, nil
}

// discoverRoutes is the single sequential stage. Any failure here is fatal:
// with no candidates there is nothing to optimize, and no emissions or
// compliance calls are issued.
func (s *Service) discoverRoutes(ctx context.Context, req dto.OptimizeRequest, log *stageLog) ([]domain.RouteCandidate, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	candidates, err := s.routes.FindRoutes(callCtx, req.Origin, req.Destination, req.Weight)
	if err != nil {
		log.add("route", fmt.Sprintf("Route discovery failed: %s", err))
		return nil, fmt.Errorf("%w: %s", constants.ErrNoRoutesFound, timeoutAware(err))
	}
	if len(candidates) == 0 {
		log.add("route", fmt.Sprintf("No routes available between %s and %s", req.Origin, req.Destination))
		return nil, fmt.Errorf("%w", constants.ErrNoRoutesFound)
	}

	log.add("route", fmt.Sprintf("Found %d viable route(s) between %s and %s", len(candidates), req.Origin, req.Destination))
	return candidates, nil
}

// analyzeCandidates fans out emissions and compliance calls for every
// candidate concurrently and joins before merging. Per-candidate policy:
// an emissions failure drops the candidate; a compliance failure degrades it
// to default-compliant with zero regulatory cost.
func (s *Service) analyzeCandidates(ctx context.Context, candidates []domain.RouteCandidate, weight float64, log *stageLog) []optimizer.Bundle {
	outcomes := make([]candidateOutcome, len(candidates))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		i, candidate := i, candidate

		eg.Go(func() error {
			callCtx, cancel := context.WithTimeout(egCtx, s.sourceTimeout)
			defer cancel()

			record, err := s.emissions.EstimateEmissions(callCtx, candidate, weight)
			if err == nil && record.RouteID != candidate.ID {
				err = fmt.Errorf("orphaned emissions record for route %s", record.RouteID)
			}
			outcomes[i].emissions, outcomes[i].emissionsErr = record, err

			if err != nil {
				log.add("emissions", fmt.Sprintf("Route %s: emissions estimation failed: %s", candidate.ID, timeoutAware(err)))
			} else {
				log.add("emissions", fmt.Sprintf("Route %s: %.0f kg CO2e (%s)", candidate.ID, record.TotalEmissionsKg, record.Category))
			}
			return nil
		})

		eg.Go(func() error {
			callCtx, cancel := context.WithTimeout(egCtx, s.sourceTimeout)
			defer cancel()

			record, err := s.compliance.AssessCompliance(callCtx, candidate, weight)
			if err == nil && record.RouteID != candidate.ID {
				err = fmt.Errorf("orphaned compliance record for route %s", record.RouteID)
			}
			outcomes[i].compliance, outcomes[i].complianceErr = record, err

			if err != nil {
				log.add("compliance", fmt.Sprintf("Route %s: compliance check failed, proceeding with defaults: %s", candidate.ID, timeoutAware(err)))
			} else {
				log.add("compliance", fmt.Sprintf("Route %s: %s, regulatory cost $%.2f", candidate.ID, record.Status, record.RegulatoryCostUSD))
			}
			return nil
		})
	}

	// Join barrier: per-candidate failures are absorbed, so Wait never
	// returns an error here.
	_ = eg.Wait()

	bundles := make([]optimizer.Bundle, 0, len(candidates))
	for i, candidate := range candidates {
		outcome := outcomes[i]

		if outcome.emissionsErr != nil {
			logger.Warnf(ctx, "dropping route %s: %s", candidate.ID, outcome.emissionsErr.Error())
			continue
		}

		compliance := outcome.compliance
		if outcome.complianceErr != nil {
			compliance = domain.DefaultComplianceRecord(candidate.ID)
		}

		bundles = append(bundles, optimizer.Bundle{
			Candidate:  candidate,
			Emissions:  outcome.emissions,
			Compliance: compliance,
		})
	}
	return bundles
}

func timeoutAware(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return constants.ErrSourceTimeout.Error()
	}
	return err.Error()
}

// stageLog collects completion-ordered transitions from concurrent stages.
type stageLog struct {
	mu  sync.Mutex
	log []dto.StageLogEntry
}

func newStageLog() *stageLog {
	return &stageLog{log: make([]dto.StageLogEntry, 0, 8)}
}

func (l *stageLog) add(stage, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = append(l.log, dto.StageLogEntry{Stage: stage, Message: message})
}

func (l *stageLog) entries() []dto.StageLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]dto.StageLogEntry, len(l.log))
	copy(out, l.log)
	return out
}
