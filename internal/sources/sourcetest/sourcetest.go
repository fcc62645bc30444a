// Package sourcetest provides fixture implementations of the analysis
// sources for orchestrator and optimizer tests.
package sourcetest

import (
	"context"
	"fmt"
	"time"

	"github.com/terraship/carbonroute/internal/domain"
)

// StubRoutes returns fixed candidates or a fixed error.
type StubRoutes struct {
	Candidates []domain.RouteCandidate
	Err        error
}

func (s StubRoutes) FindRoutes(_ context.Context, _, _ string, _ float64) ([]domain.RouteCandidate, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Candidates, nil
}

// StubEmissions serves canned records per route ID. Routes listed in Fail
// error out; Delay simulates a slow source for timeout tests.
type StubEmissions struct {
	Records map[string]domain.EmissionsRecord
	Fail    map[string]error
	Delay   time.Duration
}

func (s StubEmissions) EstimateEmissions(ctx context.Context, candidate domain.RouteCandidate, _ float64) (domain.EmissionsRecord, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return domain.EmissionsRecord{}, err
	}
	if err, ok := s.Fail[candidate.ID]; ok {
		return domain.EmissionsRecord{}, err
	}
	rec, ok := s.Records[candidate.ID]
	if !ok {
		return domain.EmissionsRecord{}, fmt.Errorf("no emissions fixture for route %s", candidate.ID)
	}
	return rec, nil
}

// StubCompliance mirrors StubEmissions for compliance records.
type StubCompliance struct {
	Records map[string]domain.ComplianceRecord
	Fail    map[string]error
	Delay   time.Duration
}

func (s StubCompliance) AssessCompliance(ctx context.Context, candidate domain.RouteCandidate, _ float64) (domain.ComplianceRecord, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return domain.ComplianceRecord{}, err
	}
	if err, ok := s.Fail[candidate.ID]; ok {
		return domain.ComplianceRecord{}, err
	}
	rec, ok := s.Records[candidate.ID]
	if !ok {
		return domain.ComplianceRecord{}, fmt.Errorf("no compliance fixture for route %s", candidate.ID)
	}
	return rec, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
