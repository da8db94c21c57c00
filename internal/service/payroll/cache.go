package payroll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/payroll"
)

// ruleSnapshot is the shared rule-master data for a batch run. Pieces a
// run's configuration never reads stay zero-valued.
type ruleSnapshot struct {
	Masters   []payroll.ComponentMaster
	Rules     []payroll.ComponentRule
	Policies  []payroll.ComponentPolicy
	Statutory payroll.StatutorySettings
	OTRates   []payroll.OvertimeRate
}

// ruleCache keeps one time-boxed snapshot of the rule-master tables so
// a batch run issues each fetch once instead of per employee. The
// snapshot is immutable once taken; edits to masters become visible
// when the TTL lapses.
type ruleCache struct {
	repo payroll.PayrollRepository
	ttl  time.Duration

	mu        sync.Mutex
	snapshot  ruleSnapshot
	fetchedAt time.Time
	// what the current snapshot actually loaded
	hasComponents bool
	hasStatutory  bool
	hasOTRates    bool
}

func newRuleCache(repo payroll.PayrollRepository, ttl time.Duration) *ruleCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ruleCache{repo: repo, ttl: ttl}
}

// Snapshot returns rule data covering at least what req demands,
// refetching when the cached copy is stale or narrower than needed.
func (c *ruleCache) Snapshot(ctx context.Context, req Requirements) (ruleSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh := time.Since(c.fetchedAt) < c.ttl
	covers := (!req.NeedsComponents() || c.hasComponents) &&
		(!req.NeedsStatutory() || c.hasStatutory) &&
		(!req.NeedsOvertimeRates() || c.hasOTRates)
	if fresh && covers {
		return c.snapshot, nil
	}

	var snap ruleSnapshot
	var err error

	if req.NeedsComponents() {
		if snap.Masters, err = c.repo.GetComponentMasters(ctx); err != nil {
			return ruleSnapshot{}, err
		}
		if snap.Rules, err = c.repo.GetComponentRules(ctx); err != nil {
			return ruleSnapshot{}, err
		}
		if snap.Policies, err = c.repo.GetComponentPolicies(ctx); err != nil {
			return ruleSnapshot{}, err
		}
	}
	if req.NeedsStatutory() {
		snap.Statutory, err = c.repo.GetStatutorySettings(ctx)
		if err != nil && !errors.Is(err, payroll.ErrStatutoryNotConfigured) {
			return ruleSnapshot{}, err
		}
	}
	if req.NeedsOvertimeRates() {
		if snap.OTRates, err = c.repo.GetOvertimeRates(ctx); err != nil {
			return ruleSnapshot{}, err
		}
	}

	c.snapshot = snap
	c.fetchedAt = time.Now()
	c.hasComponents = req.NeedsComponents()
	c.hasStatutory = req.NeedsStatutory()
	c.hasOTRates = req.NeedsOvertimeRates()
	return snap, nil
}

// Invalidate drops the snapshot so the next read refetches. Called when
// the output configuration is replaced.
func (c *ruleCache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
