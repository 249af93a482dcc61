package simulation

import (
	"fmt"
	"slices"

	"banditLab/business/bandit"
	"banditLab/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// trialCache memoizes aggregated trial results. A run is a pure function of
// its config and trial count, so entries never go stale.
type trialCache struct {
	cache *lru.Cache[string, bandit.TrialsResult]
}

// newTrialCache returns nil when size is not positive; a nil cache misses
// every lookup and drops every store.
func newTrialCache(size int) *trialCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, bandit.TrialsResult](size)
	if err != nil {
		return nil
	}
	return &trialCache{cache: c}
}

func trialKey(cfg bandit.Config, trials int) string {
	return fmt.Sprintf("%d|%d|%d|%v|%v", cfg.Seed, cfg.Rounds, trials, cfg.Arms, cfg.Policies)
}

func (c *trialCache) get(key string) (bandit.TrialsResult, bool) {
	if c == nil {
		return bandit.TrialsResult{}, false
	}
	res, ok := c.cache.Get(key)
	if !ok {
		TrialCacheLookups.WithLabelValues("miss").Inc()
		return bandit.TrialsResult{}, false
	}
	TrialCacheLookups.WithLabelValues("hit").Inc()
	return cloneTrials(res), true
}

func (c *trialCache) add(key string, res bandit.TrialsResult) {
	if c == nil {
		return
	}
	c.cache.Add(key, cloneTrials(res))
}

func cloneTrials(res bandit.TrialsResult) bandit.TrialsResult {
	out := res
	out.Policies = make([]domain.PolicyAggregate, len(res.Policies))
	for i, p := range res.Policies {
		p.MeanCounts = slices.Clone(p.MeanCounts)
		out.Policies[i] = p
	}
	return out
}
