package engine

import (
	"context"
	"slices"

	"github.com/cwbudde/spectral-transmission/chain"
)

// Candidate is the result of one dye in a sweep.
type Candidate struct {
	Dye    string
	Result Result
}

// Ranked is one place in a ranking.
type Ranked struct {
	Dye   string
	Value chain.Metric
}

// Ranking holds the best dyes by each criterion, best first, and every
// candidate in sweep order.
type Ranking struct {
	BestExcitation []Ranked
	BestEmission   []Ranked
	BestBrightness []Ranked
	All            []Candidate
}

// RankDyes tries every candidate as the dye of the current configuration.
// The selected dye is restored afterwards and the configuration recomputed
// so the result slots match it again. Candidates whose metric is undefined
// rank after all others.
func (s *Session) RankDyes(ctx context.Context, candidates []string) (Ranking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fetchLocked(ctx, candidates...); err != nil {
		return Ranking{}, err
	}

	saved := s.em.Head()
	all := make([]Candidate, 0, len(candidates))
	for _, dye := range candidates {
		s.em.SetHead(dye)
		all = append(all, Candidate{Dye: dye, Result: ComputeEfficiencyAndBrightness(s.reg, s.ex, s.em)})
	}
	s.em.SetHead(saved)
	ComputeEfficiencyAndBrightness(s.reg, s.ex, s.em)

	return Ranking{
		BestExcitation: top(all, s.topN, func(r Result) chain.Metric { return r.Excitation }),
		BestEmission:   top(all, s.topN, func(r Result) chain.Metric { return r.Emission }),
		BestBrightness: top(all, s.topN, func(r Result) chain.Metric { return r.Brightness }),
		All:            all,
	}, nil
}

func top(all []Candidate, n int, metric func(Result) chain.Metric) []Ranked {
	ranked := make([]Ranked, len(all))
	for i, c := range all {
		ranked[i] = Ranked{Dye: c.Dye, Value: metric(c.Result)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.Value.Less(b.Value):
			return -1
		case b.Value.Less(a.Value):
			return 1
		default:
			return 0
		}
	})
	return ranked[:min(n, len(ranked))]
}
