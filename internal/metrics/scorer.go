package metrics

import (
	"sync"

	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

type HealthScores struct {
	BrandSearchLift      float64
	ShareOfVoice         float64
	BudgetPacing         float64
	CreativeFatigueIndex float64
}

// HealthScorer fills the health indicators that are not derived from the
// raw counters. base already carries sums, ratios, volatility and anomalies.
type HealthScorer interface {
	Score(records []models.DailyMetrics, base models.AggregatedKPIs) HealthScores
}

type NoScorer struct{}

func (NoScorer) Score([]models.DailyMetrics, models.AggregatedKPIs) HealthScores {
	return HealthScores{}
}

// RandomScorer draws mock scores from a shared stream. Four draws per call,
// in field order.
type RandomScorer struct {
	mu sync.Mutex
	r  *rng.Rand
}

func NewRandomScorer(r *rng.Rand) *RandomScorer { return &RandomScorer{r: r} }

func (s *RandomScorer) Score([]models.DailyMetrics, models.AggregatedKPIs) HealthScores {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HealthScores{
		BrandSearchLift:      50 + s.r.Float64()*50,
		ShareOfVoice:         10 + s.r.Float64()*30,
		BudgetPacing:         85 + s.r.Float64()*30,
		CreativeFatigueIndex: 20 + s.r.Float64()*60,
	}
}
