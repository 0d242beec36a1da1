package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AngelCh415/stratis/internal/anomaly"
	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/config"
	"github.com/AngelCh415/stratis/internal/content"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
	"github.com/AngelCh415/stratis/internal/synth"
)

var ErrNotFound = errors.New("store: not found")

// BuildObserver is told about every successful build.
type BuildObserver interface {
	ObserveBuild(took time.Duration, ds *models.Dataset)
}

// MemoryStore builds the dataset on first use and then serves the same
// pointer for the life of the process (or until Reset).
type MemoryStore struct {
	mu  sync.RWMutex
	cfg config.Generation
	log *slog.Logger
	obs BuildObserver

	data   *models.Dataset
	err    error
	rng    *rng.Rand
	scorer *metrics.RandomScorer
	builds int
}

func NewMemoryStore(cfg config.Generation, log *slog.Logger, obs BuildObserver) *MemoryStore {
	if log == nil {
		log = slog.Default()
	}
	return &MemoryStore{cfg: cfg, log: log, obs: obs}
}

// Get returns the cached dataset, building it on the first call. A build
// error is cached too: generation is deterministic, retrying cannot help.
func (s *MemoryStore) Get() (*models.Dataset, error) {
	ds, _, err := s.load()
	return ds, err
}

// load returns the dataset and the scorer of the same build under one lock.
func (s *MemoryStore) load() (*models.Dataset, *metrics.RandomScorer, error) {
	s.mu.RLock()
	if s.data != nil || s.err != nil {
		defer s.mu.RUnlock()
		return s.data, s.scorer, s.err
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil || s.err != nil {
		return s.data, s.scorer, s.err
	}
	start := time.Now()
	r := rng.New(s.cfg.Seed)
	ds, err := Build(r, s.cfg)
	s.builds++
	if err != nil {
		s.err = err
		s.log.Error("dataset build failed", slog.String("err", err.Error()))
		return nil, nil, err
	}
	s.data, s.rng = ds, r
	s.scorer = metrics.NewRandomScorer(r)
	took := time.Since(start)
	s.log.Info("dataset built",
		slog.Int("campaigns", len(ds.Campaigns)),
		slog.Int("anomalies", len(ds.Anomalies)),
		slog.Int("news", len(ds.News)),
		slog.Int("insights", len(ds.Insights)),
		slog.Duration("took", took))
	if s.obs != nil {
		s.obs.ObserveBuild(took, ds)
	}
	return ds, s.scorer, nil
}

// Ready reports whether a dataset is cached.
func (s *MemoryStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}

// Builds counts build attempts since creation.
func (s *MemoryStore) Builds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builds
}

// Reset drops the cache; the next Get rebuilds from the seed.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data, s.err, s.rng, s.scorer = nil, nil, nil, nil
}

// Aggregator aggregates with mock health scores drawn from the stream the
// dataset was built with. Before the first build it builds.
func (s *MemoryStore) Aggregator() (*metrics.Aggregator, error) {
	_, sc, err := s.load()
	if err != nil {
		return nil, err
	}
	return metrics.NewAggregator(sc), nil
}

func (s *MemoryStore) Config() config.Generation { return s.cfg }

func (s *MemoryStore) Series(campaignID string, ch models.ChannelID) ([]models.DailyMetrics, error) {
	ds, err := s.Get()
	if err != nil {
		return nil, err
	}
	byCh, ok := ds.DailyData[campaignID]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %q", ErrNotFound, campaignID)
	}
	series, ok := byCh[ch]
	if !ok {
		return nil, fmt.Errorf("%w: channel %q on %q", ErrNotFound, ch, campaignID)
	}
	return series, nil
}

// Build generates a full dataset from r in dependency order: campaigns,
// daily data, anomalies, news, insights.
func Build(r *rng.Rand, cfg config.Generation) (*models.Dataset, error) {
	if err := catalog.Validate(catalog.CampaignDefs, catalog.Events); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	w := synth.Window{End: cfg.EndDate, Days: cfg.Days}
	campaigns := catalog.Campaigns(catalog.CampaignDefs, w.Start().Format(models.DateLayout))

	daily, err := synth.Generate(r, catalog.CampaignDefs, catalog.Events, w)
	if err != nil {
		return nil, fmt.Errorf("generate daily data: %w", err)
	}
	anomalies := anomaly.Detect(catalog.CampaignDefs, daily, anomaly.DefaultOptions())
	news := content.GenerateNews(r, w.Day(w.Days-1), content.DefaultNewsCount)
	insights := content.GenerateInsights(w.Day(w.Days-1), anomalies)

	return &models.Dataset{
		Campaigns: campaigns,
		DailyData: daily,
		News:      news,
		Insights:  insights,
		Anomalies: anomalies,
	}, nil
}

var defaultStore = struct {
	once sync.Once
	s    *MemoryStore
}{}

// Default is the process-wide store over the default generation settings.
func Default() *MemoryStore {
	defaultStore.once.Do(func() {
		defaultStore.s = NewMemoryStore(config.DefaultGeneration(), nil, nil)
	})
	return defaultStore.s
}

// GenerateAllData returns the process-wide dataset.
func GenerateAllData() (*models.Dataset, error) { return Default().Get() }
