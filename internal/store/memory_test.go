package store

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/config"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type countingObserver struct {
	mu    sync.Mutex
	calls int
	last  *models.Dataset
}

func (c *countingObserver) ObserveBuild(_ time.Duration, ds *models.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.last = ds
}

func TestGetCachesSamePointer(t *testing.T) {
	obs := &countingObserver{}
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), obs)
	assert.False(t, st.Ready())

	a, err := st.Get()
	require.NoError(t, err)
	b, err := st.Get()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.True(t, st.Ready())
	assert.Equal(t, 1, st.Builds())
	assert.Equal(t, 1, obs.calls)
	assert.Same(t, a, obs.last)
}

func TestConcurrentGetBuildsOnce(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	var wg sync.WaitGroup
	got := make([]*models.Dataset, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = st.Get()
		}(i)
	}
	wg.Wait()
	for _, ds := range got {
		assert.Same(t, got[0], ds)
	}
	assert.Equal(t, 1, st.Builds())
}

func TestResetRebuildsEqualData(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	a, err := st.Get()
	require.NoError(t, err)
	st.Reset()
	assert.False(t, st.Ready())
	b, err := st.Get()
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, a, b)
	assert.Equal(t, 2, st.Builds())
}

func TestDatasetContents(t *testing.T) {
	ds, err := NewMemoryStore(config.DefaultGeneration(), quiet(), nil).Get()
	require.NoError(t, err)

	assert.Len(t, ds.Campaigns, len(catalog.CampaignDefs))
	assert.Equal(t, "2025-08-16", ds.Campaigns[0].StartDate)
	assert.Len(t, ds.DailyData, len(catalog.CampaignDefs))
	assert.Len(t, ds.News, 80)
	assert.Len(t, ds.Insights, 11)
	assert.LessOrEqual(t, len(ds.Anomalies), 200)
	assert.NotEmpty(t, ds.Anomalies)
	assert.Equal(t, "2026-02-11", ds.DailyData["na-taycan-launch"][models.ChannelInstagram][179].Date)
	assert.Equal(t, "2026-02-11", ds.Insights[0].CreatedAt)
}

func TestSeedChangesData(t *testing.T) {
	g := config.DefaultGeneration()
	a, err := NewMemoryStore(g, quiet(), nil).Get()
	require.NoError(t, err)
	g.Seed = 7
	b, err := NewMemoryStore(g, quiet(), nil).Get()
	require.NoError(t, err)
	assert.NotEqual(t, a.DailyData, b.DailyData)
	assert.Equal(t, a.Insights, b.Insights)
}

func TestBuildMatchesManualPipeline(t *testing.T) {
	g := config.DefaultGeneration()
	a, err := Build(rng.New(g.Seed), g)
	require.NoError(t, err)
	b, err := NewMemoryStore(g, quiet(), nil).Get()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildErrorIsCached(t *testing.T) {
	g := config.DefaultGeneration()
	g.Days = 0
	st := NewMemoryStore(g, quiet(), nil)
	_, err := st.Get()
	require.Error(t, err)
	_, err2 := st.Get()
	assert.Equal(t, err, err2)
	assert.Equal(t, 1, st.Builds())
	assert.False(t, st.Ready())
	_, err = st.Aggregator()
	assert.Error(t, err)
}

func TestSeries(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	s, err := st.Series("na-taycan-launch", models.ChannelTikTok)
	require.NoError(t, err)
	assert.Len(t, s, 180)

	_, err = st.Series("nope", models.ChannelTikTok)
	assert.ErrorIs(t, err, ErrNotFound)
	// na-911-performance has no tiktok
	_, err = st.Series("na-911-performance", models.ChannelTikTok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregatorUsesHealthScores(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	agg, err := st.Aggregator()
	require.NoError(t, err)
	s, err := st.Series("na-taycan-launch", models.ChannelInstagram)
	require.NoError(t, err)
	k := agg.Aggregate(s)
	assert.GreaterOrEqual(t, k.BrandSearchLift, 50.0)
	assert.GreaterOrEqual(t, k.BudgetPacing, 85.0)
}

func TestGenerateAllData(t *testing.T) {
	a, err := GenerateAllData()
	require.NoError(t, err)
	b, err := GenerateAllData()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Same(t, Default(), Default())
}

func TestAggregatorSurvivesConcurrentReset(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	series := []models.DailyMetrics{{Date: "2026-01-01", Spend: 100, Impressions: 1000}}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			st.Reset()
			_, _ = st.Get()
		}
	}()
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				agg, err := st.Aggregator()
				if !assert.NoError(t, err) {
					return
				}
				assert.NotPanics(t, func() { agg.Aggregate(series) })
			}
		}()
	}
	wg.Wait()
}

func TestAggregatorScorerIsSet(t *testing.T) {
	st := NewMemoryStore(config.DefaultGeneration(), quiet(), nil)
	agg, err := st.Aggregator()
	require.NoError(t, err)
	sc, ok := agg.Scorer.(*metrics.RandomScorer)
	require.True(t, ok)
	assert.NotNil(t, sc)
}
