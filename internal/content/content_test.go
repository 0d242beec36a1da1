package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/rng"
)

var end = time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)

func TestGenerateNews(t *testing.T) {
	items := GenerateNews(rng.New(42), end, DefaultNewsCount)
	require.Len(t, items, 80)

	oldest := end.AddDate(0, 0, -89).Format(models.DateLayout)
	newest := end.Format(models.DateLayout)
	ids := map[string]bool{}
	for i, n := range items {
		require.False(t, ids[n.ID], n.ID)
		ids[n.ID] = true
		assert.GreaterOrEqual(t, n.Date, oldest)
		assert.LessOrEqual(t, n.Date, newest)
		assert.NotEmpty(t, n.Title)
		assert.Contains(t, newsSources, n.Source)
		require.NotEmpty(t, n.Regions)
		assert.LessOrEqual(t, len(n.Regions), 3)
		for _, r := range n.Regions {
			assert.Contains(t, catalog.Regions, r)
		}
		if i > 0 {
			require.GreaterOrEqual(t, items[i-1].Date, n.Date)
		}
		isCompetitor := false
		for _, tag := range n.Tags {
			isCompetitor = isCompetitor || tag == models.TagCompetitor
		}
		if isCompetitor {
			assert.Contains(t, competitors, n.Competitor)
			assert.Contains(t, n.Title, n.Competitor)
		} else {
			assert.Empty(t, n.Competitor)
		}
	}
}

func TestGenerateNewsDeterministic(t *testing.T) {
	a := GenerateNews(rng.New(7), end, 30)
	b := GenerateNews(rng.New(7), end, 30)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, GenerateNews(rng.New(8), end, 30))
}

func TestGenerateInsights(t *testing.T) {
	ins := GenerateInsights(end, nil)
	require.Len(t, ins, 11)
	assert.Equal(t, ins, GenerateInsights(end, []models.Anomaly{{ID: "x"}}))

	byID := map[string]models.Insight{}
	for i, in := range ins {
		byID[in.ID] = in
		assert.Equal(t, models.InsightNew, in.Status)
		assert.Len(t, in.ActionSteps, 1+i%3, in.ID)
		assert.NotEmpty(t, in.Evidence)
		assert.GreaterOrEqual(t, in.Confidence, 0)
		assert.LessOrEqual(t, in.Confidence, 100)
		if in.Scope == models.ScopeCampaign {
			require.NotEmpty(t, in.Campaign, in.ID)
			c, ok := catalog.FindCampaign(catalog.CampaignDefs, in.Campaign)
			require.True(t, ok, in.Campaign)
			assert.Equal(t, c.Region, in.Region)
		}
	}
	assert.Equal(t, "2026-02-11", byID["insight-pacing-1"].CreatedAt)
	assert.Equal(t, "2026-02-10", byID["insight-cvr-decline"].CreatedAt)
	assert.Equal(t, "2026-02-09", byID["insight-cpa-above"].CreatedAt)
}

func TestActionSteps(t *testing.T) {
	steps := ActionSteps(models.CategoryCreative, 5)
	require.Len(t, steps, 3)
	assert.Equal(t, "step-5-0", steps[0].ID)
	assert.Equal(t, "Refresh Creative Assets", steps[0].Title)
	assert.Equal(t, models.StepScheduling, steps[2].Type)
	assert.False(t, steps[0].Completed)

	assert.Len(t, ActionSteps(models.CategoryMacro, 3), 1)
	assert.Nil(t, ActionSteps("unknown", 0))
}

func TestHashID(t *testing.T) {
	assert.Equal(t, int64(0), hashID(""))
	assert.Equal(t, int64(97), hashID("a"))
	assert.Equal(t, int64(3105), hashID("ab"))
	assert.Equal(t, hashID("insight-freq-cap"), hashID("insight-freq-cap"))
}

func TestHintFor(t *testing.T) {
	assert.Equal(t, HintBudgetSpend, HintFor("Pacing to Underspend"))
	assert.Equal(t, HintBudgetSpend, HintFor("Increase Brand Budget"))
	assert.Equal(t, HintROASFrequency, HintFor("Possible Creative Fatigue"))
}

func TestInsightChart(t *testing.T) {
	for _, hint := range []MetricsHint{HintROASFrequency, HintBudgetSpend} {
		cd := InsightChart("insight-pacing-1", hint)
		assert.Equal(t, cd, InsightChart("insight-pacing-1", hint), "deterministic")

		require.Len(t, cd.Historical, 29)
		require.Len(t, cd.Predicted, 13)
		require.Len(t, cd.Improved, 13)
		assert.Equal(t, 28, cd.TodayIndex)
		assert.Equal(t, "APR 6", cd.Historical[0].Label)
		assert.Equal(t, "TODAY", cd.Historical[28].Label)
		assert.Equal(t, "MAY 9", cd.Predicted[12].Label)

		n := 3 + int(hashID("insight-pacing-1")%3)
		assert.Len(t, cd.AdSets, n)
		for i, p := range cd.Improved {
			require.NotNil(t, p.Improved)
			assert.Greater(t, *p.Improved, cd.Predicted[i].Primary, hint)
			assert.Equal(t, cd.Predicted[i].Day, p.Day)
		}
		assert.Len(t, cd.MetricTabs, 3)
	}
	assert.Equal(t, "ROAS", InsightChart("x", HintROASFrequency).PrimaryLabel)
	assert.Equal(t, "BUDGET TARGET", InsightChart("x", HintBudgetSpend).PrimaryLabel)
	assert.NotEqual(t, InsightChart("a", HintROASFrequency), InsightChart("b", HintROASFrequency))
}

func TestInterpolate(t *testing.T) {
	cd := InsightChart("insight-channel-mix", HintROASFrequency)

	zero := InterpolateImproved(cd.Predicted, cd.Improved, 0)
	full := InterpolateImproved(cd.Predicted, cd.Improved, 1)
	over := InterpolateImproved(cd.Predicted, cd.Improved, 3)
	for i := range cd.Improved {
		assert.InDelta(t, cd.Predicted[i].Primary, *zero[i].Improved, 0.051)
		assert.InDelta(t, *cd.Improved[i].Improved, *full[i].Improved, 0.051)
		assert.Equal(t, *full[i].Improved, *over[i].Improved)
	}

	sets := InterpolateAdSets(cd.AdSets, 0)
	for i, a := range sets {
		assert.Equal(t, cd.AdSets[i].Current, a.Recommended)
	}
	sets = InterpolateAdSets(cd.AdSets, 1)
	for i, a := range sets {
		assert.InDelta(t, cd.AdSets[i].Recommended, a.Recommended, 0.0051)
	}
	// originals untouched
	assert.Equal(t, cd, InsightChart("insight-channel-mix", HintROASFrequency))
}

func TestNewsUrgencyValues(t *testing.T) {
	seen := map[models.NewsUrgency]bool{}
	for _, n := range GenerateNews(rng.New(42), end, DefaultNewsCount) {
		assert.Contains(t, []models.NewsUrgency{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh}, n.Urgency, n.ID)
		seen[n.Urgency] = true
	}
	assert.Len(t, seen, 3)
}
