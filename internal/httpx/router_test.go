package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/stratis/internal/config"
	"github.com/AngelCh415/stratis/internal/content"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/store"
	"github.com/AngelCh415/stratis/internal/telemetry"
)

func newServer(t *testing.T, warm bool) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := config.DefaultGeneration()
	tm := telemetry.New()
	st := store.NewMemoryStore(g, log, tm)
	if warm {
		_, err := st.Get()
		require.NoError(t, err)
	}
	h := NewRouter(Deps{
		Log:         log,
		Store:       st,
		Service:     metrics.NewService(st, g.Today),
		Metrics:     tm,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, st
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	// drain so the server has finished the request
	io.Copy(io.Discard, resp.Body)
	return resp
}

func TestHealthAndReady(t *testing.T) {
	srv, st := newServer(t, false)

	resp := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = getJSON(t, srv.URL+"/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	_, err := st.Get()
	require.NoError(t, err)
	resp = getJSON(t, srv.URL+"/readyz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newServer(t, true)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestListings(t *testing.T) {
	srv, _ := newServer(t, true)

	var camps []models.Campaign
	resp := getJSON(t, srv.URL+"/v1/campaigns?region=uk", &camps)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, camps)
	for _, c := range camps {
		assert.Equal(t, models.RegionUK, c.Region)
	}

	var an []models.Anomaly
	resp = getJSON(t, srv.URL+"/v1/anomalies?limit=5", &an)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, an, 5)

	var news []models.NewsItem
	getJSON(t, srv.URL+"/v1/news", &news)
	assert.Len(t, news, 80)

	var ins []models.Insight
	getJSON(t, srv.URL+"/v1/insights", &ins)
	assert.Len(t, ins, 11)
}

func TestDaily(t *testing.T) {
	srv, _ := newServer(t, true)

	var series []models.DailyMetrics
	resp := getJSON(t, srv.URL+"/v1/campaigns/na-taycan-launch/daily?channel=instagram&from=2026-02-01&to=2026-02-11", &series)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, series, 11)
	assert.Equal(t, "2026-02-01", series[0].Date)

	var all map[models.ChannelID][]models.DailyMetrics
	resp = getJSON(t, srv.URL+"/v1/campaigns/na-taycan-launch/daily", &all)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, all, 4)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/campaigns/nope/daily", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/campaigns/na-taycan-launch/daily?channel=google-search", nil).StatusCode)
}

func TestChart(t *testing.T) {
	srv, _ := newServer(t, true)

	var cd content.ChartData
	resp := getJSON(t, srv.URL+"/v1/insights/insight-pacing-1/chart", &cd)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "BUDGET TARGET", cd.PrimaryLabel)
	assert.Equal(t, content.InsightChart("insight-pacing-1", content.HintBudgetSpend), cd)

	resp = getJSON(t, srv.URL+"/v1/insights/insight-pacing-1/chart?hint=roas-frequency&intensity=0", &cd)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ROAS", cd.PrimaryLabel)
	for i, a := range cd.AdSets {
		assert.Equal(t, a.Current, a.Recommended, i)
	}

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/insights/nope/chart", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/insights/insight-pacing-1/chart?hint=pie", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/insights/insight-pacing-1/chart?intensity=lots", nil).StatusCode)
}

func TestDashboard(t *testing.T) {
	srv, _ := newServer(t, true)

	var d metrics.Dashboard
	resp := getJSON(t, srv.URL+"/v1/dashboard?from=2026-01-01&to=2026-01-31&compare=true&selectedRegion=europe", &d)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, metrics.ViewRegion, d.ViewLevel)
	assert.Greater(t, d.CurrentKPIs.Spend, 0.0)
	require.NotNil(t, d.PreviousKPIs)
	assert.Len(t, d.Regions, 6)
	assert.Len(t, d.TimeSeries, 31)
	for _, c := range d.Campaigns {
		assert.Equal(t, models.RegionEurope, c.Campaign.Region)
	}

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/dashboard?attribution=magic", nil).StatusCode)
}

func TestAggregateAndDeltas(t *testing.T) {
	srv, _ := newServer(t, true)

	body := `[{"date":"2026-01-01","spend":100,"revenue":300,"conversions":2,"impressions":1000,"clicks":50},
	          {"date":"2026-01-02","spend":200,"revenue":100,"conversions":1,"impressions":2000,"clicks":50}]`
	resp, err := http.Post(srv.URL+"/v1/aggregate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var k models.AggregatedKPIs
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&k))
	assert.Equal(t, 300.0, k.Spend)
	assert.InDelta(t, 100, k.CPA, 1e-9)
	assert.InDelta(t, 4.0/3, k.ROAS, 1e-9)

	b, _ := json.Marshal(map[string]any{"current": k, "previous": k})
	resp2, err := http.Post(srv.URL+"/v1/deltas", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp2.Body.Close()
	var deltas map[models.KPIKey]models.KPIDelta
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&deltas))
	assert.Len(t, deltas, len(models.KPIKeys))
	assert.Zero(t, deltas[models.KPIROAS].Delta)

	resp3, err := http.Post(srv.URL+"/v1/aggregate", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestPrometheusEndpoint(t *testing.T) {
	srv, _ := newServer(t, true)
	getJSON(t, srv.URL+"/v1/insights", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	out := string(b)
	assert.Contains(t, out, `stratis_http_requests_total{method="GET",route="/v1/insights",status="200"}`)
	assert.Contains(t, out, `stratis_dataset_records{kind="news"} 80`)
	assert.Contains(t, out, "stratis_dataset_build_seconds")
}

func TestAggregateRejectsBadRecords(t *testing.T) {
	srv, _ := newServer(t, true)

	for name, body := range map[string]string{
		"negative clicks": `[{"date":"2026-01-01","spend":100,"clicks":-5}]`,
		"negative spend":  `[{"date":"2026-01-01","spend":-1}]`,
	} {
		resp, err := http.Post(srv.URL+"/v1/aggregate", "application/json", strings.NewReader(body))
		require.NoError(t, err, name)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
	}
}

func TestPostBodyIsCapped(t *testing.T) {
	srv, _ := newServer(t, true)

	// a valid JSON array, just too large
	big := "[" + strings.Repeat(`{"date":"2026-01-01","spend":1},`, 200_000) + `{"date":"2026-01-01","spend":1}]`
	require.Greater(t, len(big), maxBody)
	bigDelta := `{"current":{"spend":1},"previous":{"spend":1},"pad":"` + strings.Repeat("x", maxBody) + `"}`
	for path, body := range map[string]string{"/v1/aggregate": big, "/v1/deltas": bigDelta} {
		rec := httptest.NewRecorder()
		srv.Config.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
