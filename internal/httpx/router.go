package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/AngelCh415/stratis/internal/content"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/store"
	"github.com/AngelCh415/stratis/internal/telemetry"
	"github.com/AngelCh415/stratis/internal/utils"
)

type Deps struct {
	Log         *slog.Logger
	Store       *store.MemoryStore
	Service     *metrics.Service
	Metrics     *telemetry.Metrics // optional
	CORSOrigins []string
}

type api struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	a := &api{Deps: d}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	if d.Metrics != nil {
		mux.Use(utils.Instrument(d.Metrics))
	}
	if len(d.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !d.Store.Ready() {
			http.Error(w, "dataset not built", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})
	if d.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	mux.Route("/v1", func(r chi.Router) {
		r.Get("/campaigns", a.campaigns)
		r.Get("/campaigns/{id}/daily", a.daily)
		r.Get("/anomalies", a.anomalies)
		r.Get("/news", a.news)
		r.Get("/insights", a.insights)
		r.Get("/insights/{id}/chart", a.chart)
		r.Get("/dashboard", a.dashboard)
		r.Post("/aggregate", a.aggregate)
		r.Post("/deltas", a.deltas)
	})
	return mux
}

func (a *api) campaigns(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Service.Campaigns(r.URL.Query())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, rows)
}

func (a *api) daily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch := models.ChannelID(r.URL.Query().Get("channel"))
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")

	if ch == "" {
		ds, err := a.Store.Get()
		if err != nil {
			a.fail(w, err)
			return
		}
		byCh, ok := ds.DailyData[id]
		if !ok {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}
		out := make(map[models.ChannelID][]models.DailyMetrics, len(byCh))
		for k, series := range byCh {
			out[k] = between(series, from, to)
		}
		writeJSON(w, out)
		return
	}
	series, err := a.Store.Series(id, ch)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, between(series, from, to))
}

func between(series []models.DailyMetrics, from, to string) []models.DailyMetrics {
	out := make([]models.DailyMetrics, 0, len(series))
	for _, d := range series {
		if (from != "" && d.Date < from) || (to != "" && d.Date > to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (a *api) anomalies(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Service.Anomalies(r.URL.Query())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, rows)
}

func (a *api) news(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Service.News(r.URL.Query())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, rows)
}

func (a *api) insights(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Service.Insights(r.URL.Query())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, rows)
}

func (a *api) chart(w http.ResponseWriter, r *http.Request) {
	ds, err := a.Store.Get()
	if err != nil {
		a.fail(w, err)
		return
	}
	in, ok := ds.Insight(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "insight not found", http.StatusNotFound)
		return
	}
	hint := content.HintFor(in.Title)
	switch h := content.MetricsHint(r.URL.Query().Get("hint")); h {
	case "":
	case content.HintBudgetSpend, content.HintROASFrequency:
		hint = h
	default:
		http.Error(w, "bad hint", http.StatusBadRequest)
		return
	}
	cd := content.InsightChart(in.ID, hint)
	if v := r.URL.Query().Get("intensity"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "bad intensity", http.StatusBadRequest)
			return
		}
		cd.Improved = content.InterpolateImproved(cd.Predicted, cd.Improved, t)
		cd.AdSets = content.InterpolateAdSets(cd.AdSets, t)
	}
	writeJSON(w, cd)
}

func (a *api) dashboard(w http.ResponseWriter, r *http.Request) {
	q, err := metrics.ParseQuery(r.URL.Query(), a.Store.Config().Today)
	if err != nil {
		a.fail(w, err)
		return
	}
	out, err := a.Service.Dashboard(q)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, out)
}

// tope sano para los POST
const maxBody = 4 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	return json.NewDecoder(r.Body).Decode(v)
}

func (a *api) aggregate(w http.ResponseWriter, r *http.Request) {
	var records []models.DailyMetrics
	if err := decodeBody(w, r, &records); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	for _, d := range records {
		if err := d.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, metrics.Aggregate(records))
}

type deltaRequest struct {
	Current  models.AggregatedKPIs `json:"current"`
	Previous models.AggregatedKPIs `json:"previous"`
}

func (a *api) deltas(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	writeJSON(w, metrics.ComputeDeltas(req.Current, req.Previous))
}

func (a *api) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metrics.ErrBadQuery):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		a.Log.Error("request failed", slog.String("err", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
