package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/stratis/internal/catalog"
	"github.com/AngelCh415/stratis/internal/config"
	"github.com/AngelCh415/stratis/internal/content"
	"github.com/AngelCh415/stratis/internal/format"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/models"
	"github.com/AngelCh415/stratis/internal/store"
)

var (
	seed         uint32
	endDate      string
	days         int
	outputFormat string
	verbose      bool

	// aggregate flags
	channel  string
	from, to string
	compare  bool

	limit int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets the
// package-level flag vars to their defaults.
func newRootCmd() *cobra.Command {
	def := config.DefaultGeneration()

	rootCmd := &cobra.Command{
		Use:           "stratis",
		Short:         "Deterministic synthetic marketing analytics",
		Long:          `Generate the synthetic campaign dataset and inspect KPIs, anomalies, news and insights.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Uint32Var(&seed, "seed", def.Seed, "Generator seed")
	rootCmd.PersistentFlags().StringVar(&endDate, "end", def.EndDate.Format(models.DateLayout), "Last generated day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntVar(&days, "days", def.Days, "Days of history")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log the dataset build")

	summaryCmd := &cobra.Command{Use: "summary", Short: "Brand KPIs per region", RunE: runSummary}
	summaryCmd.Flags().StringVar(&from, "from", "", "Start date (default: window start)")
	summaryCmd.Flags().StringVar(&to, "to", "", "End date (default: window end)")

	anomaliesCmd := &cobra.Command{Use: "anomalies", Short: "Detected anomalies, newest first", RunE: runAnomalies}
	anomaliesCmd.Flags().IntVar(&limit, "limit", 20, "Rows to show (0 = all)")

	aggregateCmd := &cobra.Command{
		Use:   "aggregate <campaign-id>",
		Short: "Aggregate one campaign, optionally one channel",
		Args:  cobra.ExactArgs(1),
		RunE:  runAggregate,
	}
	aggregateCmd.Flags().StringVar(&channel, "channel", "", "Channel id")
	aggregateCmd.Flags().StringVar(&from, "from", "", "Start date")
	aggregateCmd.Flags().StringVar(&to, "to", "", "End date")
	aggregateCmd.Flags().BoolVar(&compare, "compare", false, "Compare with the previous period")

	newsCmd := &cobra.Command{Use: "news", Short: "Market news feed", RunE: runNews}
	newsCmd.Flags().IntVar(&limit, "limit", 20, "Rows to show (0 = all)")

	insightsCmd := &cobra.Command{Use: "insights", Short: "Curated insights", RunE: runInsights}

	chartCmd := &cobra.Command{
		Use:   "chart <insight-id>",
		Short: "Projection chart data for an insight",
		Args:  cobra.ExactArgs(1),
		RunE:  runChart,
	}

	rootCmd.AddCommand(summaryCmd, anomaliesCmd, aggregateCmd, newsCmd, insightsCmd, chartCmd)
	return rootCmd
}

func generation() (config.Generation, error) {
	g := config.DefaultGeneration()
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return g, fmt.Errorf("bad --end %q: %w", endDate, err)
	}
	if days <= 0 {
		return g, fmt.Errorf("--days must be positive")
	}
	g.Seed, g.EndDate, g.Days = seed, end, days
	g.Today = end.AddDate(0, 0, 1)
	return g, nil
}

func openStore() (*store.MemoryStore, error) {
	g, err := generation()
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	st := store.NewMemoryStore(g, log, nil)
	if _, err := st.Get(); err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}
	return st, nil
}

func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	g := st.Config()
	start, end := from, to
	if start == "" {
		start = g.EndDate.AddDate(0, 0, -(g.Days - 1)).Format(models.DateLayout)
	}
	if end == "" {
		end = g.EndDate.Format(models.DateLayout)
	}
	d, err := metrics.NewService(st, g.Today).Dashboard(metrics.Query{Start: start, End: end, Attribution: "last-click"})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, d)
	}
	fmt.Fprintf(out, "%s\n\n", format.DateRangeLabel("custom", start, end))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tCAMPAIGNS\tSPEND\tREVENUE\tROAS\tCPA\tCTR")
	for _, r := range d.Regions {
		k := r.KPIs
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", r.RegionLabel, r.CampaignCount,
			format.CurrencyExact(k.Spend), format.CurrencyExact(k.Revenue), format.Decimal(k.ROAS),
			format.Currency(k.CPA), format.Percent(k.CTR))
	}
	k := d.CurrentKPIs
	fmt.Fprintf(tw, "TOTAL\t%d\t%s\t%s\t%s\t%s\t%s\n", len(d.Campaigns),
		format.CurrencyExact(k.Spend), format.CurrencyExact(k.Revenue), format.Decimal(k.ROAS),
		format.Currency(k.CPA), format.Percent(k.CTR))
	return tw.Flush()
}

func runAnomalies(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ds, _ := st.Get()
	rows := ds.Anomalies
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, rows)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSEVERITY\tCAMPAIGN\tCHANNEL\tMETRIC\tZ")
	for _, a := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n", a.Date, a.Severity, a.Campaign, a.Channel, a.Metric, a.ZScore)
	}
	fmt.Fprintf(tw, "\n%d of %d anomalies\n", len(rows), len(ds.Anomalies))
	return tw.Flush()
}

func runAggregate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ds, _ := st.Get()
	c, ok := ds.Campaign(args[0])
	if !ok {
		return fmt.Errorf("campaign %q: %w", args[0], store.ErrNotFound)
	}
	g := st.Config()
	q := metrics.Query{
		Start:            from,
		End:              to,
		Compare:          compare,
		Attribution:      "last-click",
		SelectedCampaign: c.ID,
	}
	if q.Start == "" {
		q.Start = c.StartDate
	}
	if q.End == "" {
		q.End = g.EndDate.Format(models.DateLayout)
	}
	if channel != "" {
		ch := models.ChannelID(channel)
		if !c.HasChannel(ch) {
			return fmt.Errorf("channel %q on %q: %w", channel, c.ID, store.ErrNotFound)
		}
		q.Channels = []models.ChannelID{ch}
	}
	d, err := metrics.NewService(st, g.Today).Dashboard(q)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, map[string]any{"kpis": d.CurrentKPIs, "previous": d.PreviousKPIs, "deltas": d.Deltas})
	}
	fmt.Fprintf(out, "%s (%s)\n\n", c.Name, format.DateRangeLabel("custom", q.Start, q.End))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if compare {
		fmt.Fprintln(tw, "KPI\tVALUE\tPREVIOUS\tCHANGE")
	} else {
		fmt.Fprintln(tw, "KPI\tVALUE")
	}
	for _, kc := range models.KPIConfigs {
		v := d.CurrentKPIs.Metric(kc.Key)
		if !compare {
			fmt.Fprintf(tw, "%s\t%s\n", kc.Label, format.KPIValue(v, kc.Format))
			continue
		}
		dl := d.Deltas[kc.Key]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kc.Label, format.KPIValue(v, kc.Format),
			format.KPIValue(dl.PreviousValue, kc.Format), format.DeltaPercent(dl.DeltaPercent))
	}
	return tw.Flush()
}

func runNews(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ds, _ := st.Get()
	rows := ds.News
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, rows)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tURGENCY\tSOURCE\tTITLE")
	for _, n := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.Date, n.Urgency, n.Source, n.Title)
	}
	return tw.Flush()
}

func runInsights(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ds, _ := st.Get()
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, ds.Insights)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSCOPE\tREGION\tCONF\tTITLE")
	for _, in := range ds.Insights {
		region := "-"
		if in.Region != "" {
			region = catalog.RegionLabels[in.Region]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", in.ID, in.CreatedAt, in.Scope, region, in.Confidence, in.Title)
	}
	return tw.Flush()
}

func runChart(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ds, _ := st.Get()
	in, ok := ds.Insight(args[0])
	if !ok {
		return fmt.Errorf("insight %q: %w", args[0], store.ErrNotFound)
	}
	cd := content.InsightChart(in.ID, content.HintFor(in.Title))
	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return emitJSON(out, cd)
	}
	fmt.Fprintf(out, "%s: %s vs %s\n\n", in.Title, cd.PrimaryLabel, cd.SecondaryLabel)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AD SET\tCURRENT\tRECOMMENDED")
	for _, a := range cd.AdSets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, format.Currency(a.Current), format.Currency(a.Recommended))
	}
	return tw.Flush()
}
