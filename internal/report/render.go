package report

import (
	"fmt"
	"math"
	"strings"
)

// RenderText formats the report as plain text for the terminal, Telegram and
// the narration prompt.
func (r *Report) RenderText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Funding flow report — %s, interval %s, window %d bars\n",
		r.GeneratedAt.Format("2006-01-02 15:04 MST"), r.Interval, r.WindowSize)

	for _, s := range r.Symbols {
		fmt.Fprintf(&sb, "\n== %s ==\n", s.Symbol)
		renderMarket(&sb, "Spot", s.Spot)
		renderMarket(&sb, "Futures", s.Futures)
		if s.Comparison != nil {
			fmt.Fprintf(&sb, "Spot vs futures: price diff %+.2f%%, volume ratio %.2f, net inflow diff %+.2f\n",
				s.Comparison.PriceDiffPct, s.Comparison.VolumeRatio, s.Comparison.NetInflowDiff)
		}
	}
	return sb.String()
}

func renderMarket(sb *strings.Builder, label string, m *MarketAnalysis) {
	if m == nil {
		fmt.Fprintf(sb, "%s: data unavailable\n", label)
		return
	}

	fmt.Fprintf(sb, "%s: stage %s, trend %s (confidence %.0f%%)\n",
		label, m.Trend.Stage, m.Trend.Trend, m.Trend.Confidence*100)
	fmt.Fprintf(sb, "  net inflow: total %+.2f, last 10 bars %+.2f\n",
		m.Trend.NetInflowTotal, m.Trend.NetInflowRecent)
	for _, reason := range m.Trend.Reasons {
		fmt.Fprintf(sb, "  - %s\n", reason)
	}

	ratio := "unbounded"
	if !math.IsInf(m.Book.PressureRatio, 1) {
		ratio = fmt.Sprintf("%.3f", m.Book.PressureRatio)
	}
	fmt.Fprintf(sb, "  book: imbalance %+.3f, pressure ratio %s, spread %.4f%%\n",
		m.Book.Imbalance, ratio, m.Book.SpreadPct)

	strength := ""
	if m.Pressure.Strong {
		strength = " (strong)"
	}
	fmt.Fprintf(sb, "  pressure: %s%s, confidence %.0f%%\n",
		m.Pressure.Direction, strength, m.Pressure.Confidence*100)

	if m.Anomalies.HasAnomalies {
		fmt.Fprintf(sb, "  anomalies: %d\n", len(m.Anomalies.Records))
		for _, rec := range m.Anomalies.Records {
			fmt.Fprintf(sb, "  ! %s %s at %s (deviation %+.2f)\n",
				rec.Side, rec.Kind, rec.Time.Format("01-02 15:04"), rec.Deviation)
		}
	}
}
