package leaderboardservice

import (
	"bytes"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used for rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Accent     drawing.Color
	TextColor  drawing.Color
}

// DefaultPalette is the site's dark theme.
func DefaultPalette() ChartPalette {
	return ChartPalette{
		Background: drawing.ColorFromHex("0f172a"),
		Bar:        drawing.ColorFromHex("22c55e"),
		Accent:     drawing.ColorFromHex("facc15"),
		TextColor:  drawing.ColorFromHex("e2e8f0"),
	}
}

// GenerateWagerChart produces a PNG bar chart of total wager per ranked player.
// Rewarded ranks are drawn in the accent color.
func GenerateWagerChart(entries []leaderboarddomain.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		if e.Rank == nil {
			continue
		}
		fill := palette.Bar
		if e.Reward.IsPositive() {
			fill = palette.Accent
		}
		bars = append(bars, chart.Value{
			Label: e.Username,
			Value: e.TotalWager.InexactFloat64(),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	if len(bars) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	graph := chart.BarChart{
		Title:      "Wagered this period",
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      1024,
		Height:     480,
		BarWidth:   32,
		BarSpacing: 12,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor:           palette.TextColor,
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.TextColor},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws a single empty bar on a fixed axis.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	graph := chart.BarChart{
		Title:      "No wagers yet",
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.Style{FontColor: palette.TextColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []chart.Value{{Label: "-", Value: 0}},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
