package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/networth/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an SVG chart per target.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"goal": FormatGoal,
	"date": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}).Parse(htmlTemplateSource))

const (
	svgWidth  = 720.0
	svgHeight = 240.0
)

// chartLine is one polyline of the SVG chart
type chartLine struct {
	Name   string
	Color  string
	Points string
}

// chartView is the SVG chart of one target across all scenarios
type chartView struct {
	Title      string
	Width      float64
	Height     float64
	Lines      []chartLine
	ThresholdY float64
}

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Recommendation Recommendation
		Charts         []chartView
	}{report, AnalyzeScenarios(report.Comparison), buildCharts(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var svgColors = []string{"#DA702C", "#4385BE", "#879A39", "#CE5D97"}

func buildCharts(report *Report) []chartView {
	set := report.Comparison
	if set == nil || len(set.Results) == 0 {
		return nil
	}

	var charts []chartView
	for idx, first := range set.Results[0].Outcomes() {
		var results []*domain.SimulationResult
		for i := range set.Results {
			results = append(results, set.Results[i].Outcomes()[idx].Result)
		}

		target := first.Target.Amount.InexactFloat64()
		lo, hi := target, target
		for _, r := range results {
			for _, v := range r.NetWorthSeries() {
				lo = min(lo, v)
				hi = max(hi, v)
			}
		}
		if hi == lo {
			hi = lo + 1
		}
		scaleY := func(v float64) float64 { return svgHeight - (v-lo)/(hi-lo)*svgHeight }

		view := chartView{
			Title:      first.Target.Name,
			Width:      svgWidth,
			Height:     svgHeight,
			ThresholdY: scaleY(target),
		}
		for i, r := range results {
			series := r.NetWorthSeries()
			var pts []string
			for m, v := range series {
				x := 0.0
				if len(series) > 1 {
					x = float64(m) / float64(len(series)-1) * svgWidth
				}
				pts = append(pts, formatPoint(x, scaleY(v)))
			}
			view.Lines = append(view.Lines, chartLine{
				Name:   set.Results[i].ScenarioName,
				Color:  svgColors[i%len(svgColors)],
				Points: strings.Join(pts, " "),
			})
		}
		charts = append(charts, view)
	}
	return charts
}

func formatPoint(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64) + "," + strconv.FormatFloat(y, 'f', 1, 64)
}
