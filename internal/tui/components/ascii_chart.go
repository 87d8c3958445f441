package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
)

const yAxisWidth = 10

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart renders one or more monthly series as a line chart, with an
// optional horizontal threshold (the goal amount)
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string

	threshold    float64
	hasThreshold bool
	plain        bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = max(width, yAxisWidth+10)
	c.Height = max(height, 3)
	return c
}

// WithThreshold draws a dashed horizontal line at value
func (c *ASCIIChart) WithThreshold(value float64) *ASCIIChart {
	c.threshold = value
	c.hasThreshold = true
	return c
}

// Plain disables ANSI styling, for file output
func (c *ASCIIChart) Plain() *ASCIIChart {
	c.plain = true
	return c
}

func (c *ASCIIChart) style(s lipgloss.Style, text string) string {
	if c.plain {
		return text
	}
	return s.Render(text)
}

// Render returns the chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.pointCount() == 0 {
		return c.style(tuistyles.InfoStyle, "No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(c.style(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary), c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString(strings.Repeat(" ", yAxisWidth+3))
		content.WriteString(c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true), c.XAxisLabel))
		content.WriteString("\n")
	}

	if c.ShowLegend && (len(c.Series) > 1 || c.hasThreshold) {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
		content.WriteString("\n")
	}

	return content.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, len(s.Points))
	}
	return n
}

// bounds returns the value range with 10% padding, including the threshold
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if c.hasThreshold {
		lo = math.Min(lo, c.threshold)
		hi = math.Max(hi, c.threshold)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	chartWidth := c.Width - yAxisWidth - 3
	n := c.pointCount()

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	toX := func(i int) int {
		if n <= 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}
	toY := func(v float64) int {
		return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
	}

	if c.hasThreshold {
		y := toY(c.threshold)
		for x := 0; x < chartWidth; x += 2 {
			grid[y][x] = '┄'
		}
	}

	for idx, s := range c.Series {
		char := seriesChar(idx)
		for i, p := range s.Points {
			x, y := toX(i), toY(p)
			if i > 0 {
				drawLine(grid, toX(i-1), toY(s.Points[i-1]), x, y)
			}
			grid[y][x] = char
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for i, row := range grid {
		value := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		out.WriteString(c.style(axisStyle, fmt.Sprintf("%*s", yAxisWidth, formatChartValue(value))))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth+1))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(chartWidth, toX))
	}

	return out.String()
}

// renderXAxisLabels places up to five labels under their points
func (c *ASCIIChart) renderXAxisLabels(chartWidth int, toX func(int) int) string {
	const maxLabels = 5

	line := []rune(strings.Repeat(" ", chartWidth+12))
	step := max(1, (len(c.Labels)+maxLabels-1)/maxLabels)
	next := 0
	for i := 0; i < len(c.Labels); i += step {
		x := toX(i)
		if x < next {
			continue
		}
		label := []rune(c.Labels[i])
		if x+len(label) > len(line) {
			break
		}
		copy(line[x:], label)
		next = x + len(label) + 1
	}

	return strings.Repeat(" ", yAxisWidth+3) + strings.TrimRight(string(line), " ") + "\n"
}

func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, s := range c.Series {
		symbol := c.style(lipgloss.NewStyle().Foreground(s.Color), string(seriesChar(i)))
		items = append(items, symbol+" "+s.Name)
	}
	if c.hasThreshold {
		items = append(items, "┄ target "+formatChartValue(c.threshold))
	}
	return c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted), "Legend: "+strings.Join(items, " • "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two grid cells using Bresenham's algorithm, leaving
// already drawn cells untouched
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = '·'
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// formatChartValue formats a value for display on the Y-axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
