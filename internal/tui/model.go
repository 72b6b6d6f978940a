package tui

import (
	"math"
	"strings"

	"sol-ticker/internal/chart"
	"sol-ticker/internal/domain"
	"sol-ticker/internal/service"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 60
	defaultHeight = 16

	// header (title, price, updated) + blank + date row + help
	chromeRows   = 6
	minChartRows = 3
	minChartCols = 10
)

// PriceSource is the widget's view of the displayed state.
type PriceSource interface {
	Snapshot() service.Snapshot
	Subscribe() (<-chan struct{}, func())
}

type stateChangedMsg struct{}

// Model is the Bubble Tea widget: current price on top, 30-day chart below.
type Model struct {
	source      PriceSource
	styles      Styles
	spinner     spinner.Model
	updates     <-chan struct{}
	unsubscribe func()
	snap        service.Snapshot
	width       int
	height      int
}

// NewModel subscribes to source immediately; call Close when the program ends.
func NewModel(source PriceSource, renderer *lipgloss.Renderer) Model {
	styles := NewStyles(renderer)
	updates, unsubscribe := source.Subscribe()
	return Model{
		source:      source,
		styles:      styles,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		updates:     updates,
		unsubscribe: unsubscribe,
		snap:        source.Snapshot(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
}

func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

// Close drops the state subscription. Safe to call more than once.
func (m Model) Close() {
	m.unsubscribe()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForChange(m.updates))
}

func waitForChange(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Close()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case stateChangedMsg:
		m.snap = m.source.Snapshot()
		return m, waitForChange(m.updates)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(domain.AssetSymbol+" / "+strings.ToUpper(domain.Currency)) + "\n")
	b.WriteString(m.priceView() + "\n\n")
	b.WriteString(m.chartView() + "\n")
	b.WriteString(m.styles.Muted.Render("q quit"))
	return m.styles.Frame.Render(b.String())
}

func (m Model) priceView() string {
	p := m.snap.Price
	switch p.Status {
	case service.StatusLoading:
		return m.spinner.View() + " Loading price..."
	case service.StatusError:
		out := m.styles.Error.Render("Error fetching price")
		if p.Err != nil {
			out += "\n" + m.styles.Muted.Render(p.Err.Error())
		}
		return out
	default:
		return m.styles.Price.Render(chart.FormatPriceLabel(p.Price)) + "\n" +
			m.styles.Muted.Render("updated "+p.UpdatedAt.Format("15:04:05"))
	}
}

func (m Model) chartView() string {
	h := m.snap.History
	switch h.Status {
	case service.StatusLoading:
		return m.spinner.View() + " Loading historical data..."
	case service.StatusError:
		return m.styles.Error.Render("Error fetching historical data")
	}
	if len(h.Series) == 0 {
		return m.styles.Muted.Render("No historical data")
	}

	layout := chart.Compute(h.Series, 0, 0, 0)
	gutter := max(lipgloss.Width(layout.PriceLabels[0].Text), lipgloss.Width(layout.PriceLabels[1].Text)) + 1
	cols := max(m.width-gutter-4, minChartCols)
	rows := max(m.height-chromeRows-2, minChartRows)

	plot := m.styles.Line.Render(strings.Join(plotSeries(h.Series, cols, rows), "\n"))

	labels := make([]string, rows)
	labels[0] = layout.PriceLabels[0].Text
	labels[rows-1] = layout.PriceLabels[1].Text
	axis := m.styles.Axis.Width(gutter).Align(lipgloss.Right).PaddingRight(1).Render(strings.Join(labels, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, axis, plot)
	dates := dateRow(layout.DateLabels[0].Text, layout.DateLabels[1].Text, cols)
	return body + "\n" + strings.Repeat(" ", lipgloss.Width(axis)) + m.styles.Muted.Render(dates)
}

// plotSeries draws series onto a cols x rows braille canvas. The geometry
// works in dot space with no padding; labels are drawn outside the canvas.
func plotSeries(series domain.PriceSeries, cols, rows int) []string {
	canvas := newBrailleCanvas(cols, rows)
	w, h := canvas.dotSize()
	layout := chart.Compute(series, float64(w-1), float64(h-1), 0)

	prevX, prevY, havePrev := 0, 0, false
	for _, p := range layout.Points {
		if !finite(p.X) || !finite(p.Y) {
			havePrev = false
			continue
		}
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if havePrev {
			canvas.line(prevX, prevY, x, y)
		} else {
			canvas.set(x, y)
		}
		prevX, prevY, havePrev = x, y, true
	}
	return canvas.lines()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func dateRow(first, last string, width int) string {
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		return first
	}
	return first + strings.Repeat(" ", gap) + last
}
