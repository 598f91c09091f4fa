package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chromatic/pkg/bench"
	"github.com/matzehuels/chromatic/pkg/results"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tableHeadStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorder     = lipgloss.NewStyle().Foreground(colorDim)
	tableCellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableValidStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGreen)
	tableErrorStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorRed)
)

// =============================================================================
// BenchModel - Interactive benchmark browser
// =============================================================================

// BenchModel is the bubbletea model for browsing a benchmark report. The
// top level lists algorithm summaries; enter drills into the runs of the
// selected algorithm.
type BenchModel struct {
	Report *bench.Report
	Cursor int
	Height int
	Offset int

	// Detail is the algorithm whose runs are shown, or "" for the summary.
	Detail string
	runs   []results.Record
}

// NewBenchModel creates a browser for report.
func NewBenchModel(report *bench.Report) BenchModel {
	return BenchModel{Report: report, Height: 15}
}

func (m BenchModel) Init() tea.Cmd {
	return nil
}

func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.Detail == "" {
				return m, tea.Quit
			}
			m.Cursor = m.indexOf(m.Detail)
			m.Detail, m.runs, m.Offset = "", nil, 0
			m.scroll()
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.scroll()
			}
		case "down", "j":
			if m.Cursor < m.rows()-1 {
				m.Cursor++
				m.scroll()
			}
		case "enter":
			if m.Detail == "" && len(m.Report.Summaries) > 0 {
				m.Detail = m.Report.Summaries[m.Cursor].Algorithm
				m.runs = runsOf(m.Report.Records, m.Detail)
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m BenchModel) View() string {
	var b strings.Builder

	if m.Detail == "" {
		b.WriteString(StyleTitle.Render("Benchmark Summary"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ runs  q quit"))
	} else {
		b.WriteString(StyleTitle.Render("Runs of " + m.Detail))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  esc back  q quit"))
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, m.rows())
	var t *table.Table
	if m.Detail == "" {
		t = summaryTable(m.Report.Summaries[m.Offset:end], m.Cursor-m.Offset)
	} else {
		t = recordTable(m.runs[m.Offset:end], m.Cursor-m.Offset)
	}
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d runs in %s",
		m.Cursor+1, m.rows(), len(m.Report.Records), m.Report.Elapsed.Round(time.Millisecond))))

	return b.String()
}

func (m BenchModel) rows() int {
	if m.Detail == "" {
		return len(m.Report.Summaries)
	}
	return len(m.runs)
}

func (m *BenchModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BenchModel) indexOf(algorithm string) int {
	for i, s := range m.Report.Summaries {
		if s.Algorithm == algorithm {
			return i
		}
	}
	return 0
}

func runsOf(records []results.Record, algorithm string) []results.Record {
	var out []results.Record
	for _, r := range records {
		if r.Algorithm == algorithm {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// Tables
// =============================================================================

// summaryTable renders summaries; the row at cursor is highlighted, and a
// negative cursor highlights nothing.
func summaryTable(summaries []bench.Summary, cursor int) *table.Table {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		best := "—"
		if s.BestColors > 0 {
			best = fmt.Sprint(s.BestColors)
		}
		rows[i] = []string{
			s.Algorithm,
			fmt.Sprint(s.Runs),
			fmt.Sprintf("%.2f", s.MeanColors),
			best,
			fmt.Sprintf("%.0f%%", s.ValidRate*100),
			fmt.Sprint(s.OptimalRuns),
			fmt.Sprintf("%.1f", s.MeanElapsedMS),
		}
	}
	return newTable("Algorithm", "Runs", "Mean colors", "Best", "Valid", "Optimal", "Mean ms").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeadStyle.Padding(0, 1)
			}
			style := tableCellStyle
			if col == 4 && summaries[row].ValidRate < 1 {
				style = tableErrorStyle
			}
			if row == cursor {
				style = style.Bold(true).Foreground(colorCyan)
			}
			return style
		})
}

// recordTable renders individual runs.
func recordTable(records []results.Record, cursor int) *table.Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		status := "valid"
		if !r.Valid {
			status = fmt.Sprintf("%d conflicts", r.Conflicts)
		}
		if r.Optimal {
			status += ", optimal"
		}
		rows[i] = []string{
			r.Graph,
			fmt.Sprint(r.Seed),
			fmt.Sprint(r.Colors),
			status,
			fmt.Sprint(r.Iterations),
			fmt.Sprintf("%.1f", r.ElapsedMS),
		}
	}
	return newTable("Graph", "Seed", "Colors", "Status", "Iterations", "ms").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeadStyle.Padding(0, 1)
			}
			style := tableCellStyle
			if col == 3 {
				style = tableValidStyle
				if !records[row].Valid {
					style = tableErrorStyle
				}
			}
			if row == cursor {
				style = style.Bold(true)
				if col != 3 {
					style = style.Foreground(colorCyan)
				}
			}
			return style
		})
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers(headers...)
}
