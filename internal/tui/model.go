package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsearch/internal/domain"
	"docsearch/internal/service"
	"docsearch/internal/summarizer"
)

// Options configures the model.
type Options struct {
	TopK      int
	Documents int
	Summary   string
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	searcher  domain.Searcher
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.QueryResult
	header    string
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
	sentences *summarizer.FrequencySummarizer
}

// New creates a new TUI model instance.
func New(searcher domain.Searcher, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a search query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	topK := opts.TopK
	if topK <= 0 {
		topK = 3
	}
	return Model{
		searcher:  searcher,
		topK:      topK,
		input:     ti,
		viewport:  vp,
		header:    fmt.Sprintf("Document Search (%d documents)", opts.Documents),
		summary:   opts.Summary,
		status:    "Loaded. Type to search.",
		sentences: summarizer.NewFrequencySummarizer(),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, summary, status, spacer
		vh := max(3, msg.Height-reserved)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.runQuery(q)
				m.viewport.SetContent(m.renderResults())
				m.viewport.GotoTop()
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runQuery(q string) {
	res, err := m.searcher.Search(context.Background(), q, m.topK)
	m.cursor = 0
	m.lastQuery = q
	if err != nil {
		var qe *service.QueryError
		if errors.As(err, &qe) {
			m.status = "Search failed: " + qe.Err.Error()
		} else {
			m.status = "Error: " + err.Error()
		}
		m.results = nil
		return
	}
	m.results = res
	if len(res) == 0 {
		m.status = fmt.Sprintf("No results for %q", q)
		return
	}
	m.status = fmt.Sprintf("Top %d results for %q", len(res), q)
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.header)
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	for i, r := range m.results {
		marker := "  "
		title := fmt.Sprintf("%d. %s", i+1, r.Name)
		if i == m.cursor {
			marker = "> "
			title = selectedStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s  distance=%.4f\n", marker, title, r.Distance)
		fmt.Fprintf(&b, "   %s\n", pathStyle.Render(r.Path))
		if i == m.cursor {
			fmt.Fprintf(&b, "\n%s\n", m.highlight(r.Preview))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// highlight emphasises the preview sentence closest to the last query.
func (m Model) highlight(preview string) string {
	best := m.sentences.BestSentence(preview, m.lastQuery)
	if best == "" {
		return preview
	}
	return strings.Replace(preview, best, highlightStyle.Render(best), 1)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
