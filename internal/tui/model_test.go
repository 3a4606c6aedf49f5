package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
	"docsearch/internal/service"
)

type fakeSearcher struct {
	topK    int
	results []domain.QueryResult
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ string, topK int) ([]domain.QueryResult, error) {
	f.topK = topK
	return f.results, f.err
}

func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	var tm tea.Model = m
	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	for _, r := range q {
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out, ok := tm.(Model)
	require.True(t, ok)
	return out
}

func TestEnterRunsSearch(t *testing.T) {
	fs := &fakeSearcher{results: []domain.QueryResult{
		{Name: "leave.txt", Path: "/docs/HR/leave.txt", Preview: "Annual leave accrues. Ask early.", Distance: 0.25},
		{Name: "budget.txt", Path: "/docs/Finance/budget.txt", Preview: "Budget notes.", Distance: 1.5},
	}}
	m := typeQuery(t, New(fs, Options{TopK: 2, Documents: 7}), "leave")

	assert.Equal(t, 2, fs.topK)
	assert.Len(t, m.results, 2)
	assert.Contains(t, m.status, `Top 2 results for "leave"`)

	view := m.renderResults()
	assert.Contains(t, view, "leave.txt")
	assert.Contains(t, view, "/docs/Finance/budget.txt")
	assert.Contains(t, view, "distance=0.2500")
	assert.Contains(t, m.View(), "7 documents")

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, tm.(Model).cursor)
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, tm.(Model).cursor)
}

func TestQueryErrorShownInStatus(t *testing.T) {
	fs := &fakeSearcher{err: &service.QueryError{Query: "x", Err: errors.New("provider down")}}
	m := typeQuery(t, New(fs, Options{}), "x")

	assert.Equal(t, 3, fs.topK)
	assert.Empty(t, m.results)
	assert.Equal(t, "Search failed: provider down", m.status)
	assert.Equal(t, "No results yet.", m.renderResults())
}

func TestEmptyInputDoesNotSearch(t *testing.T) {
	fs := &fakeSearcher{}
	m := typeQuery(t, New(fs, Options{}), "   ")
	assert.Equal(t, 0, fs.topK)
	assert.Equal(t, "Loaded. Type to search.", m.status)
}

func TestQuitKeys(t *testing.T) {
	m := New(&fakeSearcher{}, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
