package tui

import (
	"context"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/viacep"
)

type fakeClient struct {
	outcomes map[string]viacep.Outcome
	calls    atomic.Int32
}

func (c *fakeClient) Lookup(_ context.Context, code string) viacep.Outcome {
	c.calls.Add(1)
	if out, ok := c.outcomes[code]; ok {
		return out
	}
	return viacep.EmptyBody()
}

func newTestModel(t *testing.T) (SearchModel, *fakeClient) {
	t.Helper()
	client := &fakeClient{outcomes: map[string]viacep.Outcome{
		"01310930": viacep.Success(address.Record{
			PostalCode: "01310930",
			Street:     "Avenida Paulista",
			City:       "São Paulo",
			District:   "Bela Vista",
			StateCode:  "SP",
		}),
		"55555555": viacep.TransportError(viacep.NewHTTPError(503)),
	}}
	session := lookup.NewSession(client)
	t.Cleanup(session.Close)

	m := NewSearchModel(context.Background(), session)
	m.Width = 80
	m.Height = 40
	return m, client
}

func update(t *testing.T, m SearchModel, msg tea.Msg) (SearchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SearchModel)
	require.True(t, ok)
	return sm, cmd
}

func typeText(t *testing.T, m SearchModel, s string) SearchModel {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// drain runs cmd, expanding batches, and returns the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// search presses enter and feeds the lookup result back into the model.
func search(t *testing.T, m SearchModel) SearchModel {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, lookup.PhaseLoading, m.Session.State().Phase)
	assert.Contains(t, m.View(), "Looking up")

	var delivered bool
	for _, msg := range drain(cmd) {
		if res, ok := msg.(lookupResultMsg); ok {
			m, _ = update(t, m, res)
			delivered = true
		}
	}
	require.True(t, delivered, "no lookup result delivered")
	return m
}

func TestSearchModel_TypingUpdatesSession(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "0131")

	assert.Equal(t, "0131", m.Input.Value())
	assert.Equal(t, "0131", m.Session.Input())
}

func TestSearchModel_NinthCharacterIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "013109301")

	assert.Equal(t, "01310930", m.Input.Value())
	assert.Equal(t, "01310930", m.Session.Input())
}

func TestSearchModel_OverlongPasteIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "013")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1093012")})

	assert.Equal(t, "013", m.Input.Value())
	assert.Equal(t, "013", m.Session.Input())
}

func TestSearchModel_Found(t *testing.T) {
	m, client := newTestModel(t)
	m = typeText(t, m, "01310930")
	m = search(t, m)

	assert.Equal(t, lookup.PhaseFound, m.Session.State().Phase)
	assert.Equal(t, int32(1), client.calls.Load())

	view := m.View()
	assert.Contains(t, view, "Address found")
	assert.Contains(t, view, "Avenida Paulista")
	assert.Contains(t, view, "Recent")
}

func TestSearchModel_NotFound(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "00000000")
	m = search(t, m)

	assert.Equal(t, lookup.PhaseNotFound, m.Session.State().Phase)
	assert.Contains(t, m.View(), "No address found")
}

func TestSearchModel_Failed(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "55555555")
	m = search(t, m)

	assert.Equal(t, lookup.PhaseFailed, m.Session.State().Phase)
	view := m.View()
	assert.Contains(t, view, "Lookup failed")
	assert.Contains(t, view, "Troubleshooting")
}

func TestSearchModel_EmptySearchDoesNothing(t *testing.T) {
	m, client := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, lookup.PhaseIdle, m.Session.State().Phase)
	assert.Zero(t, client.calls.Load())
}

func TestSearchModel_ClearReturnsToIdle(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "01310930")
	m = search(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Input.Value())
	assert.Equal(t, lookup.PhaseIdle, m.Session.State().Phase)
}

func TestSearchModel_EditAfterResultReturnsToIdle(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "55555555")
	m = search(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "5555555", m.Session.Input())
	assert.Equal(t, lookup.PhaseIdle, m.Session.State().Phase)
	assert.NotContains(t, m.View(), "Lookup failed")
}

func TestSearchModel_StaleResultIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "01310930")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	firstMsgs := drain(first)
	secondMsgs := drain(second)

	for _, msg := range secondMsgs {
		if res, ok := msg.(lookupResultMsg); ok {
			m, _ = update(t, m, res)
		}
	}
	require.Equal(t, lookup.PhaseFound, m.Session.State().Phase)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	for _, msg := range firstMsgs {
		if res, ok := msg.(lookupResultMsg); ok {
			m, _ = update(t, m, res)
		}
	}
	assert.Equal(t, lookup.PhaseIdle, m.Session.State().Phase, "stale result must not be applied")
}

func TestSearchModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSearchModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Equal(t, 90, m.Width)
	assert.Equal(t, 30, m.Height)
	assert.Contains(t, m.View(), AppName)
}

func TestSearchModel_SpinnerStopsWhenIdle(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, m.Spinner.Tick())
	assert.Nil(t, cmd)
}
