package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/viacep"
)

func paulista() address.Record {
	return address.Record{
		PostalCode: "01310930",
		Street:     "Avenida Paulista",
		City:       "São Paulo",
		District:   "Bela Vista",
		StateCode:  "SP",
	}
}

func beginWith(t *testing.T, m *Machine, input string) Ticket {
	t.Helper()
	_, ok := m.Edit(input)
	require.True(t, ok)
	ticket, ok := m.Begin()
	require.True(t, ok)
	return ticket
}

func TestMachine_StartsIdle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, PhaseIdle, m.State().Phase)
	assert.Empty(t, m.Input())
	assert.False(t, m.InFlight())
	_, ok := m.Last()
	assert.False(t, ok)
}

func TestMachine_FoundScenario(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")

	assert.Equal(t, Loading("01310930"), m.State())
	assert.Equal(t, uint64(1), ticket.Seq)
	assert.Equal(t, "01310930", ticket.PostalCode)
	assert.True(t, m.InFlight())

	require.True(t, m.Resolve(ticket, viacep.Success(paulista())))

	st := m.State()
	assert.Equal(t, PhaseFound, st.Phase)
	assert.Equal(t, "Avenida Paulista", st.Record.Street)
	assert.Equal(t, "São Paulo", st.Record.City)
	assert.Equal(t, "Bela Vista", st.Record.District)
	assert.Equal(t, "SP", st.Record.StateCode)
	assert.False(t, m.InFlight())

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, paulista(), last)
}

func TestMachine_BlankRecordIsNotFound(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "00000000")

	require.True(t, m.Resolve(ticket, viacep.Success(address.Record{})))

	assert.Equal(t, NotFound("00000000"), m.State())
	_, ok := m.Last()
	assert.False(t, ok, "an invalid record must never be stored")
}

func TestMachine_PartiallyBlankRecordIsNotFound(t *testing.T) {
	rec := paulista()
	rec.District = "  "

	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Success(rec)))

	assert.Equal(t, PhaseNotFound, m.State().Phase)
}

func TestMachine_EmptyBodyIsNotFound(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "99999999")

	require.True(t, m.Resolve(ticket, viacep.EmptyBody()))
	assert.Equal(t, NotFound("99999999"), m.State())
}

func TestMachine_TransportErrorIsFailed(t *testing.T) {
	reason := viacep.NewNetworkError("connection failed", errors.New("boom"))

	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.TransportError(reason)))

	st := m.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, "01310930", st.PostalCode)
	assert.ErrorIs(t, st.Reason, reason)
	assert.True(t, st.Terminal())
}

func TestMachine_TransportErrorWithoutReason(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Outcome{Kind: viacep.OutcomeTransportError}))

	assert.Equal(t, PhaseFailed, m.State().Phase)
	assert.ErrorIs(t, m.State().Reason, errLookupFailed)
}

func TestMachine_UnknownOutcomeIsFailed(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Outcome{Kind: viacep.OutcomeKind(42)}))

	assert.Equal(t, PhaseFailed, m.State().Phase)
	assert.ErrorIs(t, m.State().Reason, errLookupFailed)
}

func TestMachine_BlankInputDoesNotBegin(t *testing.T) {
	for _, input := range []string{"", " ", "   \t"} {
		m := NewMachine()
		_, ok := m.Edit(input)
		require.True(t, ok)

		_, ok = m.Begin()
		assert.False(t, ok, "Begin with %q", input)
		assert.Equal(t, PhaseIdle, m.State().Phase)
		assert.False(t, m.InFlight())
	}
}

func TestMachine_OverlongEditIgnored(t *testing.T) {
	m := NewMachine()
	_, ok := m.Edit("0131093")
	require.True(t, ok)

	text, ok := m.Edit("013109301")
	assert.False(t, ok)
	assert.Equal(t, "0131093", text)
	assert.Equal(t, "0131093", m.Input())
}

func TestMachine_OverlongEditKeepsTerminalState(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Success(paulista())))

	_, ok := m.Edit("013109301")
	assert.False(t, ok)
	assert.Equal(t, PhaseFound, m.State().Phase)
}

func TestMachine_EditAfterFailedReturnsToIdle(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.TransportError(errors.New("offline"))))

	_, ok := m.Edit("0131093")
	require.True(t, ok)
	assert.Equal(t, PhaseIdle, m.State().Phase)
	assert.Nil(t, m.State().Reason)
}

func TestMachine_EditAfterFoundKeepsLast(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Success(paulista())))

	_, ok := m.Edit("0131093")
	require.True(t, ok)
	assert.Equal(t, PhaseIdle, m.State().Phase)
	_, held := m.Last()
	assert.True(t, held)
}

func TestMachine_BlankEditClearsEverything(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(ticket, viacep.Success(paulista())))

	next := beginWith(t, m, "04538133")
	_, ok := m.Edit("")
	require.True(t, ok)

	assert.Equal(t, PhaseIdle, m.State().Phase)
	assert.False(t, m.InFlight())
	_, held := m.Last()
	assert.False(t, held)

	assert.False(t, m.Resolve(next, viacep.Success(paulista())), "abandoned request must be discarded")
	assert.Equal(t, PhaseIdle, m.State().Phase)
}

func TestMachine_EditWhileLoadingStaysLoading(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")

	_, ok := m.Edit("0131093")
	require.True(t, ok)
	assert.Equal(t, Loading("01310930"), m.State())
	assert.Equal(t, "0131093", m.Input())

	require.True(t, m.Resolve(ticket, viacep.Success(paulista())))
	assert.Equal(t, PhaseFound, m.State().Phase)
}

func TestMachine_StaleResultDiscarded(t *testing.T) {
	m := NewMachine()
	first := beginWith(t, m, "01310930")
	second := beginWith(t, m, "04538133")

	assert.Greater(t, second.Seq, first.Seq)

	assert.False(t, m.Resolve(first, viacep.Success(paulista())))
	assert.Equal(t, Loading("04538133"), m.State())

	require.True(t, m.Resolve(second, viacep.EmptyBody()))
	assert.Equal(t, NotFound("04538133"), m.State())
}

func TestMachine_ResultAppliedOnce(t *testing.T) {
	m := NewMachine()
	ticket := beginWith(t, m, "01310930")

	require.True(t, m.Resolve(ticket, viacep.EmptyBody()))
	assert.False(t, m.Resolve(ticket, viacep.Success(paulista())))
	assert.Equal(t, PhaseNotFound, m.State().Phase)
}

func TestMachine_ZeroTicketIgnored(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.Resolve(Ticket{}, viacep.Success(paulista())))
	assert.Equal(t, PhaseIdle, m.State().Phase)
}

func TestMachine_RepeatSearchFromTerminal(t *testing.T) {
	m := NewMachine()
	first := beginWith(t, m, "01310930")
	require.True(t, m.Resolve(first, viacep.TransportError(errors.New("offline"))))

	retry, ok := m.Begin()
	require.True(t, ok)
	assert.Equal(t, first.Seq+1, retry.Seq)
	assert.Equal(t, Loading("01310930"), m.State())

	require.True(t, m.Resolve(retry, viacep.Success(paulista())))
	assert.Equal(t, PhaseFound, m.State().Phase)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Idle(), "idle"},
		{Loading("01310930"), "loading(01310930)"},
		{Found(paulista()), "found(01310930)"},
		{NotFound("00000000"), "not_found(00000000)"},
		{Failed("01310930", errors.New("offline")), "failed(01310930: offline)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestState_Terminal(t *testing.T) {
	assert.False(t, Idle().Terminal())
	assert.False(t, Loading("1").Terminal())
	assert.True(t, Found(paulista()).Terminal())
	assert.True(t, NotFound("1").Terminal())
	assert.True(t, Failed("1", errors.New("x")).Terminal())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
