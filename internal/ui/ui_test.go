package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/viacep"
)

func paulista() address.Record {
	return address.Record{
		PostalCode: "01310930",
		Street:     "Avenida Paulista",
		City:       "São Paulo",
		District:   "Bela Vista",
		StateCode:  "SP",
		DDD:        "11",
	}
}

func TestStateResult_Found(t *testing.T) {
	r := StateResult(lookup.Found(paulista()))
	require.NotNil(t, r)
	assert.Equal(t, ResultSuccess, r.Type)
	assert.Equal(t, "01310-930", r.Title)

	out := r.SetWidth(100).Render()
	assert.Contains(t, out, "FOUND")
	assert.Contains(t, out, "Avenida Paulista")
	assert.Contains(t, out, "Bela Vista")
	assert.Contains(t, out, "DDD:")
	assert.NotContains(t, out, "IBGE:")
}

func TestStateResult_NotFound(t *testing.T) {
	r := StateResult(lookup.NotFound("00000000"))
	require.NotNil(t, r)
	assert.Equal(t, ResultWarning, r.Type)

	out := r.SetWidth(100).Render()
	assert.Contains(t, out, "NOT FOUND")
	assert.Contains(t, out, "00000-000")
	assert.NotContains(t, out, "Troubleshooting")
}

func TestStateResult_Failed(t *testing.T) {
	reason := viacep.NewNetworkError("request failed", errors.New("dial tcp: i/o timeout"))
	r := StateResult(lookup.Failed("01310930", reason))
	require.NotNil(t, r)
	assert.Equal(t, ResultFailure, r.Type)
	assert.NotEmpty(t, r.Troubleshooting)

	out := r.SetWidth(100).Render()
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Troubleshooting:")
	assert.Contains(t, out, "Error:")
}

func TestStateResult_NoBoxForIdleOrLoading(t *testing.T) {
	assert.Nil(t, StateResult(lookup.Idle()))
	assert.Nil(t, StateResult(lookup.Loading("01310930")))
}

func TestResult_DetailsKeepOrder(t *testing.T) {
	r := NewSuccessResult("x", nil).
		AddDetail("First", "1").
		AddDetail("Second", "2").
		AddDetail("Third", "3").
		SetWidth(80)

	out := r.Render()
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	third := strings.Index(out, "Third")
	assert.True(t, first < second && second < third, "details out of order:\n%s", out)
}

func TestHeader_Render(t *testing.T) {
	out := NewHeader("address search", "buscacep search SP Campinas Brasil",
		Detail{Key: "Service", Value: "https://viacep.com.br/ws"}).
		SetWidth(80).
		Render()

	assert.Contains(t, out, "ADDRESS SEARCH")
	assert.Contains(t, out, "buscacep search")
	assert.Contains(t, out, "Service:")
}

func TestProgress_Counts(t *testing.T) {
	p := NewProgress("Looking up 3 postal codes", []string{"01310930", "00000000", "55555555"})
	assert.Zero(t, p.Percent)

	p.UpdateStep(1, StepStatusFor(lookup.PhaseFound), "São Paulo/SP")
	p.UpdateStep(2, StepStatusFor(lookup.PhaseNotFound), "")
	p.UpdateStep(3, StepStatusFor(lookup.PhaseFailed), "timeout")
	p.UpdateStep(9, StepComplete, "ignored")

	found, missed, failed := p.Counts()
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, missed)
	assert.Equal(t, 1, failed)
	assert.InDelta(t, 1.0, p.Percent, 0.0001)

	out := p.SetWidth(80).Render()
	assert.Contains(t, out, "[1/3] 01310930")
	assert.Contains(t, out, "(timeout)")
	assert.Contains(t, out, "1 found, 1 not found, 1 failed")
}

func TestStepStatusFor(t *testing.T) {
	assert.Equal(t, StepPending, StepStatusFor(lookup.PhaseIdle))
	assert.Equal(t, StepRunning, StepStatusFor(lookup.PhaseLoading))
}

func TestPrinter_PrintState(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintState(lookup.Idle())
	assert.Empty(t, buf.String())

	p.PrintState(lookup.Found(paulista()))
	assert.Contains(t, buf.String(), "Avenida Paulista")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := ConfirmOverwrite(strings.NewReader(tt.input), &out, "/tmp/config.yaml")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "CONFIG FILE EXISTS")
	}
}
