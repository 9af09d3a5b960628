package lookup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muurk/buscacep/internal/address"
)

func record(code string) address.Record {
	r := paulista()
	r.PostalCode = code
	return r
}

func TestHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Add(record(fmt.Sprintf("%08d", i)))
	}
	assert.Equal(t, DefaultHistorySize, h.Len())
}

func TestHistory_DedupesByPostalCode(t *testing.T) {
	h := NewHistory(5)
	h.Add(record("01310930"))
	h.Add(record("04538133"))
	h.Add(record("01310-930"))

	got := h.Records()
	assert.Len(t, got, 2)
	assert.Equal(t, "01310-930", got[0].PostalCode)
	assert.Equal(t, "04538133", got[1].PostalCode)
}

func TestHistory_RecordsIsACopy(t *testing.T) {
	h := NewHistory(3)
	h.Add(record("01310930"))

	got := h.Records()
	got[0].Street = "changed"

	assert.Equal(t, "Avenida Paulista", h.Records()[0].Street)
}
