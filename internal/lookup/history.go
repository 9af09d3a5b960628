package lookup

import "github.com/muurk/buscacep/internal/address"

// DefaultHistorySize is how many found records a session keeps.
const DefaultHistorySize = 10

// History is the newest-first list of records found during a session.
// A record found again moves to the front instead of repeating.
type History struct {
	size    int
	records []address.Record
}

// NewHistory keeps at most size records; size <= 0 uses DefaultHistorySize.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add records r at the front.
func (h *History) Add(r address.Record) {
	key := r.Key()
	kept := make([]address.Record, 0, h.size)
	kept = append(kept, r)
	for _, existing := range h.records {
		if len(kept) == h.size {
			break
		}
		if existing.Key() != key {
			kept = append(kept, existing)
		}
	}
	h.records = kept
}

// Records returns a copy, newest first.
func (h *History) Records() []address.Record {
	out := make([]address.Record, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of records held.
func (h *History) Len() int { return len(h.records) }
