package collision

import (
	"fmt"
	"strings"

	"github.com/arloliu/fitskit/errs"
	"github.com/arloliu/fitskit/internal/hash"
)

// Tracker detects duplicate column names while a table description is assembled.
//
// FITS column names compare case-insensitively, so names are folded to upper case and
// indexed by their xxHash64. Two different names sharing a hash are both kept and the
// collision flag is set.
type Tracker struct {
	names        map[uint64][]string // folded-name hash -> folded names
	ordered      []string            // names in tracking order, as given
	hasCollision bool
}

// NewTracker creates a new name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64][]string),
		ordered: make([]string, 0),
	}
}

// Track records a column name.
//
// Returns:
//   - error: errs.ErrFormat for an empty name, errs.ErrDuplicateColumn if the name
//     (ignoring case) was already tracked
func (t *Tracker) Track(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty column name", errs.ErrFormat)
	}

	folded := strings.ToUpper(strings.TrimRight(name, " "))
	h := hash.String(folded)

	for _, existing := range t.names[h] {
		if existing == folded {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}
	}
	if len(t.names[h]) > 0 {
		t.hasCollision = true
	}

	t.names[h] = append(t.names[h], folded)
	t.ordered = append(t.ordered, name)

	return nil
}

// HasCollision reports whether two different names hashed to the same value.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in tracking order.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked names, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.ordered = t.ordered[:0]
	t.hasCollision = false
}
