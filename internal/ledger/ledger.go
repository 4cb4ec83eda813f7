// Package ledger persists the ordered list of origins that were installed
// into a cache, so they can be replayed later.
package ledger

import "github.com/bianoble/confbundle/internal/origin"

// FileName is the ledger file name inside the cache directory.
const FileName = "config_install.json"

// Ledger is the ordered record of installed origins, oldest first.
// It holds at most one entry per origin identity (see origin.Origin.Equal).
type Ledger struct {
	Origins []origin.Origin
}

// Len returns the number of recorded origins.
func (l *Ledger) Len() int {
	return len(l.Origins)
}

// Empty reports whether nothing has been installed yet.
func (l *Ledger) Empty() bool {
	return len(l.Origins) == 0
}

// Index returns the position of the entry equal to o, or -1.
func (l *Ledger) Index(o origin.Origin) int {
	for i, existing := range l.Origins {
		if existing.Equal(o) {
			return i
		}
	}
	return -1
}

// Upsert replaces the entry equal to o in place, or appends o when the
// origin was never installed. It reports whether an entry was replaced.
func (l *Ledger) Upsert(o origin.Origin) bool {
	if i := l.Index(o); i >= 0 {
		l.Origins[i] = o
		return true
	}
	l.Origins = append(l.Origins, o)
	return false
}

// Last returns a copy of the most recently appended origin.
func (l *Ledger) Last() (origin.Origin, bool) {
	if l.Empty() {
		return origin.Origin{}, false
	}
	return l.Origins[len(l.Origins)-1], true
}

// ReplaceLast overwrites the most recently appended origin with o.
// It is a no-op on an empty ledger.
func (l *Ledger) ReplaceLast(o origin.Origin) {
	if l.Empty() {
		return
	}
	l.Origins[len(l.Origins)-1] = o
}
