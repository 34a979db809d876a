package resource

import "strings"

// contextSep joins context words into a map key. Unit separator cannot occur
// in whitespace-split tokens.
const contextSep = "\x1f"

// NGramTable maps an ordered tuple of preceding words to next-word counts.
// Two instances exist per language (order 2 and 3). Read-only after Compile.
type NGramTable struct {
	order  int
	counts map[string]map[string]uint32
}

// NewNGramTable creates an empty table for the given order (2 or 3).
func NewNGramTable(order int) *NGramTable {
	return &NGramTable{
		order:  order,
		counts: make(map[string]map[string]uint32),
	}
}

// Order returns the n-gram order (2 for bigram, 3 for trigram).
func (t *NGramTable) Order() int {
	return t.order
}

// Add accumulates a count for context -> next. Context length must be
// order-1; anything else is dropped silently since malformed n-gram lines
// should never poison the table.
func (t *NGramTable) Add(context []string, next string, count uint32) {
	if len(context) != t.order-1 || next == "" || count == 0 {
		return
	}
	key := contextKey(context)
	row, ok := t.counts[key]
	if !ok {
		row = make(map[string]uint32)
		t.counts[key] = row
	}
	row[strings.ToLower(next)] += count
}

// Count returns the observed count for context -> next, 0 when unseen.
func (t *NGramTable) Count(context []string, next string) uint32 {
	if len(context) != t.order-1 {
		return 0
	}
	row, ok := t.counts[contextKey(context)]
	if !ok {
		return 0
	}
	return row[strings.ToLower(next)]
}

// Successors returns the next-word count row for a context. The returned map
// is the table's own storage; callers must not mutate it.
func (t *NGramTable) Successors(context []string) map[string]uint32 {
	if len(context) != t.order-1 {
		return nil
	}
	return t.counts[contextKey(context)]
}

// Len returns the number of distinct contexts in the table.
func (t *NGramTable) Len() int {
	return len(t.counts)
}

func contextKey(context []string) string {
	lowered := make([]string, len(context))
	for i, w := range context {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, contextSep)
}
