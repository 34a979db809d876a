package resource

import "math"

// Key is one key's center and approximate radius in normalized coordinates.
type Key struct {
	Char   rune
	X      float64
	Y      float64
	Radius float64
}

// KeyLayout maps characters to key geometry on a virtual keyboard. All
// coordinates are normalized to [0,1] in both axes. The layout is immutable
// after construction and only consulted by gesture decoding.
type KeyLayout struct {
	keys map[rune]Key
	rows [][]rune
}

// NewKeyLayout builds a layout from explicit rows, staggering each row by the
// given fraction of a key width. Rows are laid out top to bottom.
func NewKeyLayout(rows []string, offsets []float64) *KeyLayout {
	layout := &KeyLayout{keys: make(map[rune]Key)}

	maxCols := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > maxCols {
			maxCols = n
		}
	}
	if maxCols == 0 || len(rows) == 0 {
		return layout
	}

	keyW := 1.0 / float64(maxCols)
	keyH := 1.0 / float64(len(rows))

	for r, row := range rows {
		offset := 0.0
		if r < len(offsets) {
			offset = offsets[r] * keyW
		}
		runes := []rune(row)
		layout.rows = append(layout.rows, runes)
		for c, ch := range runes {
			layout.keys[ch] = Key{
				Char:   ch,
				X:      offset + (float64(c)+0.5)*keyW,
				Y:      (float64(r) + 0.5) * keyH,
				Radius: keyW / 2,
			}
		}
	}
	return layout
}

// NewQwertyLayout returns the standard three-row QWERTY letter block with the
// usual half-key and one-and-a-half-key row staggers.
func NewQwertyLayout() *KeyLayout {
	return NewKeyLayout(
		[]string{"qwertyuiop", "asdfghjkl", "zxcvbnm"},
		[]float64{0, 0.5, 1.5},
	)
}

// Get returns the geometry for a character.
func (l *KeyLayout) Get(ch rune) (Key, bool) {
	k, ok := l.keys[ch]
	return k, ok
}

// Len returns the number of keys in the layout.
func (l *KeyLayout) Len() int {
	return len(l.keys)
}

// Nearest returns the key whose center is closest to (x, y). Ties break
// toward the earlier row/column so decoding stays deterministic.
func (l *KeyLayout) Nearest(x, y float64) (Key, bool) {
	best := Key{}
	bestDist := math.Inf(1)
	found := false
	for _, row := range l.rows {
		for _, ch := range row {
			k := l.keys[ch]
			dx, dy := k.X-x, k.Y-y
			d := dx*dx + dy*dy
			if d < bestDist {
				bestDist = d
				best = k
				found = true
			}
		}
	}
	return best, found
}

// RowChar returns the character of the key in the row band containing y whose
// column band contains x. It is the crude region lookup behind the decoder's
// no-dictionary fallback: no distances, just rows and column spans.
func (l *KeyLayout) RowChar(x, y float64) (rune, bool) {
	if len(l.rows) == 0 {
		return 0, false
	}
	r := int(y * float64(len(l.rows)))
	if r < 0 {
		r = 0
	}
	if r >= len(l.rows) {
		r = len(l.rows) - 1
	}
	row := l.rows[r]
	if len(row) == 0 {
		return 0, false
	}

	// Pick the column by horizontal span of the row's keys.
	first := l.keys[row[0]]
	last := l.keys[row[len(row)-1]]
	left := first.X - first.Radius
	right := last.X + last.Radius
	if right <= left {
		return row[0], true
	}
	c := int((x - left) / (right - left) * float64(len(row)))
	if c < 0 {
		c = 0
	}
	if c >= len(row) {
		c = len(row) - 1
	}
	return row[c], true
}

// Distance returns the euclidean distance between two keys' centers.
// Characters missing from the layout contribute a full keyboard width, so
// unknown letters are penalized rather than fatal.
func (l *KeyLayout) Distance(a, b rune) float64 {
	ka, oka := l.keys[a]
	kb, okb := l.keys[b]
	if !oka || !okb {
		return 1.0
	}
	dx, dy := ka.X-kb.X, ka.Y-kb.Y
	return math.Hypot(dx, dy)
}
