package resource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWordList(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"the 1000",
		"",
		"hello,500",
		"tabbed\t250",
		"broken abc",
		"bare",
	}, "\n")

	words, err := ParseWordList(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, words, 4)
	assert.Equal(t, WordEntry{Text: "the", Frequency: 1000}, words[0])
	assert.Equal(t, WordEntry{Text: "hello", Frequency: 500}, words[1])
	assert.Equal(t, WordEntry{Text: "tabbed", Frequency: 250}, words[2])
	assert.Equal(t, "bare", words[3].Text)
	assert.NotZero(t, words[3].Frequency, "bare lists get rank-derived weights")
}

func TestParseWordListHonorsCap(t *testing.T) {
	input := "a 3\nb 2\nc 1\n"
	words, err := ParseWordList(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestParseNGrams(t *testing.T) {
	bigrams := ParseNGrams(strings.NewReader("how are 20\nbad line\nare you 30\n"), 2)
	require.Len(t, bigrams, 2)
	assert.Equal(t, []string{"how"}, bigrams[0].Context)
	assert.Equal(t, "are", bigrams[0].Next)
	assert.Equal(t, uint32(20), bigrams[0].Count)

	trigrams := ParseNGrams(strings.NewReader("how are you 50\n"), 3)
	require.Len(t, trigrams, 1)
	assert.Equal(t, []string{"how", "are"}, trigrams[0].Context)
	assert.Equal(t, "you", trigrams[0].Next)
}

func TestParseShortcuts(t *testing.T) {
	shortcuts := ParseShortcuts(strings.NewReader("omw on my way\nbrb be right back\nnope\n"))
	assert.Equal(t, "on my way", shortcuts["omw"])
	assert.Equal(t, "be right back", shortcuts["brb"])
	assert.NotContains(t, shortcuts, "nope")
}

func trieNodeBytes(char rune, freq byte, child, sibling int) []byte {
	b := make([]byte, 10)
	b[0] = byte(char >> 8)
	b[1] = byte(char)
	b[2] = freq
	b[3], b[4], b[5] = byte(child>>16), byte(child>>8), byte(child)
	b[6], b[7], b[8] = byte(sibling>>16), byte(sibling>>8), byte(sibling)
	return b
}

// buildTrieBytes writes the compiled 10-byte node format for "to" and "ten":
// root -> t -> {o, e -> n}.
func buildTrieBytes() []byte {
	var buf []byte
	buf = append(buf, trieNodeBytes('^', 0, 10, 0)...) // root at 0, child 't' at 10
	buf = append(buf, trieNodeBytes('t', 0, 20, 0)...) // 't' at 10, first child 'e' at 20
	buf = append(buf, trieNodeBytes('e', 0, 40, 30)...) // 'e' at 20, child 'n' at 40, sibling 'o' at 30
	buf = append(buf, trieNodeBytes('o', 90, 0, 0)...)  // "to" at 30
	buf = append(buf, trieNodeBytes('n', 70, 0, 0)...)  // "ten" at 40
	return buf
}

func TestParseBinaryTrie(t *testing.T) {
	words, err := ParseBinaryTrie(strings.NewReader(string(buildTrieBytes())), 0)
	require.NoError(t, err)

	byText := make(map[string]uint32, len(words))
	for _, w := range words {
		byText[w.Text] = w.Frequency
	}
	assert.Equal(t, uint32(90), byText["to"])
	assert.Equal(t, uint32(70), byText["ten"])
	assert.Len(t, words, 2)
}

func TestParseBinaryTrieRejectsGarbage(t *testing.T) {
	_, err := ParseBinaryTrie(strings.NewReader("short"), 0)
	assert.Error(t, err)
}

func TestParseBinaryTrieRejectsOffsetCycles(t *testing.T) {
	// A node listing itself as its own sibling would walk forever.
	var selfSibling []byte
	selfSibling = append(selfSibling, trieNodeBytes('^', 0, 10, 0)...)
	selfSibling = append(selfSibling, trieNodeBytes('a', 1, 0, 10)...)

	_, err := ParseBinaryTrie(strings.NewReader(string(selfSibling)), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	// A child chain looping back to an ancestor must fail the same way.
	var childLoop []byte
	childLoop = append(childLoop, trieNodeBytes('^', 0, 10, 0)...)
	childLoop = append(childLoop, trieNodeBytes('a', 0, 20, 0)...)
	childLoop = append(childLoop, trieNodeBytes('b', 1, 10, 0)...)

	_, err = ParseBinaryTrie(strings.NewReader(string(childLoop)), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadBundleAndManagerPreload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("en_words.txt", "the 1000\nhello 500\n")
	write("en_bigrams.txt", "are you 30\n")
	write("en_trigrams.txt", "how are you 50\n")
	write("en_shortcuts.txt", "omw on my way\n")
	write("de_words.txt", "hallo 800\n")

	langs, err := DiscoverLanguages(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "de"}, langs)

	store := NewStore()
	manager := NewManager(store, dir, 0)
	require.NoError(t, manager.Preload(context.Background(), []string{"en", "de"}))
	require.True(t, manager.Has("en"))
	require.True(t, manager.Has("de"))

	res, _ := store.Snapshot("en")
	assert.Equal(t, uint32(50), res.Trigrams.Count([]string{"how", "are"}, "you"))
	exp, _ := res.Expansion("omw")
	assert.Equal(t, "on my way", exp)
}

func TestManagerPreloadMissingLanguage(t *testing.T) {
	store := NewStore()
	manager := NewManager(store, t.TempDir(), 0)
	err := manager.Preload(context.Background(), []string{"xx"})
	assert.Error(t, err)
	assert.False(t, store.Has("xx"))
}

func TestPreloadAsyncSignalsCompletion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_words.txt"), []byte("one 1\n"), 0644))

	store := NewStore()
	manager := NewManager(store, dir, 0)
	err := <-manager.PreloadAsync(context.Background(), []string{"en"})
	require.NoError(t, err)
	assert.True(t, store.Has("en"))
}
