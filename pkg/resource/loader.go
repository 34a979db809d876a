package resource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Text asset names per language, matching the dictionary build pipeline:
// <lang>_words.txt is required, the rest are optional.
const (
	wordsSuffix     = "_words.txt"
	bigramsSuffix   = "_bigrams.txt"
	trigramsSuffix  = "_trigrams.txt"
	shortcutsSuffix = "_shortcuts.txt"
	binarySuffix    = ".bin"
)

// LoadBundle reads a language's assets from a directory into a Bundle.
// Word lists may be plain text ("word freq" lines) or compiled binary tries;
// the text list wins when both exist. N-gram and shortcut files are optional.
func LoadBundle(dir, lang string, maxWords int) (*Bundle, error) {
	bundle := &Bundle{Shortcuts: make(map[string]string)}

	wordsPath := filepath.Join(dir, lang+wordsSuffix)
	binPath := filepath.Join(dir, lang+binarySuffix)
	switch {
	case fileExists(wordsPath):
		words, err := loadWordFile(wordsPath, maxWords)
		if err != nil {
			return nil, err
		}
		bundle.Words = words
	case fileExists(binPath):
		words, err := loadBinaryFile(binPath, maxWords)
		if err != nil {
			return nil, err
		}
		bundle.Words = words
	default:
		return nil, fmt.Errorf("no word list for %q in %s", lang, dir)
	}

	if path := filepath.Join(dir, lang+bigramsSuffix); fileExists(path) {
		bundle.Bigrams = loadNGramFile(path, 2)
	}
	if path := filepath.Join(dir, lang+trigramsSuffix); fileExists(path) {
		bundle.Trigrams = loadNGramFile(path, 3)
	}
	if path := filepath.Join(dir, lang+shortcutsSuffix); fileExists(path) {
		bundle.Shortcuts = loadShortcutFile(path)
	}
	return bundle, nil
}

// DiscoverLanguages lists the language codes that have a word list in dir.
func DiscoverLanguages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan resource directory: %w", err)
	}
	seen := make(map[string]bool)
	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		var lang string
		switch {
		case strings.HasSuffix(name, wordsSuffix):
			lang = strings.TrimSuffix(name, wordsSuffix)
		case strings.HasSuffix(name, binarySuffix):
			lang = strings.TrimSuffix(name, binarySuffix)
		default:
			continue
		}
		if lang != "" && !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// ParseWordList reads "word frequency" lines. Lines starting with # and blank
// lines are skipped; a missing frequency column falls back to a rank-derived
// weight so bare word lists still load in order.
func ParseWordList(r io.Reader, maxWords int) ([]WordEntry, error) {
	var words []WordEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if maxWords > 0 && len(words) >= maxWords {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		word := fields[0]
		freq := uint32(0)
		if len(fields) > 1 {
			n, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				log.Warnf("Skipping malformed word list line %d: %q", lineNo, line)
				continue
			}
			freq = uint32(n)
		} else {
			// Ordered lists without counts: earlier lines rank higher.
			freq = uint32(1000 + len(words))
		}
		words = append(words, WordEntry{Text: word, Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// ParseNGrams reads "w1 w2 [w3] count" lines for the given order. Malformed
// lines are skipped with a warning rather than failing the whole file.
func ParseNGrams(r io.Reader, order int) []NGram {
	var grams []NGram
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != order+1 {
			log.Warnf("Skipping malformed %d-gram line %d: %q", order, lineNo, line)
			continue
		}
		count, err := strconv.ParseUint(fields[order], 10, 32)
		if err != nil || count == 0 {
			log.Warnf("Skipping %d-gram line %d with bad count: %q", order, lineNo, line)
			continue
		}
		grams = append(grams, NGram{
			Context: fields[:order-1],
			Next:    fields[order-1],
			Count:   uint32(count),
		})
	}
	return grams
}

// ParseShortcuts reads "shortcut expansion..." lines; the expansion may
// contain spaces.
func ParseShortcuts(r io.Reader) map[string]string {
	shortcuts := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			continue
		}
		shortcuts[strings.ToLower(fields[0])] = strings.TrimSpace(fields[1])
	}
	return shortcuts
}

func loadWordFile(path string, maxWords int) ([]WordEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()
	return ParseWordList(file, maxWords)
}

func loadBinaryFile(path string, maxWords int) ([]WordEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binary dictionary %s: %w", path, err)
	}
	defer file.Close()
	return ParseBinaryTrie(file, maxWords)
}

func loadNGramFile(path string, order int) []NGram {
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("Failed to open n-gram file %s: %v", path, err)
		return nil
	}
	defer file.Close()
	return ParseNGrams(file, order)
}

func loadShortcutFile(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("Failed to open shortcut file %s: %v", path, err)
		return map[string]string{}
	}
	defer file.Close()
	return ParseShortcuts(file)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
