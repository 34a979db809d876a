// Package cli is an interactive debug loop over the engine: type a token to
// see ranked suggestions, set context, or simulate a gesture. Useful for
// sanity-checking dictionaries and thresholds before wiring up a client.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/glidetype/glidetype/internal/utils"
	"github.com/glidetype/glidetype/pkg/engine"
	"github.com/glidetype/glidetype/pkg/resource"
	"github.com/glidetype/glidetype/pkg/suggest"
	"github.com/glidetype/glidetype/pkg/swipe"
)

// InputHandler reads tokens and commands from stdin and prints ranked
// suggestions with timing.
type InputHandler struct {
	engine  *engine.Engine
	lang    string
	limit   int
	context []string
}

// NewInputHandler creates the debug loop for one language.
func NewInputHandler(eng *engine.Engine, lang string, limit int) *InputHandler {
	return &InputHandler{engine: eng, lang: lang, limit: limit}
}

// Start runs the loop until stdin closes.
func (h *InputHandler) Start() error {
	log.Print("glidetype CLI")
	log.Print("type a token for suggestions; :ctx <words>, :swipe <word>, :predict, :decide <word> (Ctrl+C to exit)")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handle(line)
	}
}

func (h *InputHandler) handle(line string) {
	switch {
	case strings.HasPrefix(line, ":ctx"):
		h.context = strings.Fields(strings.TrimPrefix(line, ":ctx"))
		log.Printf("context = %v", h.context)
	case strings.HasPrefix(line, ":swipe "):
		h.doSwipe(strings.TrimSpace(strings.TrimPrefix(line, ":swipe ")))
	case line == ":predict":
		start := time.Now()
		suggestions, err := h.engine.FallbackSuggestions(h.lang, h.context, h.limit)
		h.print(suggestions, err, start)
	case strings.HasPrefix(line, ":decide "):
		h.doDecide(strings.TrimSpace(strings.TrimPrefix(line, ":decide ")))
	default:
		// A trailing separator commits the token, like a space on a real
		// keyboard; anything else queries as a typed prefix.
		last, _ := utf8.DecodeLastRuneInString(line)
		if utils.IsWordSeparator(last) {
			if word := strings.TrimRightFunc(line, utils.IsWordSeparator); word != "" {
				h.doDecide(word)
			}
			return
		}
		if !utils.IsValidPrefix(line) {
			log.Warnf("not a completable token: %q", line)
			return
		}
		start := time.Now()
		suggestions, err := h.engine.SuggestTyping(h.lang, line, h.context, h.limit)
		h.print(suggestions, err, start)
	}
}

// doSwipe traces the word's key centers over the default QWERTY layout and
// decodes the resulting path, which is close enough to a real gesture to
// exercise the decoder end to end.
func (h *InputHandler) doSwipe(word string) {
	layout := resource.NewQwertyLayout()
	var path swipe.Path
	for _, ch := range strings.ToLower(word) {
		key, ok := layout.Get(ch)
		if !ok {
			continue
		}
		path = append(path, swipe.Point{X: key.X, Y: key.Y})
	}
	if !path.Valid() {
		log.Warnf("cannot build a path from %q", word)
		return
	}
	start := time.Now()
	suggestions, err := h.engine.SuggestSwipe(h.lang, path, h.context, h.limit)
	h.print(suggestions, err, start)
}

func (h *InputHandler) doDecide(word string) {
	decision, err := h.engine.Decide(h.lang, word, h.context)
	if err != nil {
		log.Warnf("decide: %v", err)
		return
	}
	if decision.Corrected {
		log.Printf("%q -> %q (confidence %.2f >= %.2f)",
			decision.Original, decision.Commit, decision.Confidence, decision.Required)
	} else {
		log.Printf("%q kept as typed (confidence %.2f, required %.2f)",
			decision.Original, decision.Confidence, decision.Required)
	}
}

func (h *InputHandler) print(suggestions []suggest.Suggestion, err error, start time.Time) {
	elapsed := time.Since(start)
	if err != nil {
		log.Warnf("%v", err)
		return
	}
	if len(suggestions) == 0 {
		log.Print("no suggestions")
		return
	}
	for i, s := range suggestions {
		log.Printf("%2d. %-20s %8.2f  [%s]", i+1, s.Text, s.Score, s.Source)
	}
	log.Printf("(%d results in %v)", len(suggestions), elapsed)
}
