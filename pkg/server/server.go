package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/glidetype/glidetype/internal/logger"
	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/engine"
	"github.com/glidetype/glidetype/pkg/suggest"
	"github.com/glidetype/glidetype/pkg/swipe"
)

// Server handles msgpack IPC for the prediction engine over a reader/writer
// pair, normally stdin/stdout.
type Server struct {
	engine *engine.Engine
	cfg    config.ServerConfig
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	log    *log.Logger
}

// NewServer creates a server speaking on stdin/stdout.
func NewServer(eng *engine.Engine, cfg config.ServerConfig) *Server {
	return NewServerIO(eng, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on explicit streams, for tests and embedding.
func NewServerIO(eng *engine.Engine, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine: eng,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
		log:    logger.New("ipc"),
	}
}

// Start signals readiness and processes requests until EOF.
func (s *Server) Start() error {
	s.log.Debug("Starting IPC server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "complete":
		s.handleComplete(req)
	case "swipe":
		s.handleSwipe(req)
	case "predict":
		s.handlePredict(req)
	case "decide":
		s.handleDecide(req)
	case "feedback":
		s.handleFeedback(req)
	case "lang":
		s.handleLang(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	if len(req.Prefix) == 0 && len(req.Context) == 0 {
		s.sendError(req.ID, "missing 'p' or 'ctx'", 400)
		return
	}
	start := time.Now()
	suggestions, err := s.engine.SuggestTyping(s.lang(req), req.Prefix, req.Context, s.limit(req))
	s.sendSuggestions(req.ID, suggestions, err, start)
}

func (s *Server) handleSwipe(req Request) {
	path := make(swipe.Path, len(req.Points))
	for i, pt := range req.Points {
		path[i] = swipe.Point{X: pt[0], Y: pt[1]}
	}
	start := time.Now()
	suggestions, err := s.engine.SuggestSwipe(s.lang(req), path, req.Context, s.limit(req))
	s.sendSuggestions(req.ID, suggestions, err, start)
}

func (s *Server) handlePredict(req Request) {
	start := time.Now()
	suggestions, err := s.engine.FallbackSuggestions(s.lang(req), req.Context, s.limit(req))
	s.sendSuggestions(req.ID, suggestions, err, start)
}

func (s *Server) handleDecide(req Request) {
	if req.Word == "" {
		s.sendError(req.ID, "missing 'w'", 400)
		return
	}
	start := time.Now()
	decision, err := s.engine.Decide(s.lang(req), req.Word, req.Context)
	if err != nil {
		s.sendError(req.ID, err.Error(), 503)
		return
	}
	s.send(DecideResponse{
		ID:         req.ID,
		Commit:     decision.Commit,
		Corrected:  decision.Corrected,
		Confidence: decision.Confidence,
		Required:   decision.Required,
		TimeTaken:  time.Since(start).Microseconds(),
	})
}

func (s *Server) handleFeedback(req Request) {
	if req.Original == "" || req.Corrected == "" {
		s.sendError(req.ID, "missing 'orig' or 'corr'", 400)
		return
	}
	lang := s.lang(req)
	if req.Accepted {
		s.engine.LearnFromUser(req.Original, req.Corrected, lang)
	} else {
		s.engine.RejectCorrection(req.Original, req.Corrected, lang)
	}
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleLang(req Request) {
	if len(req.Langs) > 0 {
		if err := s.engine.PreloadLanguages(context.Background(), req.Langs); err != nil {
			s.sendError(req.ID, err.Error(), 500)
			return
		}
	}
	resp := StatusResponse{ID: req.ID, Status: "ok"}
	for _, lang := range req.Langs {
		if s.engine.HasLanguage(lang) {
			resp.Langs = append(resp.Langs, lang)
		}
	}
	s.send(resp)
}

func (s *Server) sendSuggestions(id string, suggestions []suggest.Suggestion, err error, start time.Time) {
	if err != nil {
		s.sendError(id, err.Error(), 503)
		return
	}
	msgs := make([]SuggestionMsg, len(suggestions))
	for i, sg := range suggestions {
		msgs[i] = SuggestionMsg{
			Word:   sg.Text,
			Rank:   uint16(i + 1),
			Source: sg.Source.String(),
		}
	}
	s.send(SuggestResponse{
		ID:          id,
		Suggestions: msgs,
		Count:       len(msgs),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func (s *Server) lang(req Request) string {
	if req.Lang != "" {
		return req.Lang
	}
	return s.cfg.DefaultLang
}

func (s *Server) limit(req Request) int {
	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}
