/*
Package server implements the msgpack IPC surface for the prediction engine.

The server reads binary msgpack requests from stdin and writes responses to
stdout, one message per request, processed synchronously with timing info in
each response. Binary msgpack keeps messages ~30-50% smaller than JSON and
cheap enough to decode per keystroke.

A request carries an id, an op and the op's fields:

	{"id": "req_001", "op": "complete", "lang": "en", "p": "ame", "l": 10}
	{"id": "req_002", "op": "swipe", "lang": "en", "pts": [[0.1,0.8],[0.3,0.2]]}
	{"id": "req_003", "op": "predict", "lang": "en", "ctx": ["how", "are"]}
	{"id": "req_004", "op": "decide", "lang": "en", "w": "teh", "ctx": ["see"]}
	{"id": "req_005", "op": "feedback", "lang": "en", "orig": "teh", "corr": "the", "ok": false}
	{"id": "req_006", "op": "lang", "langs": ["en", "de"]}

Responses echo the id and carry ranked suggestions or the commit decision:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 145}
	{"id": "req_004", "commit": "the", "corrected": true}
*/
package server

// Request is the envelope for every incoming message. Unused fields stay at
// their zero values; op selects which ones matter.
type Request struct {
	ID        string       `msgpack:"id"`
	Op        string       `msgpack:"op"`
	Lang      string       `msgpack:"lang,omitempty"`
	Prefix    string       `msgpack:"p,omitempty"`
	Context   []string     `msgpack:"ctx,omitempty"`
	Limit     int          `msgpack:"l,omitempty"`
	Points    [][2]float64 `msgpack:"pts,omitempty"`
	Word      string       `msgpack:"w,omitempty"`
	Original  string       `msgpack:"orig,omitempty"`
	Corrected string       `msgpack:"corr,omitempty"`
	Accepted  bool         `msgpack:"ok,omitempty"`
	Langs     []string     `msgpack:"langs,omitempty"`
}

// SuggestionMsg is one ranked suggestion on the wire.
type SuggestionMsg struct {
	Word   string `msgpack:"w"`
	Rank   uint16 `msgpack:"r"`
	Source string `msgpack:"src,omitempty"`
}

// SuggestResponse answers complete, swipe and predict ops.
type SuggestResponse struct {
	ID          string          `msgpack:"id"`
	Suggestions []SuggestionMsg `msgpack:"s"`
	Count       int             `msgpack:"c"`
	TimeTaken   int64           `msgpack:"t"` // microseconds
}

// DecideResponse answers decide ops with the gate's commit decision.
type DecideResponse struct {
	ID         string  `msgpack:"id"`
	Commit     string  `msgpack:"commit"`
	Corrected  bool    `msgpack:"corrected"`
	Confidence float64 `msgpack:"conf"`
	Required   float64 `msgpack:"req"`
	TimeTaken  int64   `msgpack:"t"`
}

// StatusResponse answers lang, feedback and health ops.
type StatusResponse struct {
	ID     string   `msgpack:"id"`
	Status string   `msgpack:"status"`
	Langs  []string `msgpack:"langs,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
