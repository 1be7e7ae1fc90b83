package nettrace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Trace is an immutable sequence of network events in recording order.
type Trace struct {
	events     []Event
	eval       []Event
	srcFile    string
	playwright bool
}

// FromEvents builds a trace from in-memory events. The slice is copied.
func FromEvents(events []Event) *Trace {
	copied := make([]Event, len(events))
	copy(copied, events)
	return newTrace(copied)
}

func newTrace(events []Event) *Trace {
	eval := make([]Event, 0, len(events))
	for _, e := range events {
		if e.IsEvaluationEvent() {
			eval = append(eval, e)
		}
	}
	return &Trace{events: events, eval: eval}
}

// Events returns every recorded event. The result must not be modified.
func (t *Trace) Events() []Event { return t.events }

// EvaluationEvents returns the events relevant to evaluation, with static
// asset fetches filtered out. The result must not be modified.
func (t *Trace) EvaluationEvents() []Event { return t.eval }

// Len returns the total number of recorded events.
func (t *Trace) Len() int { return len(t.events) }

// SrcFile returns the path the trace was loaded from, when FromFile was used.
func (t *Trace) SrcFile() string { return t.srcFile }

// IsPlaywright reports whether the trace came from a Playwright recording
// rather than a HAR archive.
func (t *Trace) IsPlaywright() bool { return t.playwright }

// harFile is the subset of the HAR 1.2 format the loader reads.
type harFile struct {
	Log struct {
		Entries []struct {
			Request struct {
				Method  string       `json:"method"`
				URL     string       `json:"url"`
				Headers []headerPair `json:"headers"`
			} `json:"request"`
			Response struct {
				Status      int          `json:"status"`
				Headers     []headerPair `json:"headers"`
				RedirectURL string       `json:"redirectURL"`
			} `json:"response"`
		} `json:"entries"`
	} `json:"log"`
}

// FromHAR parses a HAR archive.
func FromHAR(r io.Reader) (*Trace, error) {
	var har harFile
	if err := json.NewDecoder(r).Decode(&har); err != nil {
		return nil, fmt.Errorf("parse har: %w", err)
	}
	events := make([]Event, 0, len(har.Log.Entries))
	for _, entry := range har.Log.Entries {
		events = append(events, Event{
			Method:          entry.Request.Method,
			URL:             entry.Request.URL,
			RequestHeaders:  headerMap(entry.Request.Headers),
			Status:          entry.Response.Status,
			ResponseHeaders: headerMap(entry.Response.Headers),
			RedirectURL:     entry.Response.RedirectURL,
		})
	}
	return newTrace(events), nil
}

// playwrightLine is one NDJSON record of a Playwright trace. Only
// resource-snapshot records describe network exchanges.
type playwrightLine struct {
	Type     string `json:"type"`
	Snapshot struct {
		Request struct {
			Method  string       `json:"method"`
			URL     string       `json:"url"`
			Headers []headerPair `json:"headers"`
		} `json:"request"`
		Response struct {
			Status      int          `json:"status"`
			Headers     []headerPair `json:"headers"`
			RedirectURL string       `json:"redirectURL"`
		} `json:"response"`
	} `json:"snapshot"`
}

// FromPlaywright parses a Playwright trace in NDJSON form, keeping the
// resource-snapshot records and skipping everything else.
func FromPlaywright(r io.Reader) (*Trace, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec playwrightLine
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse playwright trace line %d: %w", lineNo, err)
		}
		if rec.Type != "resource-snapshot" {
			continue
		}
		events = append(events, Event{
			Method:          rec.Snapshot.Request.Method,
			URL:             rec.Snapshot.Request.URL,
			RequestHeaders:  headerMap(rec.Snapshot.Request.Headers),
			Status:          rec.Snapshot.Response.Status,
			ResponseHeaders: headerMap(rec.Snapshot.Response.Headers),
			RedirectURL:     rec.Snapshot.Response.RedirectURL,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read playwright trace: %w", err)
	}
	trace := newTrace(events)
	trace.playwright = true
	return trace, nil
}

// FromFile loads a trace, picking the format from the file. A .har extension
// or a top-level HAR object selects the HAR parser; anything else is read as
// a Playwright NDJSON trace.
func FromFile(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace file: %w", err)
	}
	var trace *Trace
	if strings.HasSuffix(strings.ToLower(path), ".har") || looksLikeHAR(data) {
		trace, err = FromHAR(bytes.NewReader(data))
	} else {
		trace, err = FromPlaywright(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	trace.srcFile = path
	return trace, nil
}

// looksLikeHAR sniffs for a single JSON object carrying a "log" key, the HAR
// envelope. NDJSON traces have one object per line and no such key first.
func looksLikeHAR(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("{")) {
		return false
	}
	var probe struct {
		Log *json.RawMessage `json:"log"`
	}
	if err := json.Unmarshal(firstLine(trimmed), &probe); err != nil {
		// A multi-line HAR file fails the single-line probe; fall back to
		// decoding the whole document.
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return false
		}
	}
	return probe.Log != nil
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}
