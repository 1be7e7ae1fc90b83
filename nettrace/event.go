package nettrace

import (
	"net/url"
	"path"
	"strings"
)

// staticAssetExts are path extensions fetched by the browser as page
// furniture. Requests for these never carry task-relevant navigation.
var staticAssetExts = map[string]struct{}{
	".css": {}, ".js": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".gif": {}, ".svg": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
	".ico": {},
}

// Event is one recorded request/response exchange. Header names are stored
// lowercase.
type Event struct {
	Method          string            `json:"method"`
	URL             string            `json:"url"`
	RequestHeaders  map[string]string `json:"request_headers,omitempty"`
	Status          int               `json:"status"`
	ResponseHeaders map[string]string `json:"response_headers,omitempty"`
	RedirectURL     string            `json:"redirect_url,omitempty"`
}

// IsRedirect reports whether the response was a redirect: a 3xx status with a
// redirect target. Captures that omit the dedicated redirectURL field still
// carry the target in the Location response header.
func (e Event) IsRedirect() bool {
	return e.Status >= 300 && e.Status < 400 && e.RedirectTarget() != ""
}

// RedirectTarget returns the redirect target, preferring the capture's
// redirectURL field over the Location response header. Empty when the event
// is not a redirect.
func (e Event) RedirectTarget() string {
	if e.RedirectURL != "" {
		return e.RedirectURL
	}
	if loc, ok := e.ResponseHeader("location"); ok {
		return loc
	}
	return ""
}

// IsRequestSuccess reports whether the request succeeded. Redirect statuses
// count as success since the browser follows them.
func (e Event) IsRequestSuccess() bool {
	return e.Status >= 200 && e.Status < 400
}

// IsEvaluationEvent reports whether the event is relevant to evaluation.
// Requests for page furniture (styles, scripts, images, fonts) are not.
func (e Event) IsEvaluationEvent() bool {
	u, err := url.Parse(e.URL)
	if err != nil {
		return true
	}
	ext := strings.ToLower(path.Ext(u.Path))
	_, ok := staticAssetExts[ext]
	return !ok
}

// RequestHeader returns the named request header, case-insensitively.
func (e Event) RequestHeader(name string) (string, bool) {
	v, ok := e.RequestHeaders[strings.ToLower(name)]
	return v, ok
}

// ResponseHeader returns the named response header, case-insensitively.
func (e Event) ResponseHeader(name string) (string, bool) {
	v, ok := e.ResponseHeaders[strings.ToLower(name)]
	return v, ok
}

// headerMap folds a name/value list into a lowercase-keyed map. Later values
// for a repeated header win.
func headerMap(pairs []headerPair) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[strings.ToLower(p.Name)] = p.Value
	}
	return m
}

type headerPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
