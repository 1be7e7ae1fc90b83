package eval

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/webarena-verified/sdk/nettrace"
	"github.com/webarena-verified/sdk/normalize"
	"github.com/webarena-verified/sdk/types"
)

// NetworkEventEvaluatorName is the registry name used in eval configs.
const NetworkEventEvaluatorName = "NetworkEventEvaluator"

func init() {
	Register(NetworkEventEvaluatorName, func() Evaluator {
		return &NetworkEventEvaluator{}
	})
}

// NetworkEventEvaluator verifies that the agent's browsing session produced
// at least one network event matching the expected request: a site-relative
// URL template plus optional method, query, header, and status constraints.
type NetworkEventEvaluator struct{}

// Name implements Evaluator.
func (e *NetworkEventEvaluator) Name() string {
	return NetworkEventEvaluatorName
}

// constraints is the decoded form of the evaluator's expected block.
type eventConstraints struct {
	url     normalize.Value
	method  string
	status  int
	hasStat bool
	query   map[string]string
	headers map[string]string
}

// Evaluate implements Evaluator. A missing URL expectation or a template that
// cannot be rendered is a configuration fault; an empty or absent trace means
// the expected request demonstrably never happened, a failure.
func (e *NetworkEventEvaluator) Evaluate(ctx context.Context, in Input, cfg types.EvaluatorConfig) EvaluatorResult {
	cons, res, ok := e.buildConstraints(in, cfg)
	if !ok {
		return res
	}

	if in.Trace == nil {
		return failureResult(e.Name(), []Assertion{{
			Path:     "root.url",
			Expected: cons.url.Primary(),
			Message:  "no network trace recorded",
		}})
	}

	for _, event := range in.Trace.EvaluationEvents() {
		if e.matches(cons, event) {
			return successResult(e.Name(), []Assertion{{
				Path:     "root.url",
				OK:       true,
				Expected: cons.url.Primary(),
				Actual:   event.URL,
			}})
		}
	}
	return failureResult(e.Name(), []Assertion{{
		Path:     "root.url",
		Expected: cons.url.Primary(),
		Message:  fmt.Sprintf("no event among %d matched", len(in.Trace.EvaluationEvents())),
	}})
}

func (e *NetworkEventEvaluator) buildConstraints(in Input, cfg types.EvaluatorConfig) (eventConstraints, EvaluatorResult, bool) {
	fail := func(msg string) (eventConstraints, EvaluatorResult, bool) {
		return eventConstraints{}, errorResult(e.Name(), msg), false
	}

	rawURL, ok := cfg.Expected["url"]
	if !ok {
		return fail("eval config has no expected url")
	}
	templates, err := stringList(rawURL)
	if err != nil {
		return fail(fmt.Sprintf("bad expected url: %v", err))
	}

	cons := eventConstraints{}
	if cons.query, err = stringMap(cfg.Expected["query"]); err != nil {
		return fail(fmt.Sprintf("bad expected query: %v", err))
	}

	rendered := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		r := tmpl
		if in.Config != nil && in.Task != nil {
			r, err = in.Config.RenderURL(tmpl, in.Task.Sites, types.NonStrict())
			if err != nil {
				return fail(fmt.Sprintf("render url template: %v", err))
			}
		}
		// With a separate query constraint the URL matches on its base
		// alone; the query block owns the parameter checks.
		if len(cons.query) > 0 {
			r = stripQuery(r)
		}
		rendered = append(rendered, r)
	}

	var urlValue normalize.Value
	if len(rendered) == 1 {
		urlValue, err = normalize.NewURL(rendered[0])
	} else {
		urlValue, err = normalize.NewURL(anyList(rendered))
	}
	if err != nil {
		return fail(fmt.Sprintf("bad expected url: %v", err))
	}

	cons.url = urlValue
	if raw, ok := cfg.Expected["method"]; ok {
		s, ok := raw.(string)
		if !ok {
			return fail(fmt.Sprintf("expected method is not a string: %v", raw))
		}
		cons.method = strings.ToUpper(strings.TrimSpace(s))
	}
	if raw, ok := cfg.Expected["status"]; ok {
		f, ok := raw.(float64)
		if !ok {
			return fail(fmt.Sprintf("expected status is not a number: %v", raw))
		}
		cons.status = int(f)
		cons.hasStat = true
	}
	if cons.headers, err = stringMap(cfg.Expected["headers"]); err != nil {
		return fail(fmt.Sprintf("bad expected headers: %v", err))
	}
	return cons, EvaluatorResult{}, true
}

func (e *NetworkEventEvaluator) matches(cons eventConstraints, event nettrace.Event) bool {
	eventURL := event.URL
	var eventQuery url.Values
	if len(cons.query) > 0 {
		eventURL, eventQuery = splitEventURL(event.URL)
	}
	actualURL, err := normalize.NewURL(eventURL)
	if err != nil || !cons.url.Match(actualURL) {
		return false
	}
	if cons.method != "" && !strings.EqualFold(cons.method, event.Method) {
		return false
	}
	if cons.hasStat {
		if event.Status != cons.status {
			return false
		}
	} else if !event.IsRequestSuccess() {
		return false
	}
	if len(cons.query) > 0 && !queryContains(eventQuery, cons.query) {
		return false
	}
	for name, want := range cons.headers {
		got, ok := event.RequestHeader(name)
		if !ok || normalize.CanonicalString(got) != normalize.CanonicalString(want) {
			return false
		}
	}
	return true
}

// splitEventURL separates an event URL into its query-free form and the full
// query mapping. Base64-encoded path segments are folded into the mapping and
// removed from the compared path, so a query constraint sees the parameters
// however the site transported them.
func splitEventURL(rawURL string) (string, url.Values) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return stripQuery(rawURL), nil
	}
	path, embedded := normalize.ExtractBase64Query(parsed.EscapedPath())
	query := normalize.NormalizeQuery(parsed.RawQuery)
	for _, qs := range embedded {
		for k, vs := range normalize.NormalizeQuery(qs) {
			query[k] = append(query[k], vs...)
			sort.Strings(query[k])
		}
	}
	base := parsed.Host + path
	if parsed.Scheme != "" {
		base = parsed.Scheme + "://" + base
	}
	return base, query
}

// queryContains checks that every required parameter appears in the query
// mapping with a matching value.
func queryContains(vals url.Values, required map[string]string) bool {
	for key, want := range required {
		found := false
		for _, got := range vals[key] {
			if normalize.CanonicalString(got) == normalize.CanonicalString(want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func stripQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("not a string: %v (%T)", item, item)
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a string or list: %v (%T)", raw, raw)
	}
}

func stringMap(raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("not an object: %v (%T)", raw, raw)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("value for %q is not a string: %v (%T)", k, v, v)
		}
		out[k] = s
	}
	return out, nil
}

func anyList(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
