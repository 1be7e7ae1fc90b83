// Package eval grades web-agent task attempts.
//
// An attempt consists of the agent's structured final response and the
// network trace of its browsing session. Each task's eval config lists one or
// more evaluators; every evaluator produces an EvaluatorResult with a status
// (success, failure, or error), a score, and the assertions it checked. The
// per-evaluator results fold into a single TaskResult.
//
// # Evaluators
//
// Evaluators are looked up by the name appearing in eval configs:
//
//	ev, err := eval.New("AgentResponseEvaluator")
//	if err != nil {
//	    return err
//	}
//	result := ev.Evaluate(ctx, eval.Input{
//	    Task:        task,
//	    Config:      cfg,
//	    RawResponse: raw,
//	    Trace:       trace,
//	}, task.Eval[0])
//
// AgentResponseEvaluator checks the agent's reported status and task type and
// compares its retrieved data against the expected values. The comparison is
// tolerant of presentation differences (case, quoting, units, formats) but
// strict about content; see the normalize package.
//
// NetworkEventEvaluator checks that the browsing session contains at least
// one request matching an expected URL template, optionally constrained by
// method, query parameters, headers, and response status.
//
// # Fault isolation
//
// Evaluators never abort each other: a broken eval config or an unusable
// agent response surfaces as a result with status error, and the remaining
// evaluators still run. The task status is the worst evaluator status, with
// error outranking failure outranking success.
//
// # Persistence and observability
//
// JSONLLogger appends each TaskResult to a JSONL file for later analysis.
// OTelRecorder emits a span and score/duration/count metrics per task when
// OpenTelemetry is configured, and is silent otherwise.
package eval
