// Package types provides core type definitions for the web-agent evaluation SDK.
//
// This package defines the shared declarative types used throughout the SDK:
// the benchmark sites and their environment configuration, task definitions
// with their evaluator entries, and the agent's final response model.
//
// # Sites and Environments
//
// Sites identify the benchmark's self-hosted websites. Task data refers to
// them through placeholder templates that are rendered against a deployment's
// environment configuration:
//
//	cfg, err := types.LoadConfig("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	url, err := cfg.RenderURL("__SHOPPING__/cart", []types.Site{types.SiteShopping})
//
// DerenderURL inverts the mapping, turning a concrete URL back into its
// site-relative template form. Rendering then derendering (or the reverse)
// returns the input unchanged for any configured site.
//
// # Tasks
//
// A Task carries the sites it runs against and one eval entry per evaluator:
//
//	for _, ec := range task.Eval {
//	    // ec.Evaluator names the evaluator, ec.Expected holds its
//	    // expectations, ec.ResultsSchema refines value comparison.
//	}
//
// # Agent Responses
//
// ParseAgentResponse decodes the JSON object an agent returns at the end of a
// task, tolerating markdown code fences and the legacy performed_operation
// field name:
//
//	resp, err := types.ParseAgentResponse(raw)
//	if err == nil && resp.Status.IsError() {
//	    // the agent reported an environment or permission problem
//	}
package types
