// Package nettrace loads and filters the network activity recorded during an
// agent's browsing session.
//
// A trace can be built from a HAR archive, a Playwright trace in NDJSON form,
// or directly from in-memory events. Once built, a Trace is immutable: the
// subset of events relevant to evaluation (everything that is not a static
// asset fetch) is computed at construction time and shared by all readers.
package nettrace
