// Package nlp derives token, tag, entity, sentiment and summary results from
// an opaque NLP pipeline.
//
// A Pipeline turns text into a core.AnalyzedDocument. The Engine runs the
// pipeline exactly once per operation and derives its result from the
// document. Pipeline failures never reach the caller: each operation falls
// back to its empty or zero value and logs the failure.
//
// # Concurrency
//
// Pipeline invocations run on a bounded ants worker pool owned by the
// Engine, so at most Workers analyses execute at once regardless of how many
// requests are in flight. Callers wait for their result or for their
// context, whichever comes first.
//
// # Caching
//
// Analyses are deterministic for a given pipeline and text, so an optional
// storage.AnalysisCache can serve repeated requests without running the
// pipeline again.
package nlp
