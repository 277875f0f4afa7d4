// Package generation resolves a provider for a prompt, invokes it, and walks
// the configured fallback order when it fails.
//
// The contract of Orchestrator.Generate and GeneratePrimary:
//
//   - GeneratePrimary uses the configured primary provider. Generate always
//     names a provider; the empty name is not a synonym for the primary.
//   - A name outside the supported set is a caller error: it is returned
//     as core.ErrUnsupportedProvider, no provider is invoked, nothing is
//     journaled.
//   - Any provider failure (error, timeout, missing binding) starts the
//     fallback walk. Candidates are tried in fallback order, skipping every
//     provider already attempted in this call.
//   - When every candidate fails the caller receives ApologyMessage and a
//     nil error.
package generation
