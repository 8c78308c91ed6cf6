// Package api hosts the CLI-facing workflows: Import, Export, and Status.
//
// Each workflow composes the collection loader, the merge engine, filters,
// and the renderer, and returns a typed result. Nothing here prints; the
// command layer decides how results are shown. "Nothing to do" outcomes are
// reported as StatusEmpty on the result rather than as errors, while missing
// sources and unparseable import payloads are returned as errors.
package api
