// Package instinct models confidence-scored behavioral rules ("instincts") and
// the delimited text format they are stored in.
//
// A file holds any number of records. Each record is a frontmatter block of
// `key: value` lines fenced by `---` delimiter lines, followed by a free-form
// body that runs until the next delimiter or the end of input:
//
//	---
//	id: prefer-table-tests
//	trigger: "when adding a Go test"
//	confidence: 0.7
//	domain: testing
//	---
//
//	## Action
//	Write a table-driven test.
//
// Parse decodes text into records using an explicit two-mode state machine;
// Render is its inverse for every recognized field. Filter selects records by
// domain and minimum confidence. Nothing in this package performs I/O.
package instinct
