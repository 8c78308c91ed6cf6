// Package textutil provides small text helpers for CLI output and file
// naming: filesystem-safe tokens, confidence bars, and extraction of the
// action line from an instinct body.
package textutil
