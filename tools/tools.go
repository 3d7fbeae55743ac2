//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install`; only their runtime
// libraries appear in go.mod.
package tools

// Development tools (install via `go install`):
//
// mockgen - Generates the port mocks under internal/mocks
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Version: v0.6.0 (matches the go.uber.org/mock module version)
//   Docs: https://github.com/uber-go/mock
