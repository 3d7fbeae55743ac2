// Package mocks provides mock implementations for testing the shopfront
// state layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the port interfaces, plus simple hand-written doubles under backend/
// for tests that want scriptable or stateful behavior without codegen.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for CredentialStore interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=credential_store_mock.go github.com/online-shop/shopfront/internal/ports CredentialStore
