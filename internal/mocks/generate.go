// Package mocks provides generated mocks for testing the rotorops session
// system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the port interfaces. Hand-written scripted doubles live in
// internal/mocks/auth; the generated mocks below are used where tests need
// ordered expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for the Directory interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=directory_mock.go github.com/rotorops/rotorops/internal/ports Directory
