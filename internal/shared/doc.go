// Package shared provides common utilities and test helpers used across the
// codebase. It is a home for functionality that belongs to no specific domain
// or architectural layer.
//
// The testutil subpackage carries testing utilities, currently an in-memory
// slog recorder for asserting on log output.
//
// This package must not grow business logic, external dependencies beyond
// the standard library, or circular dependencies with other internal
// packages.
package shared
