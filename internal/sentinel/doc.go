// Package sentinel provides a const-able error type for sentinel error
// declarations.
//
// Errors created with errors.New live in package-level vars that any
// importer could reassign. Error is backed by a plain string, so sentinel
// values can be declared const and stay immutable, while errors.Is keeps
// working through wrapped chains.
package sentinel
