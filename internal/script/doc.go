// Package script executes config scripts against a writable store.
//
// This package is internal to the writable CLI. A [Runner] creates a fresh
// integer store for every run, attaches the named subscribers the script
// asks for, and writes one line of output per notification or print step.
//
// Users of the writable library should not need this package; it exists to
// demonstrate the store from the command line.
package script
