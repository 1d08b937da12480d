// Package taskrunner is the public entry point for running tk verbs. It exposes
// the `Executor` interface plus helpers (`Factory`, `Resolve`) so CLI packages can
// build dispatch dependencies once and obtain a runner, while unit tests can swap
// in fakes. Every resolved runner prints a one-line summary after dispatches that
// touched more than one manager.
package taskrunner
