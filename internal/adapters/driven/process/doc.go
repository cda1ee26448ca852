// Package process runs the managed drive executables.
//
// The Invoker builds the fixed argument contract
//
//	<executable> --json --module=<name> [args...]
//
// runs it to completion in a configured working directory, and classifies
// the outcome into the domain invocation errors. A bare Invoker runs the
// executable with no arguments at all, as the detailed-health tool expects.
//
// The Watcher keeps track of whether the configured executables are still
// present and runnable.
package process
