// Package driven holds the interfaces core services call to reach the
// outside world: the managed executable, output parsing, configuration,
// history storage and the in-process recommendation rules.
//
// ProcessInvoker, OutputNormaliser and ConfigStore are always wired.
// InvocationStore and Recommender may be nil; the gateway then skips
// history and forwards recommendations to the executable's ai module.
//
// Only the domain package may be imported from here.
package driven
