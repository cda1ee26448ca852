// Package services implements the driving port interfaces.
// Services contain the gateway logic and orchestrate calls to driven ports
// (process invoker, output normaliser, stores).
//
// Services are pure Go; everything that touches processes, files or the
// network lives behind a driven port.
package services
