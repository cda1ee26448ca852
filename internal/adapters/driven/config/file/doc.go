// Package file provides the TOML-backed configuration store.
//
// The file lives at <config dir>/config.toml, ~/.drivegate/config.toml by
// default. Keys are addressed with dots and written back as TOML tables:
//
//	[executable]
//	path = "backend/build/hard_drive_manager"
//
//	[stream]
//	drives_interval = "10s"
package file
