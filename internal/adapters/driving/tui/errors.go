package tui

import "errors"

// ErrMissingDriveService is returned when the drive service is not provided.
var ErrMissingDriveService = errors.New("tui: drive service is required")
