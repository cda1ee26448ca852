package domain

import "strings"

// Capability is a drive operation exposed by the gateway.
type Capability string

// The closed capability set.
const (
	CapabilityDetect         Capability = "detect"
	CapabilityScan           Capability = "scan"
	CapabilityRepair         Capability = "repair"
	CapabilityClone          Capability = "clone"
	CapabilityPartition      Capability = "partition"
	CapabilityRecommendation Capability = "recommendation"
	CapabilityLogs           Capability = "logs"
	CapabilityHealth         Capability = "health"
)

// AllCapabilities returns every capability the gateway must serve.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityDetect,
		CapabilityScan,
		CapabilityRepair,
		CapabilityClone,
		CapabilityPartition,
		CapabilityRecommendation,
		CapabilityLogs,
		CapabilityHealth,
	}
}

// IsValid returns true if the capability is part of the closed set.
func (c Capability) IsValid() bool {
	for _, known := range AllCapabilities() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (c Capability) String() string {
	return string(c)
}

// ModuleName is the value passed to the executable's --module flag.
type ModuleName string

// Module names understood by the managed executable.
const (
	ModuleDetect    ModuleName = "detect"
	ModuleScan      ModuleName = "scan"
	ModuleRepair    ModuleName = "repair"
	ModuleClone     ModuleName = "clone"
	ModulePartition ModuleName = "partition"
	ModuleAI        ModuleName = "ai"
	ModuleLogs      ModuleName = "logs"
	ModuleHealth    ModuleName = "health"
)

// String returns the string representation.
func (m ModuleName) String() string {
	return string(m)
}

// Mode is the positional token selecting simulated or real execution.
type Mode string

// Mode tokens.
const (
	ModeDryRun Mode = "dry_run"
	ModeLive   Mode = "live"
)

// ModeFor maps a dry-run flag to its positional token.
func ModeFor(dryRun bool) Mode {
	if dryRun {
		return ModeDryRun
	}
	return ModeLive
}

// IsValid returns true if the mode is one of the two tokens.
func (m Mode) IsValid() bool {
	return m == ModeDryRun || m == ModeLive
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// FileSystem is a partition file system accepted by the partition module.
type FileSystem string

// Supported file systems.
const (
	FileSystemExt4  FileSystem = "ext4"
	FileSystemNTFS  FileSystem = "ntfs"
	FileSystemFAT32 FileSystem = "fat32"
)

// ParseFileSystem normalises a file system name. The second value is false
// for unsupported names.
func ParseFileSystem(s string) (FileSystem, bool) {
	switch fs := FileSystem(strings.ToLower(strings.TrimSpace(s))); fs {
	case FileSystemExt4, FileSystemNTFS, FileSystemFAT32:
		return fs, true
	default:
		return "", false
	}
}
