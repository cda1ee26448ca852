package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapability_IsValid(t *testing.T) {
	for _, c := range AllCapabilities() {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, Capability("format").IsValid())
	assert.False(t, Capability("").IsValid())
	assert.Len(t, AllCapabilities(), 8)
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeDryRun, ModeFor(true))
	assert.Equal(t, ModeLive, ModeFor(false))
	assert.Equal(t, "dry_run", ModeFor(true).String())
	assert.True(t, ModeLive.IsValid())
	assert.False(t, Mode("DRY_RUN").IsValid())
}

func TestParseFileSystem(t *testing.T) {
	tests := []struct {
		in   string
		want FileSystem
		ok   bool
	}{
		{"ext4", FileSystemExt4, true},
		{"NTFS", FileSystemNTFS, true},
		{" Fat32 ", FileSystemFAT32, true},
		{"btrfs", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFileSystem(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvocationRequest_Argv(t *testing.T) {
	req := InvocationRequest{
		Capability: CapabilityClone,
		Module:     ModuleClone,
		Args:       []string{"sda", "sdb", "dry_run"},
	}
	assert.Equal(t, []string{"--json", "--module=clone", "sda", "sdb", "dry_run"}, req.Argv())

	bare := InvocationRequest{Module: ModuleDetect}
	assert.Equal(t, []string{"--json", "--module=detect"}, bare.Argv())
}
