package process

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func TestInvoke_ArgumentContract(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", `printf '%s\n' "$@"`)

	inv := New(Config{Executable: exe, WorkDir: dir})
	out, err := inv.Invoke(context.Background(), domain.InvocationRequest{
		Module: domain.ModulePartition,
		Args:   []string{"sda", "100", "ext4", "dry_run"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t,
		[]string{"--json", "--module=partition", "sda", "100", "ext4", "dry_run"},
		strings.Split(strings.TrimSpace(out.Stdout), "\n"))
}

func TestInvoke_WorkingDirectory(t *testing.T) {
	exeDir := t.TempDir()
	workDir := t.TempDir()
	exe := writeScript(t, exeDir, "manager", "pwd")

	out, err := New(Config{Executable: exe, WorkDir: workDir}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleDetect})

	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.Stdout))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvoke_NonzeroExitIsExecutionFailure(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", `echo '{"driveName":"sda"}'; echo "disk busy" >&2; exit 3`)

	out, err := New(Config{Executable: exe, WorkDir: dir}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleScan, Args: []string{"sda"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcessExecution)

	var invErr *domain.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, 3, invErr.ExitCode)
	assert.Equal(t, domain.ModuleScan, invErr.Module)
	assert.Contains(t, invErr.Stderr, "disk busy")
	assert.Contains(t, err.Error(), "disk busy")

	require.NotNil(t, out)
	assert.Contains(t, out.Stdout, "sda")
}

func TestInvoke_NonzeroExitWithEmptyStdout(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", "exit 1")

	_, err := New(Config{Executable: exe, WorkDir: dir}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleLogs})

	assert.ErrorIs(t, err, domain.ErrProcessExecution)
	assert.NotErrorIs(t, err, domain.ErrEmptyOutput)
}

func TestInvoke_EmptyOutput(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", `printf '  \n\t\n'; echo "nothing detected" >&2`)

	_, err := New(Config{Executable: exe, WorkDir: dir}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleDetect})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyOutput)
	assert.Contains(t, err.Error(), "nothing detected")
}

func TestInvoke_BackgroundChildHoldingStdout(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
		stdout  string
	}{
		{
			name:   "clean exit with document",
			script: `echo '{"driveName":"sda"}'; (sleep 4) & exit 0`,
			stdout: `{"driveName":"sda"}`,
		},
		{
			name:    "clean exit without output",
			script:  `(sleep 4) & exit 0`,
			wantErr: domain.ErrEmptyOutput,
		},
		{
			name:    "nonzero exit",
			script:  `echo '{"driveName":"sda"}'; (sleep 4) & exit 2`,
			wantErr: domain.ErrProcessExecution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			exe := writeScript(t, dir, "manager", tt.script)

			out, err := New(Config{Executable: exe, WorkDir: dir}).
				Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleDetect})

			assert.NotErrorIs(t, err, domain.ErrProcessLaunch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, out.ExitCode)
			assert.Equal(t, tt.stdout, strings.TrimSpace(out.Stdout))
		})
	}
}

func TestInvoke_MissingExecutable(t *testing.T) {
	dir := t.TempDir()

	_, err := New(Config{Executable: filepath.Join(dir, "absent"), WorkDir: dir}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleDetect})

	assert.ErrorIs(t, err, domain.ErrProcessLaunch)
}

func TestInvoke_Timeout(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", "exec sleep 5")

	start := time.Now()
	_, err := New(Config{Executable: exe, WorkDir: dir, Timeout: 100 * time.Millisecond}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleHealth, Args: []string{"sda"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvocationTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestInvoke_CallerCancellation(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", "exec sleep 5")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := New(Config{Executable: exe, WorkDir: dir}).
		Invoke(ctx, domain.InvocationRequest{Module: domain.ModuleDetect})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvoke_Bare(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "health_monitor_full", `echo "args:$#"`)

	out, err := New(Config{Executable: exe, WorkDir: dir, Bare: true}).
		Invoke(context.Background(), domain.InvocationRequest{Module: domain.ModuleHealth, Args: []string{"sda"}})

	require.NoError(t, err)
	assert.Equal(t, "args:0", strings.TrimSpace(out.Stdout))
}

func TestInvoke_RateLimited(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "manager", "echo ok")

	inv := New(Config{Executable: exe, WorkDir: dir, RatePerSecond: 0.01, Burst: 1})
	req := domain.InvocationRequest{Module: domain.ModuleDetect}

	_, err := inv.Invoke(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = inv.Invoke(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for invocation slot")
}

func TestNew_ResolvesRelativePath(t *testing.T) {
	inv := New(Config{Executable: "backend/build/hard_drive_manager"})
	assert.True(t, filepath.IsAbs(inv.Executable()))
}
