package process

import (
	"fmt"
	"os"
	"runtime"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// CheckExecutable verifies that path names a regular file the current user
// can run. Failures wrap domain.ErrProcessLaunch.
func CheckExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("%w: executable path is empty", domain.ErrProcessLaunch)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProcessLaunch, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrProcessLaunch, path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", domain.ErrProcessLaunch, path)
	}
	return nil
}
