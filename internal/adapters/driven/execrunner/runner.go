// Package execrunner runs external commands via os/exec.
package execrunner

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// Ensure Runner implements the port.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes commands on the host and returns their stdout.
// Stderr is folded into the error so failures stay diagnosable.
type Runner struct{}

// New creates a command runner.
func New() *Runner {
	return &Runner{}
}

// Run executes the command, honoring context cancellation.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger.Debug("running %s %v", name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
