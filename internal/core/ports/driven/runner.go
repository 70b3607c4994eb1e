package driven

import "context"

// CommandRunner executes an external command and returns its combined
// output. Adapters that shell out (pdftotext, mystem) accept a runner
// so tests can substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
