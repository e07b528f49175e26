// Package inkscape shells out to the Inkscape binary to normalize an SVG
// document into the dialect the engine expects. The file is rewritten in
// place and re-parsed by the caller.
package inkscape

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExternalProcessError indicates the normalizer subprocess could not be
// started or exited non-zero. Callers can use errors.As to detect it; the
// underlying exec error is available through Unwrap.
type ExternalProcessError struct {
	Cmd    string
	Output string
	Err    error
}

// Error implements the error interface.
func (e *ExternalProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("normalizer %q failed: %v: %s", e.Cmd, e.Err, e.Output)
	}
	return fmt.Sprintf("normalizer %q failed: %v", e.Cmd, e.Err)
}

// Unwrap returns the underlying process error.
func (e *ExternalProcessError) Unwrap() error { return e.Err }

// Normalizer invokes an external SVG normalizer binary.
type Normalizer struct {
	Bin  string
	Args []string
}

// Default returns a Normalizer running Inkscape's in-place re-export.
func Default() *Normalizer {
	return &Normalizer{
		Bin:  "inkscape",
		Args: []string{"--export-overwrite", "--actions=export-do"},
	}
}

// Normalize rewrites the file at path in place. The subprocess blocks until
// it exits; no deadline is enforced beyond whatever ctx carries.
func (n *Normalizer) Normalize(ctx context.Context, path string) error {
	args := append(append([]string{}, n.Args...), path)
	cmd := exec.CommandContext(ctx, n.Bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &ExternalProcessError{Cmd: n.Bin, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}
