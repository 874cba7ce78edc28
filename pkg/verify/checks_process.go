package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

// checkCommand runs the command directly, no shell. A command that cannot
// be started refutes the claim just like a non-zero exit: either way the
// claimed successful run did not happen.
func checkCommand(ctx context.Context, s claim.CommandSucceeds) (claim.Verdict, string) {
	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return claim.VerdictRefuted, fmt.Sprintf("Command failed with exit code: %d", exitErr.ExitCode())
		}
		return claim.VerdictRefuted, fmt.Sprintf("Command error: %v", err)
	}
	return claim.VerdictConfirmed, "Command succeeded"
}

// checkEnvVar treats an unset variable as a definite negative, not an
// inability to observe.
func checkEnvVar(s claim.EnvVarEquals) (claim.Verdict, string) {
	actual, ok := os.LookupEnv(s.Name)
	if !ok {
		return claim.VerdictRefuted, fmt.Sprintf("Environment variable not set: %s", s.Name)
	}
	if actual != s.Value {
		return claim.VerdictRefuted, fmt.Sprintf("Value mismatch: expected %q, got %q", s.Value, actual)
	}
	return claim.VerdictConfirmed, fmt.Sprintf("Environment variable matches: %s", s.Name)
}
