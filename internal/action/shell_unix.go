//go:build !windows

package action

import (
	"context"
	"os/exec"
)

func interpreterCommand(ctx context.Context, command string) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", "-c", command)
}
