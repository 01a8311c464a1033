//go:build windows

package launch

import (
	"os"
	"os/exec"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

// Exec runs the game client as a child process; Windows has no execvp
// equivalent. It blocks until the client exits.
func Exec(session *client.Session, account *client.Account, program string, args []string) error {
	cmd := exec.Command(program, args...)
	cmd.Env = sessionEnv(os.Environ(), session, account)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &ExecError{Program: program, Err: err}
	}
	return nil
}
