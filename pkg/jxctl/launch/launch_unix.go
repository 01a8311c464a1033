//go:build unix

package launch

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

// Exec replaces the current process with the game client, execvp style.
// On success it does not return.
func Exec(session *client.Session, account *client.Account, program string, args []string) error {
	path, err := exec.LookPath(program)
	if err != nil {
		return &ExecError{Program: program, Err: err}
	}
	argv := append([]string{program}, args...)
	if err := syscall.Exec(path, argv, sessionEnv(os.Environ(), session, account)); err != nil {
		return &ExecError{Program: program, Err: err}
	}
	return nil
}
