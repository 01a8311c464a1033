// Package desktop writes XDG desktop entries that launch a game client
// through jxctl exec.
package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Entry describes one desktop launcher to create.
type Entry struct {
	Name        string
	SessionName string
	CharacterID string
	Program     string
	Args        []string
}

// Create writes the .desktop file under the XDG applications directory
// and returns its path.
func Create(entry Entry) (string, error) {
	dir, err := applicationsDir()
	if err != nil {
		return "", err
	}
	contents := fmt.Sprintf(`[Desktop Entry]
Name=%s
Comment=Launch game client
Exec=%s
Terminal=false
Type=Application
Categories=Game;
`, entry.Name, execCommand(entry))

	path := filepath.Join(dir, sanitizeFilename(entry.Name)+".desktop")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return "", fmt.Errorf("failed to write desktop entry: %w", err)
	}
	return path, nil
}

// applicationsDir resolves ${XDG_DATA_HOME:-$HOME/.local/share}/applications.
func applicationsDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("no home directory available: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, "applications")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create applications dir: %w", err)
	}
	return dir, nil
}

func execCommand(entry Entry) string {
	parts := []string{"jxctl", "exec"}
	if entry.SessionName != "" {
		parts = append(parts, "--session-name", entry.SessionName)
	}
	parts = append(parts, "--character-id", entry.CharacterID, entry.Program)
	if len(entry.Args) > 0 {
		parts = append(parts, "--")
		parts = append(parts, entry.Args...)
	}
	return strings.Join(parts, " ")
}

func sanitizeFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, name)
	return strings.ToLower(mapped)
}
