package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptForSecret prompts for a secret on stdin. Input is hidden when
// stdin is a terminal; piped input is read up to the first newline.
func PromptForSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt+": ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr) // Add newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return string(b), nil
	}

	return ReadLine(os.Stdin)
}

// ReadLine reads a single line from r without its line terminator. The
// rest of the line is returned verbatim. A final line without a trailing
// newline is accepted.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm prompts for yes/no confirmation. Returns true for yes.
func Confirm(prompt string) (bool, error) {
	fmt.Fprint(os.Stderr, prompt+" [y/N]: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
