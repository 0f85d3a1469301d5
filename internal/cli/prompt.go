// Package cli implements the interactive surface: the main menu, entry and
// edit modes, batch entry and the confirmation prompts used by upgrades.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter reads operator decisions and free-form input from a terminal.
// It satisfies importer.Confirmer; tests substitute a scripted reader.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter over stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewPrompterFrom creates a prompter over arbitrary streams.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns one trimmed input line. EOF returns an
// empty string and the error; callers treat it like quitting.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; only an explicit "y" accepts.
func (p *Prompter) Confirm(prompt string) bool {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return false
	}
	return strings.EqualFold(line, "y")
}

// Pause waits for Enter, keeping output on screen between modes.
func (p *Prompter) Pause(message string) {
	fmt.Fprint(p.out, message)
	_, _ = p.reader.ReadString('\n')
}
