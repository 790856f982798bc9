// Package confirm provides the yes/no confirmation capability used at
// the release procedure's interactive suspension points.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	// Confirm prompts with the given question and returns the answer.
	// The default answer (on empty input) is no.
	Confirm(prompt string) (bool, error)
}

// Terminal is an interactive Confirmer reading answers line by line.
// A single buffered reader is kept so consecutive prompts in chained
// mode do not lose buffered input.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Confirmer on the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prompts and reads a single line. "y" or "yes" (any case)
// answers yes; everything else, including EOF, answers no.
func (t *Terminal) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Auto is a non-interactive Confirmer returning a fixed answer.
// It backs unattended mode, where every prompt proceeds by default.
type Auto struct {
	Answer bool
}

// Confirm returns the configured answer without blocking.
func (a Auto) Confirm(string) (bool, error) {
	return a.Answer, nil
}
