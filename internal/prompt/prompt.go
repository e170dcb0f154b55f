// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompt asks the operator for values and confirmations. On a
// terminal it uses huh forms; otherwise it reads plain lines, which keeps
// piped input and tests working.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator cancels or input runs out.
var ErrAborted = errors.New("aborted")

// Prompter asks questions on behalf of a command.
type Prompter interface {
	// Value asks for a non-empty value. hidden suppresses echo where the
	// input supports it.
	Value(title string, hidden bool) (string, error)
	// Confirm asks a yes/no question; the default answer is no.
	Confirm(title string) (bool, error)
}

// New picks the terminal prompter when in is an interactive terminal and
// the line prompter otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &formPrompter{in: in, out: out}
	}
	return NewLine(in, out)
}

type formPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *formPrompter) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithInput(p.in).
		WithOutput(p.out).
		WithShowHelp(true).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func (p *formPrompter) Value(title string, hidden bool) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				return errors.New("a value is required")
			}
			return nil
		})
	if hidden {
		inp = inp.EchoMode(huh.EchoModePassword)
	}
	if err := p.run(inp); err != nil {
		return "", err
	}
	return value, nil
}

func (p *formPrompter) Confirm(title string) (bool, error) {
	var value bool
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := p.run(c); err != nil {
		return false, err
	}
	return value, nil
}

// LinePrompter reads answers one line at a time.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLine returns a LinePrompter reading from in and writing prompts to out.
func NewLine(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		err = nil
	}
	if err == io.EOF {
		return "", ErrAborted
	}
	return line, err
}

// Value re-asks until a non-empty line arrives. Input is echoed; hidden is
// only honoured by the terminal prompter.
func (p *LinePrompter) Value(title string, hidden bool) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", title)
		line, err := p.readLine()
		if err != nil {
			fmt.Fprintln(p.out)
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (p *LinePrompter) Confirm(title string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", title)
	line, err := p.readLine()
	if err != nil {
		fmt.Fprintln(p.out)
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
