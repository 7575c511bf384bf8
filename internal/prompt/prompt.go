// Package prompt reads validated answers from an interactive user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Prompter asks questions on an output stream and reads single-line answers
// from an input stream.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New creates a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer { return p.out }

// Ask prints question and returns the answer with surrounding whitespace
// removed. A final line without a trailing newline is still returned;
// io.EOF is only reported once the input is exhausted.
func (p *Prompter) Ask(question string) (string, error) {
	_, _ = fmt.Fprint(p.out, question)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose asks question until the lower-cased answer is one of options,
// printing invalid after every rejected answer.
func (p *Prompter) Choose(question string, options []string, invalid string) (string, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if slices.Contains(options, answer) {
			return answer, nil
		}
		_, _ = fmt.Fprintln(p.out, invalid)
	}
}

// Confirm reports whether the answer to question is "yes".
// Anything else, including an empty line, means no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}
