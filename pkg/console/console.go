// Package console implements the terminal user-interaction boundary:
// informational notices on stderr and blocking prompts on stdin.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Terminal reads answers line by line from an input stream. Prompt is
// cancellable through the context even though the underlying read is
// blocking: a single reader goroutine feeds a channel and a cancelled
// context wins the select.
type Terminal struct {
	out     io.Writer
	in      io.Reader
	once    sync.Once
	answers chan string
	errs    chan error
}

func NewTerminal() *Terminal {
	return New(os.Stdin, os.Stderr)
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		out:     out,
		in:      in,
		answers: make(chan string),
		errs:    make(chan error, 1),
	}
}

// Notify writes an informational line. Never blocks on user input.
func (t *Terminal) Notify(message string) {
	_, _ = fmt.Fprintln(t.out, message)
}

// Prompt writes the question and blocks until a line arrives or the
// context is cancelled. An answer arriving after cancellation is
// delivered to the next Prompt, which is acceptable for a process
// that aborts on cancellation anyway.
func (t *Terminal) Prompt(ctx context.Context, message string) (string, error) {
	t.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(t.in)
			for scanner.Scan() {
				t.answers <- scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				t.errs <- err
				return
			}
			t.errs <- io.EOF
		}()
	})

	_, _ = fmt.Fprintf(t.out, "%s ", message)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-t.errs:
		return "", fmt.Errorf("read answer: %w", err)
	case answer := <-t.answers:
		return strings.TrimSpace(answer), nil
	}
}
