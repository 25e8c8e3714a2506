package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a confirmer reading answers from reader.
func NewConfirmer(reader io.Reader, writer io.Writer) *Confirmer {
	return &Confirmer{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Confirm prints prompt and waits for y or n. An empty answer or EOF is "no".
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		if _, err := fmt.Fprintf(c.writer, "%s[y/N] ", FormatPrompt(prompt)); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := c.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(c.writer, FormatError("Please answer y or n.")); err != nil {
			return false, fmt.Errorf("failed to write message: %w", err)
		}
	}
}

// readLine reads one trimmed line, returning early if ctx is canceled.
func (c *Confirmer) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := c.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && (res.value == "" || !errors.Is(res.err, io.EOF)) {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
