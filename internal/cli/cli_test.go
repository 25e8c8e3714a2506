package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/unroll/internal/model"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "eof is no", input: "", want: false},
		{name: "retry after junk", input: "maybe\ny\n", want: true},
		{name: "answer without newline", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "Cancel 2 subscriptions?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Cancel 2 subscriptions?")
		})
	}
}

func TestConfirm_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pipe that never delivers keeps the read blocked.
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	c := NewConfirmer(r, io.Discard)
	_, err := c.Confirm(ctx, "Reset?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatSuccess("saved"), SuccessIcon)
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatTitle("Wallet"), WalletIcon)
	assert.Contains(t, FormatStatus(model.StatusTrial), "Trial")
	assert.Contains(t, FormatStatus(model.StatusPaused), "Paused")
	assert.Contains(t, FormatWarning("careful"), WarningIcon)
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out)
	assert.False(t, h.WasInterrupted())

	h.interrupt()
	h.interrupt()

	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Interrupted."))
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewInterruptHandler(io.Discard)

	ctx := h.HandleInterrupts(parent)
	cancel()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}
