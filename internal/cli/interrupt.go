package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a context on SIGINT or SIGTERM and prints a
// short goodbye once.
type InterruptHandler struct {
	writer      io.Writer
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts returns a context that is canceled on interrupt.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.interrupt()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interrupted {
		return
	}
	h.interrupted = true

	// Every mutation is written as it happens, so there is nothing to flush.
	msg := "\n" + FormatWarning("Interrupted.") + "\n" + InfoStyle.Render("All changes were already saved.") + "\n"
	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
