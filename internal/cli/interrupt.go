package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a context on SIGINT or SIGTERM and says goodbye.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler that writes its message to writer,
// or to stdout when writer is nil.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts returns a context that is canceled on the first interrupt
// signal. Signal handling stops once the returned context is done.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancelFunc = cancel
	h.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.interrupt()
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

	msg := "\n" + FormatWarning("Interrupted.") + "\n" +
		FormatInfo("Every completed change is already saved. Bye! "+PiggyIcon) + "\n"
	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		slog.Debug("failed to write interrupt message", "error", err)
	}

	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// WasInterrupted reports whether an interrupt signal arrived.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
