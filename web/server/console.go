package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding messages to a render socket
type WebLogger struct {
	renderID string
	out      chan<- Message
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, out chan<- Message) core.Logger {
	return &WebLogger{
		renderID: renderID,
		out:      out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, strings.TrimSuffix(message, "\n"))

	if wl.out == nil {
		return
	}
	// Dropped when the send buffer is full
	select {
	case wl.out <- Message{
		Type: "console",
		Console: &ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		},
	}:
	default:
	}
}
