package server

import (
	"fmt"
	"strings"

	"github.com/df07/go-band-raytracer/pkg/core"
)

// WebLogger implements core.Logger by tagging each message with its render
// ID before handing it to the server log (echo's logger in production)
type WebLogger struct {
	renderID string
	out      core.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, out core.Logger) core.Logger {
	return &WebLogger{
		renderID: renderID,
		out:      out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	if wl.out == nil {
		return
	}

	// echo's logger terminates every entry itself
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	wl.out.Printf("[%s] %s", wl.renderID, message)
}
