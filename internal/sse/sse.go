// Package sse writes Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	headerContentType     = "Content-Type"
	headerCacheControl    = "Cache-Control"
	headerConnection      = "Connection"
	headerXAccelBuffering = "X-Accel-Buffering"

	// ContentType is the SSE media type.
	ContentType = "text/event-stream"
)

// Event is one Server-Sent Event. Data is encoded as JSON.
// Format: event: <Type>\nid: <ID>\ndata: <JSON>\n\n
type Event struct {
	Type string
	ID   string
	Data any
}

type flusher interface {
	Flush()
}

// SetHeaders sets the standard SSE headers on w.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set(headerContentType, ContentType)
	w.Header().Set(headerCacheControl, "no-cache")
	w.Header().Set(headerConnection, "keep-alive")
	w.Header().Set(headerXAccelBuffering, "no")
}

// Write encodes ev to w and flushes when w supports it.
func Write(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	if ev.Type != "" {
		if _, err = fmt.Fprintf(w, "event: %s\n", ev.Type); err != nil {
			return fmt.Errorf("write event type: %w", err)
		}
	}
	if ev.ID != "" {
		if _, err = fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return fmt.Errorf("write event id: %w", err)
		}
	}
	if _, err = fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write event data: %w", err)
	}

	if f, ok := w.(flusher); ok {
		f.Flush()
	}
	return nil
}
