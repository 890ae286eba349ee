package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/licomply/licomply/internal/snapshot"
	"github.com/licomply/licomply/internal/telemetry"
)

// handleStream handles GET /v1/rules/stream: a server-sent-events feed of
// rule-set changes. Each event carries the new ETag and rule count so clients
// know when to refetch the snapshot.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes, unsub := snapshot.Subscribe()
	defer unsub()
	telemetry.SSEClients.Inc()
	defer telemetry.SSEClients.Dec()

	// initial event so clients learn the current state immediately
	writeChange(w, snapshot.Change{
		ETag:      snapshot.Load().ETag,
		RuleCount: len(snapshot.Load().Rules),
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			writeChange(w, change)
			flusher.Flush()
		}
	}
}

func writeChange(w http.ResponseWriter, change snapshot.Change) {
	payload, _ := json.Marshal(change)
	fmt.Fprintf(w, "event: rules\ndata: %s\n\n", payload)
}
