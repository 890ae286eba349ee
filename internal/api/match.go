package api

import (
	"encoding/json"
	"net/http"

	"github.com/licomply/licomply/internal/engine"
	"github.com/licomply/licomply/internal/rules"
	"github.com/licomply/licomply/internal/snapshot"
)

// matchResponse is the payload of POST /api/match. Matched rules come back in
// the matcher's priority-sorted order.
type matchResponse struct {
	OK      bool                  `json:"ok"`
	Input   rules.BusinessProfile `json:"input"`
	Matched []rules.Rule          `json:"matched"`
}

// handleMatch handles POST /api/match.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	profile, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	snap := snapshot.Load()
	matched := engine.Match(snap.Rules, profile)

	writeJSON(w, http.StatusOK, matchResponse{
		OK:      true,
		Input:   profile,
		Matched: matched,
	})
}

// decodeProfile reads the duck-typed request body and coerces it into a
// BusinessProfile. Field-level leniency lives in ProfileInput.Coerce; only a
// body that is not JSON at all is rejected.
func decodeProfile(w http.ResponseWriter, r *http.Request) (rules.BusinessProfile, bool) {
	var in rules.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return rules.BusinessProfile{}, false
	}
	return in.Coerce(), true
}
