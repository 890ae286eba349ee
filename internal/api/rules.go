package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/licomply/licomply/internal/rules"
	"github.com/licomply/licomply/internal/snapshot"
	"github.com/licomply/licomply/internal/targeting"
	"github.com/licomply/licomply/internal/telemetry"
)

// handleSnapshot handles GET /v1/rules/snapshot with ETag support.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := snapshot.Load()
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", snap.ETag)
	writeJSON(w, http.StatusOK, snap)
}

type upsertRuleResponse struct {
	OK   bool   `json:"ok"`
	ETag string `json:"etag"`
}

// handleUpsertRule handles POST /v1/rules (admin): validate, persist, rebuild
// the snapshot, and return the new ETag.
func (s *Server) handleUpsertRule(w http.ResponseWriter, r *http.Request) {
	var rule rules.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := rules.ValidateRule(rule); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rule.Conditions.Expression != "" {
		if err := targeting.ValidateExpression(rule.Conditions.Expression); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := s.store.UpsertRule(r.Context(), rule); err != nil {
		log.Error().Err(err).Str("rule_id", rule.ID).Msg("rule upsert failed")
		writeError(w, http.StatusInternalServerError, "rule upsert failed")
		return
	}

	if err := s.RebuildSnapshot(r.Context()); err != nil {
		log.Error().Err(err).Msg("snapshot rebuild failed")
		writeError(w, http.StatusInternalServerError, "snapshot rebuild failed")
		return
	}

	writeJSON(w, http.StatusOK, upsertRuleResponse{OK: true, ETag: snapshot.Load().ETag})
}

// RebuildSnapshot reloads all rules from the store and swaps the atomic
// snapshot.
func (s *Server) RebuildSnapshot(ctx context.Context) error {
	rs, err := s.store.GetAllRules(ctx)
	if err != nil {
		return err
	}
	snap := snapshot.Build(s.store.SourceFile(), rs)
	snapshot.Update(snap)
	telemetry.SnapshotRules.Set(float64(len(rs)))
	return nil
}

// authAdmin guards write endpoints with the configured bearer key.
func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := extractBearerToken(r.Header.Get("Authorization"))
		if got == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.adminAPIKey)) != 1 {
			writeError(w, http.StatusForbidden, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
