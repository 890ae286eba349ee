package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/licomply/licomply/internal/engine"
	"github.com/licomply/licomply/internal/narrative"
	"github.com/licomply/licomply/internal/report"
	"github.com/licomply/licomply/internal/rules"
	"github.com/licomply/licomply/internal/snapshot"
	"github.com/licomply/licomply/internal/telemetry"
)

// Rendering-path discriminator values for the "used" field.
const (
	usedAI       = "ai"
	usedFallback = "fallback"
)

// structuredReportResponse is the payload of POST /api/report: the
// machine-consumable composition with header and ordered category sections.
type structuredReportResponse struct {
	OK     bool          `json:"ok"`
	Report report.Report `json:"report"`
}

// generateReportResponse is the payload of POST /api/generate-report. Report
// is flattened display text; Used tells which rendering path produced it.
type generateReportResponse struct {
	OK     bool   `json:"ok"`
	Used   string `json:"used"`
	Report string `json:"report"`
}

// handleReport handles POST /api/report: always the deterministic composer,
// returned as a structured object.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	profile, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	snap := snapshot.Load()
	matched := engine.Match(snap.Rules, profile)

	writeJSON(w, http.StatusOK, structuredReportResponse{
		OK:     true,
		Report: report.Compose(profile, matched),
	})
}

// handleGenerateReport handles POST /api/generate-report. It first tries the
// narrative generator; on any failure it silently falls back to the
// deterministic composer. The caller never sees a collaborator error, only
// the "used" discriminator.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	profile, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	snap := snapshot.Load()
	matched := engine.Match(snap.Rules, profile)

	if s.generator != nil {
		if text, ok := s.generateNarrative(r.Context(), snap.ETag, profile, matched); ok {
			writeJSON(w, http.StatusOK, generateReportResponse{OK: true, Used: usedAI, Report: text})
			return
		}
	}

	rep := report.Compose(profile, matched)
	writeJSON(w, http.StatusOK, generateReportResponse{OK: true, Used: usedFallback, Report: rep.Render()})
}

func (s *Server) generateNarrative(ctx context.Context, etag string, profile rules.BusinessProfile, matched []rules.Rule) (string, bool) {
	key := narrative.Key(etag, profile)
	if text, ok := s.cache.Get(key); ok {
		telemetry.NarrativeRequests.WithLabelValues("cache_hit").Inc()
		return text, true
	}

	genCtx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	text, err := s.generator.Generate(genCtx, profile, matched)
	if err != nil {
		telemetry.NarrativeRequests.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("narrative generation failed, using fallback")
		return "", false
	}

	telemetry.NarrativeRequests.WithLabelValues("ok").Inc()
	s.cache.Put(etag, key, text)
	return text, true
}
