package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/types"
)

// bodyOverhead leaves room for JSON escaping and the job fields on top of the two
// texts, so oversize texts reach the engine and get a field-level 413.
const bodyOverhead = 64 << 10

// BatchRequest is the body of POST /score/batch.
type BatchRequest struct {
	Requests []types.ScoreRequest `json:"requests"`
}

// BatchItem is one entry of a batch response. Status mirrors what POST /score would
// have returned for the same request.
type BatchItem struct {
	Index  int                `json:"index"`
	Status int                `json:"status"`
	Result *types.MatchResult `json:"result,omitempty"`
	Error  *errorBody         `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /score/batch, in request order.
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

// TaxonomyResponse describes the active skill catalogue.
type TaxonomyResponse struct {
	Version string              `json:"version"`
	Source  string              `json:"source"`
	Count   int                 `json:"count"`
	Skills  []types.SkillEntry  `json:"skills,omitempty"`
	Roles   []types.RoleProfile `json:"roles,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	tax, err := s.engine.Registry().Current()
	if err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "taxonomy_version": tax.Version()})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, s.requestLimit(), &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := s.engine.ScoreResume(req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	log.Printf("[score] %s overall=%.2f tier=%s job=%t", middleware.GetRequestID(r), result.OverallMatchScore, result.Tier, req.Job != nil)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decodeJSON(w, r, s.requestLimit()*MaxBatchSize, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	switch {
	case len(req.Requests) == 0:
		s.errorResponse(w, r, &ErrValidation{Field: "requests", Message: "at least one request is required"})
		return
	case len(req.Requests) > MaxBatchSize:
		s.errorResponse(w, r, &ErrValidation{Field: "requests", Message: "too many requests in batch"})
		return
	}

	results, err := s.engine.ScoreBatch(r.Context(), req.Requests, s.workers)
	if err != nil {
		// The client went away; nobody is listening for a body.
		log.Printf("[score] %s batch aborted: %v", middleware.GetRequestID(r), err)
		return
	}

	resp := BatchResponse{Results: make([]BatchItem, len(results))}
	failed := 0
	for i, res := range results {
		item := BatchItem{Index: res.Index, Status: http.StatusOK, Result: res.Result}
		if res.Err != nil {
			body := newErrorBody(res.Err)
			item.Status = HTTPStatus(res.Err)
			item.Error = &body
			failed++
		}
		resp.Results[i] = item
	}

	log.Printf("[score] %s batch size=%d failed=%d", middleware.GetRequestID(r), len(results), failed)
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeJSON(w, r, s.requestLimit(), &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	analysis, err := s.engine.Analyze(req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	log.Printf("[analyze] %s overall=%.2f role=%q", middleware.GetRequestID(r), analysis.OverallScore, analysis.JobRole.Role)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleTaxonomy lists the active catalogue. ?category= restricts the skill list.
func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	tax, err := s.engine.Registry().Current()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	skills := tax.Entries()
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat, err := types.ParseSkillCategory(raw)
		if err != nil {
			s.errorResponse(w, r, &ErrValidation{Field: "category", Message: err.Error()})
			return
		}
		filtered := skills[:0]
		for _, entry := range skills {
			if entry.Category == cat {
				filtered = append(filtered, entry)
			}
		}
		skills = filtered
	}

	s.jsonResponse(w, http.StatusOK, TaxonomyResponse{
		Version: tax.Version(),
		Source:  tax.Source(),
		Count:   len(skills),
		Skills:  skills,
		Roles:   tax.Roles(),
	})
}

// handleTaxonomyReload re-reads the configured taxonomy file. A failed reload keeps
// serving the previous catalogue.
func (s *Server) handleTaxonomyReload(w http.ResponseWriter, r *http.Request) {
	tax, err := s.engine.Registry().Reload(s.taxonomyPath)
	if err != nil {
		log.Printf("[taxonomy] %s reload failed: %v", middleware.GetRequestID(r), err)
		s.errorResponse(w, r, err)
		return
	}

	log.Printf("[taxonomy] reloaded version %s from %s (%d skills)", tax.Version(), tax.Source(), tax.Len())
	s.jsonResponse(w, http.StatusOK, TaxonomyResponse{
		Version: tax.Version(),
		Source:  tax.Source(),
		Count:   tax.Len(),
	})
}

func (s *Server) requestLimit() int64 {
	return int64(2*s.engine.MaxInputBytes() + bodyOverhead)
}

// decodeJSON reads a single JSON object of at most limit bytes into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return err
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	}
	if dec.More() {
		return &ErrValidation{Field: "body", Message: "unexpected data after JSON object"}
	}
	return nil
}

