// Package httpapi exposes the voice engine's JSON surface: matching,
// synthesis, audits, and contribution uploads.
package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/catalog"
	"github.com/agentwood/voice-engine/internal/match"
	"github.com/agentwood/voice-engine/internal/observability"
	"github.com/agentwood/voice-engine/internal/pipeline"
	"github.com/agentwood/voice-engine/internal/synth"
)

// Server holds the API's collaborators.
type Server struct {
	catalog  *catalog.Catalog
	matcher  *match.Matcher
	clients  map[string]*synth.Client
	fallback string
	pipe     *pipeline.Pipeline
	maxBody  int64
	log      zerolog.Logger
}

// Config wires a Server.
type Config struct {
	Catalog *catalog.Catalog
	Matcher *match.Matcher
	// Clients maps backend family name to its resilient client. Default
	// names the family used when a request does not pick one.
	Clients  map[string]*synth.Client
	Default  string
	Pipeline *pipeline.Pipeline
	MaxBody  int64
}

func NewServer(cfg Config, log zerolog.Logger) *Server {
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = 10 << 20
	}
	return &Server{
		catalog:  cfg.Catalog,
		matcher:  cfg.Matcher,
		clients:  cfg.Clients,
		fallback: cfg.Default,
		pipe:     cfg.Pipeline,
		maxBody:  cfg.MaxBody,
		log:      log.With().Str("component", "httpapi").Logger(),
	}
}

// Register attaches every route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/match", s.handleMatch)
	mux.HandleFunc("POST /v1/match/validate", s.handleValidate)
	mux.HandleFunc("POST /v1/synthesize", s.handleSynthesize)
	mux.HandleFunc("POST /v1/audit", s.handleAudit)
	mux.HandleFunc("POST /v1/contributions", s.handleContribution)
	mux.HandleFunc("GET /v1/voices", s.handleVoices)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

type matchRequest struct {
	Description string  `json:"description"`
	Threshold   float64 `json:"threshold,omitempty"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	result, err := s.matcher.MatchText(req.Description, req.Threshold)
	if err != nil {
		var noMatch *match.NoMatchError
		if errors.As(err, &noMatch) {
			observability.RecordMatch(0, err)
			writeError(w, http.StatusNotFound, noMatch.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "match failed")
		return
	}
	observability.RecordMatch(result.Score, nil)
	writeJSON(w, http.StatusOK, result)
}

type validateRequest struct {
	Description  string  `json:"description"`
	CurrentVoice string  `json:"current_voice"`
	Threshold    float64 `json:"threshold,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Description == "" || req.CurrentVoice == "" {
		writeError(w, http.StatusBadRequest, "description and current_voice are required")
		return
	}

	v := s.matcher.ValidateAssignment(match.Extract(req.Description), req.CurrentVoice, req.Threshold)
	writeJSON(w, http.StatusOK, v)
}

type synthesizeAPIRequest struct {
	Text        string        `json:"text"`
	Voice       string        `json:"voice,omitempty"`
	Description string        `json:"description,omitempty"`
	Family      string        `json:"family,omitempty"`
	Options     synth.Options `json:"options,omitempty"`
}

type synthesizeAPIResponse struct {
	Voice      string  `json:"voice"`
	AudioB64   string  `json:"audio_base64"`
	SampleRate int     `json:"sample_rate"`
	Format     string  `json:"format"`
	Duration   float64 `json:"duration,omitempty"`
}

// handleSynthesize resolves a voice (explicit name, or matched from the
// character description) and synthesizes the text with it.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeAPIRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	voiceName := req.Voice
	if voiceName == "" {
		if req.Description == "" {
			writeError(w, http.StatusBadRequest, "voice or description is required")
			return
		}
		result, err := s.matcher.MatchText(req.Description, 0)
		if err != nil {
			var noMatch *match.NoMatchError
			if errors.As(err, &noMatch) {
				writeError(w, http.StatusNotFound, noMatch.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "match failed")
			return
		}
		voiceName = result.Voice
	}

	profile, ok := s.catalog.Get(voiceName)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown voice "+voiceName)
		return
	}

	family := req.Family
	if family == "" {
		family = s.fallback
	}
	client, ok := s.clients[family]
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown backend family "+family)
		return
	}

	res, err := client.Synthesize(r.Context(), synth.Request{
		Text: req.Text,
		Voice: synth.VoiceRef{
			VoiceID:       profile.Name,
			ReferencePath: profile.ReferenceAudio,
		},
		Options: req.Options,
	})
	if err != nil {
		// The conversation keeps going without audio; tell the caller and
		// let it degrade.
		s.log.Error().Str("voice", voiceName).Err(err).Msg("synthesis failed")
		var verr *synth.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "no audio available")
		return
	}

	writeJSON(w, http.StatusOK, synthesizeAPIResponse{
		Voice:      voiceName,
		AudioB64:   base64.StdEncoding.EncodeToString(res.Audio),
		SampleRate: res.SampleRate,
		Format:     res.Format,
		Duration:   res.Duration,
	})
}

type auditRequest struct {
	Characters []match.AuditEntry `json:"characters"`
}

// handleAudit renders the matching audit as a markdown report.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if len(req.Characters) == 0 {
		writeError(w, http.StatusBadRequest, "characters list is empty")
		return
	}

	rows := s.matcher.Audit(req.Characters)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, match.RenderMarkdown(rows))
}

// handleContribution accepts a multipart voice upload and runs it through
// the ingestion pipeline.
func (s *Server) handleContribution(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(s.maxBody); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	file, header, err := r.FormFile("sample")
	if err != nil {
		writeError(w, http.StatusBadRequest, "sample file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload")
		return
	}

	rec, err := s.pipe.Process(r.Context(), pipeline.Upload{
		Uploader:  r.FormValue("uploader"),
		Character: r.FormValue("character"),
		Filename:  header.Filename,
		Data:      data,
	})
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			writeError(w, http.StatusUnprocessableEntity, stageErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "contribution processing failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        rec.ID,
		"status":    rec.Status,
		"seed":      rec.Seed,
		"tone":      rec.Tone,
		"energy":    rec.Energy,
		"formality": rec.Formality,
	})
}

type voiceSummary struct {
	Name     string   `json:"name"`
	Gender   string   `json:"gender"`
	Age      string   `json:"age"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	profiles := s.catalog.Profiles()
	out := make([]voiceSummary, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, voiceSummary{
			Name:     p.Name,
			Gender:   string(p.Gender),
			Age:      string(p.Age),
			Keywords: p.Keywords,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
