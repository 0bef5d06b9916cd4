package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/wordsphere/pkg/buildinfo"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	wsio "github.com/matzehuels/wordsphere/pkg/io"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type layoutResponse struct {
	SessionID string             `json:"session_id"`
	Radius    float64            `json:"radius"`
	Words     []cloud.VisualWord `json:"words"`
}

type analyzeRequest struct {
	URL     string `json:"url"`
	Refresh bool   `json:"refresh,omitempty"`
}

type analyzeResponse struct {
	SessionID string             `json:"session_id"`
	Items     []cloud.WordItem   `json:"items"`
	Radius    float64            `json:"radius"`
	Words     []cloud.VisualWord `json:"words"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	words, err := wsio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.runner.Layout(r.Context(), words, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		SessionID: uuid.NewString(),
		Radius:    snap.Radius,
		Words:     snap.Words,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	words, err := wsio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Words = words

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Session-ID", result.SessionID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := errors.ValidateURL(req.URL); err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.runner.Analyze(r.Context(), req.URL, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.runner.Layout(r.Context(), items, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		SessionID: uuid.NewString(),
		Items:     items,
		Radius:    snap.Radius,
		Words:     snap.Words,
	})
}

// renderOptions reads ?format, ?width, ?height, ?scale, ?azimuth, ?polar and
// ?background from the query string. Numbers must be finite; range limits
// are enforced by [pipeline.Options.ValidateForRender].
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Background: q.Get("background")}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"scale", &opts.Scale},
		{"azimuth", &opts.Azimuth},
		{"polar", &opts.Polar},
	}
	for _, f := range floats {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", f.name, raw)
		}
		*f.dst = v
	}
	return opts, nil
}
