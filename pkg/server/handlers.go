package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/mulnet/pkg/buildinfo"
	"github.com/matzehuels/mulnet/pkg/errors"
	mio "github.com/matzehuels/mulnet/pkg/io"
	"github.com/matzehuels/mulnet/pkg/pipeline"
	"github.com/matzehuels/mulnet/pkg/render/nodelink"
)

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	A       json.RawMessage  `json:"a"`
	B       json.RawMessage  `json:"b"`
	Options pipeline.Options `json:"options"`
}

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Input   json.RawMessage  `json:"input"`
	To      string           `json:"to"`
	Options pipeline.Options `json:"options"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Input    json.RawMessage  `json:"input"`
	Format   string           `json:"format"` // svg (default) or png
	Detailed bool             `json:"detailed"`
	Options  pipeline.Options `json:"options"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Error     string      `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decode(w, r, &req) {
		return
	}
	a, err := loadInline("a", req.A)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := loadInline("b", req.B)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := s.runner.CompareSources(r.Context(), a, b, s.merge(req.Options))
	status := http.StatusOK
	if !rec.OK() {
		status = statusFor(rec.ErrorCode)
	}
	writeJSON(w, status, rec)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.To == "" {
		req.To = pipeline.FormatENewick
	}
	src, err := loadInline("input", req.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, hit, err := s.runner.Convert(r.Context(), src, req.To, s.merge(req.Options))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(req.To))
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	src, err := loadInline("input", req.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rt, err := s.runner.Build(r.Context(), src, s.merge(req.Options))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dot := nodelink.ToDOT(rt.Network(), nodelink.Options{Detailed: req.Detailed})
	var (
		out   []byte
		ctype string
	)
	switch strings.ToLower(req.Format) {
	case "", "svg":
		out, err = nodelink.RenderSVG(r.Context(), dot)
		ctype = "image/svg+xml"
	case "png":
		out, err = nodelink.RenderPNG(r.Context(), dot)
		ctype = "image/png"
	case "dot":
		out, ctype = []byte(dot), "text/vnd.graphviz"
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "invalid render format: %q (must be one of: svg, png, dot)", req.Format)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// merge applies request options over the server defaults. Requests may
// shorten the edit distance timeout but never lengthen or disable it.
func (s *Server) merge(req pipeline.Options) pipeline.Options {
	d := s.cfg.Defaults
	out := pipeline.Options{
		Threshold:        d.Threshold,
		Normalize:        d.Normalize,
		GEDTimeout:       d.GEDTimeout,
		SkipEditDistance: d.SkipEditDistance || req.SkipEditDistance,
		Refresh:          req.Refresh,
		Logger:           d.Logger,
	}
	if req.Threshold != nil || req.Normalize != nil {
		out.Threshold, out.Normalize = req.Threshold, req.Normalize
	}
	if req.GEDTimeout > 0 && (d.GEDTimeout < 0 || req.GEDTimeout < d.GEDTimeout) {
		out.GEDTimeout = req.GEDTimeout
	}
	return out
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeStatus(w, r, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput, "request body too large")
			return false
		}
		s.writeStatus(w, r, http.StatusBadRequest, errors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// loadInline reads a request input: a JSON string holds Newick or extended
// Newick text, a JSON object holds a network graph.
func loadInline(name string, raw json.RawMessage) (*mio.Source, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing %q", name)
	case raw[0] == '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %q", name)
		}
		return mio.Load(name, []byte(text))
	case raw[0] == '{':
		return mio.Load(name+".json", raw)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "%q must be a string or a graph object", name)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	s.writeStatus(w, r, status, code, errors.UserMessage(err))
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, code errors.Code, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeParse, errors.ErrCodeStructural, errors.ErrCodeDuplicateReticulation,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func contentType(format string) string {
	if format == pipeline.FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
