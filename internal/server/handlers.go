package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/xenopict/pkg/buildinfo"
	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/pipeline"
	"github.com/matzehuels/xenopict/pkg/render"
)

// Response headers set on render responses.
const (
	HeaderRequestHash = "X-Request-Hash"
	HeaderCache       = "X-Cache"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type colormapsResponse struct {
	Colormaps []string `json:"colormaps"`
	Default   string   `json:"default"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleColormaps(w http.ResponseWriter, r *http.Request) {
	def := s.defaults.Colormap
	if def == "" {
		def = colormap.DefaultName
	}
	writeJSON(w, http.StatusOK, colormapsResponse{Colormaps: s.colormaps.Names(), Default: def})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req pipeline.Request
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErrorStatus(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
		if len(req.Options.Formats) > 0 {
			format = req.Options.Formats[0]
		}
	}
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	req.Options = req.Options.Merge(s.defaults)
	req.Options.Formats = []string{format}
	req.Options.Logger = s.logger.With("request_id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set(HeaderRequestHash, res.RequestHash)
	w.Header().Set(HeaderCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with the status for err's code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, errors.HTTPStatus(err), err)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError && code == errors.ErrCodeInternal {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: msg},
		RequestID: RequestID(r.Context()),
	})
}
