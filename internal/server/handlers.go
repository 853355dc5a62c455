package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/shorts-optimizer/internal/optimizer"
)

// ScriptRequest is the body of /optimize, /session/input and /session/submit
type ScriptRequest struct {
	Script string `json:"script"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOptimize runs one stateless optimization and returns the result
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScript(w, r, false)
	if !ok {
		return
	}
	if err := optimizer.CheckScript(req.Script); err != nil {
		s.kindErrorResponse(w, err)
		return
	}

	result, err := s.optimizer.Optimize(r.Context(), req.Script)
	if err == nil && result == nil {
		err = &optimizer.EmptyResponseError{}
	}
	if err != nil {
		s.kindErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// decodeScript reads a ScriptRequest. An empty body is allowed when allowEmpty is set.
func (s *Server) decodeScript(w http.ResponseWriter, r *http.Request, allowEmpty bool) (ScriptRequest, bool) {
	var req ScriptRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) && allowEmpty {
		return req, true
	}
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorBody{
			Error: "Invalid request body: " + err.Error(),
			Kind:  optimizer.KindValidation,
		})
		return req, false
	}
	return req, true
}
