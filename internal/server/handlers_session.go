package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/shorts-optimizer/internal/export"
	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/session"
)

// keepAliveInterval spaces comment lines on idle event streams
var keepAliveInterval = 15 * time.Second

// StateResponse is the session snapshot plus its derived status
type StateResponse struct {
	session.State
	Status session.Status `json:"status"`
}

func newStateResponse(st session.State) StateResponse {
	return StateResponse{State: st, Status: st.Status()}
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, newStateResponse(s.controller.State()))
}

func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScript(w, r, false)
	if !ok {
		return
	}
	s.controller.SetInput(req.Script)
	s.jsonResponse(w, http.StatusOK, newStateResponse(s.controller.State()))
}

// handleSubmit starts an optimization of the body script, or of the current
// input when the body carries none. The call outlives the request.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScript(w, r, true)
	if !ok {
		return
	}

	current := s.controller.State()
	script := req.Script
	if strings.TrimSpace(script) == "" {
		script = current.InputScript
	}
	if err := optimizer.CheckScript(script); err != nil {
		s.kindErrorResponse(w, err)
		return
	}

	if _, accepted := s.controller.Submit(context.WithoutCancel(r.Context()), script); !accepted {
		msg := "An optimization is already in flight"
		if current.Result != nil {
			msg = "A result is shown; reset the session first"
		}
		s.errorResponse(w, http.StatusConflict, msg)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, newStateResponse(s.controller.State()))
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.controller.Reset()
	s.jsonResponse(w, http.StatusOK, newStateResponse(s.controller.State()))
}

// handleSessionEvents streams every state transition as a "state" event
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates, unsubscribe := s.controller.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := sse.WriteEvent("state", newStateResponse(st)); err != nil {
				return
			}
		}
	}
}

// handleExport returns one result section as plain text, ready to paste
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, err := export.ParseSection(r.PathValue("section"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.controller.State().Result
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "No result to export")
		return
	}

	text, err := export.Section(result, name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
