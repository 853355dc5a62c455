package server

import (
	"net/http"

	"github.com/jonathan/shorts-optimizer/internal/optimizer"
)

// ErrorBody is the JSON shape of every failed request
type ErrorBody struct {
	Error string         `json:"error"`
	Kind  optimizer.Kind `json:"kind,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch optimizer.KindOf(err) {
	case optimizer.KindNone:
		return http.StatusOK
	case optimizer.KindValidation:
		return http.StatusBadRequest
	case optimizer.KindEmptyResponse, optimizer.KindMalformedResponse, optimizer.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// kindErrorResponse writes err with its status, user message and kind
func (s *Server) kindErrorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), ErrorBody{
		Error: optimizer.UserMessage(err),
		Kind:  optimizer.KindOf(err),
	})
}
