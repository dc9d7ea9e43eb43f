package api

import (
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/scentdex/scentdex-server/internal/errors"
	"github.com/scentdex/scentdex-server/internal/http/response"
)

// Envelope is the body shape every operation responds with.
// Successful responses fill Data; failures fill Error, Code and Message.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps operation bodies in an Envelope.
// Registered as a huma transformer, so it sees every response body.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if env, ok := v.(*Envelope); ok {
		return env, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       response.Version,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	var domainErr *domainerrors.Error
	if err, ok := v.(error); ok && errors.As(err, &domainErr) {
		return &Envelope{
			V:       response.Version,
			Success: false,
			Error:   domainErr.Message,
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Details: domainErr.Details,
		}, nil
	}

	code, _ := strconv.Atoi(status)
	return &Envelope{
		V:       response.Version,
		Success: code == 0 || code < 400,
		Data:    v,
	}, nil
}
