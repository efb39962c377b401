// Package httpx holds the request/response plumbing shared by the API
// handlers: JSON responses, the error envelope, and body parameter
// parsing for both JSON and form-encoded requests.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mfallon/exertrack/internal/apperr"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the envelope every error response carries.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail identifies the failure class and a client-facing message.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// Error writes the error envelope for err. Internal errors are logged
// with their cause; the client only sees the generic message.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Error().Err(err).Msg("request failed")
	}
	JSON(w, kind.HTTPStatus(), ErrorBody{
		Error: ErrorDetail{Kind: string(kind), Message: apperr.MessageOf(err)},
	})
}

// Params is a flattened view of request body parameters.
type Params map[string]string

// Get returns the value for key, or "" if absent.
func (p Params) Get(key string) string {
	return p[key]
}

// ParseParams reads body parameters from either a JSON object or a
// form-encoded body, depending on Content-Type. An empty body yields
// empty params rather than an error.
func ParseParams(r *http.Request) (Params, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return parseJSONParams(r.Body)
	}
	if err := r.ParseForm(); err != nil {
		return nil, apperr.Validation("malformed form body")
	}
	params := Params{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params, nil
}

func parseJSONParams(body io.Reader) (Params, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Params{}, nil
		}
		return nil, apperr.Validation("malformed JSON body")
	}
	params := Params{}
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			params[key] = v
		case float64:
			params[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			params[key] = strconv.FormatBool(v)
		}
	}
	return params, nil
}
