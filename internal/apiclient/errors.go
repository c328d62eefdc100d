package apiclient

import (
	"encoding/json"
	"net/http"
	"strings"

	"admin/internal/domain"
)

// errorBody covers the shapes the API uses for failures:
// {"error":"..."}, {"message":"..."} and {"error":{"message":"..."}}.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Error) > 0 {
		var s string
		if err := json.Unmarshal(eb.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(eb.Error, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	return strings.TrimSpace(eb.Message)
}

// errorFromStatus maps a non-2xx response to the domain taxonomy.
func errorFromStatus(status int, body []byte, path string) error {
	msg := serverMessage(body)
	switch {
	case status == http.StatusUnauthorized:
		return domain.UnauthorizedError{Msg: msg}
	case status == http.StatusForbidden:
		return domain.ForbiddenError{Msg: msg}
	case status == http.StatusNotFound:
		return domain.NotFoundError{Resource: path, Err: domain.RejectedError{Status: status, Msg: msg}}
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return domain.RejectedError{Status: status, Msg: msg}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return domain.InternalError{Msg: msg}
	}
}
