package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/leavedesk/leavedesk/internal/common"
)

// APIError is a backend failure that is neither an authorization problem nor
// a field validation failure. Message carries the backend's detail text when
// one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// decodeError maps a non-2xx backend response to an error. The backend
// reports problems as JSON objects: field validation failures map field
// names to lists of messages, non-field problems use a "detail" string.
func decodeError(status int, body []byte) error {
	detail := ""
	fields := common.ValidationError{}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for key, value := range payload {
			switch v := value.(type) {
			case string:
				if key == "detail" {
					detail = v
				} else {
					fields.Add(key, v)
				}
			case []any:
				for _, item := range v {
					if msg, ok := item.(string); ok {
						fields.Add(key, msg)
					}
				}
			}
		}
	}

	if status == http.StatusBadRequest && len(fields) > 0 {
		return fields
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{Status: status, Message: detail}
}
