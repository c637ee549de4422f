package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// fallbackMessage is used when neither the response body nor the transport
// layer produced anything readable.
const fallbackMessage = "An unexpected error occurred"

// RemoteError is the single error shape returned by every client operation.
// Transport-specific detail beyond Message is discarded.
type RemoteError struct {
	Op      string // analyze, ask, translate, audio, compare
	Status  int    // HTTP status, 0 when the request never completed
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Message returns the human-readable message of err. Non-remote errors
// fall back to their Error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}

type errorBody struct {
	Error string `json:"error"`
}

// bodyMessage extracts the {error} field of a failed response.
func bodyMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}

// transportMessage strips the method/URL prefix net/http puts on errors.
func transportMessage(err error) string {
	if err == nil {
		return ""
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}

func statusMessage(status int) string {
	return fmt.Sprintf("Request failed with status code %d", status)
}

// firstNonEmpty returns the first non-blank message, or the fallback.
func firstNonEmpty(msgs ...string) string {
	for _, m := range msgs {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return fallbackMessage
}
