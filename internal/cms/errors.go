package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("cms: not found")

type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "cms http error"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("cms http error: status=%d message=%s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e != nil && e.StatusCode == http.StatusNotFound
}

// parseHTTPError reads Payload's {"errors":[{"message":...}]} body.
func parseHTTPError(status int, raw []byte) error {
	body := strings.TrimSpace(string(raw))
	var env struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	he := &HTTPError{StatusCode: status, Body: body}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Errors) > 0 {
		he.Message = strings.TrimSpace(env.Errors[0].Message)
	}
	return he
}
