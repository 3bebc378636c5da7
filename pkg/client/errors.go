package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"resty.dev/v3"
)

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Status     string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func newAPIError(res *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: res.StatusCode()}
	if err := json.Unmarshal([]byte(res.String()), apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(res.StatusCode())
	}
	if apiErr.Status == "" {
		apiErr.Status = http.StatusText(res.StatusCode())
	}
	return apiErr
}
