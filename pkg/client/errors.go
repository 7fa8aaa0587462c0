package client

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// APIError is the decoded error body of a failed request.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	switch {
	case len(e.Fields) > 0:
		return fmt.Sprintf("api error %d: %d invalid field(s)", e.Status, len(e.Fields))
	case e.Code != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
	case e.Message != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// IsMailUnavailable reports the known 503 shape for a down mail service.
func (e *APIError) IsMailUnavailable() bool {
	return e.Code == "mail_service_unavailable"
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors"`
}

func wrapResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}

	var body errorBody
	if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
		apiErr.Fields = body.Errors
	}

	return apiErr
}
