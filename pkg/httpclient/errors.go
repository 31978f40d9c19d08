package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/errors"
)

// maxErrorBodyBytes caps how much of a downstream error body is read. Anything
// past this is discarded rather than buffered.
const maxErrorBodyBytes = 1 << 20

// DownstreamErrorResponse is the error envelope the storefront API and its
// peers emit, reduced to the fields the client cares about.
type DownstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError turns a non-2xx response into an error. Structured
// envelope bodies keep their code and message as an AppError; anything else
// becomes a plain error carrying the status and raw body. The body is
// consumed and closed either way. Callers must check resp.StatusCode first.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var downstream DownstreamErrorResponse
	if json.Unmarshal(body, &downstream) == nil && downstream.Error != nil {
		return mapDownstreamError(resp.StatusCode, downstream.Error.Code, downstream.Error.Message, serviceName)
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(body))
}

// mapDownstreamError rebuilds a local AppError so that errors.Is checks on the
// caller side see the same sentinels they would for a local failure.
func mapDownstreamError(status int, code, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch status {
	case http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case http.StatusConflict:
		return apperrors.Conflict(qualified)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case http.StatusGone:
		return apperrors.Gone(qualified)
	case http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	}

	if status >= 500 {
		return fmt.Errorf("%s server error (%d/%s): %s", serviceName, status, code, message)
	}

	// Other 4xx codes keep the downstream code and status as-is.
	return &apperrors.AppError{
		Code:    code,
		Message: qualified,
		Status:  status,
	}
}

// IsClientError reports whether status is a 4xx. Invalid requests are the
// caller's fault and retrying or compensating for them does not help.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
