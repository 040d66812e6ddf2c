package linode

import (
	"errors"
	"net/http"

	"github.com/linode/linodego"

	"github.com/chris-milsted/lkeup/internal/model"
)

// hasStatus reports whether err is a Linode API error with one of the given
// HTTP status codes.
func hasStatus(err error, codes ...int) bool {
	var apiErr *linodego.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a 404 from the Linode API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a credential rejection.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}

// IsRateLimited reports whether err is a 429 from the Linode API.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsConflict reports whether err is a 409 from the Linode API.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// isRetryable reports whether the call is worth repeating: rate limits,
// server-side failures and transport errors. Client-side rejections are not.
func isRetryable(err error) bool {
	var apiErr *linodego.Error
	if !errors.As(err, &apiErr) {
		// No structured API error means the request never completed,
		// assume a transient transport problem.
		return true
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	return apiErr.Code >= 500
}

// classify maps a Linode API failure into the workflow error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUnauthorized(err) {
		return &model.AuthError{Op: op, Err: err}
	}
	return &model.ProviderError{Op: op, Err: err}
}
