package sendpost

import (
	"errors"
	"fmt"

	"github.com/sendpost/sendpost-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no account API key is provided.
	ErrMissingAPIKey = errors.New("account API key is required")

	// ErrMissingSubAccountKey is returned when a sub-account-scoped
	// operation is attempted without a sub-account API key.
	ErrMissingSubAccountKey = errors.New("sub-account API key is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when an API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrSubAccountNotFound is returned when a sub-account is not found.
	ErrSubAccountNotFound = errors.New("sub-account not found")

	// ErrWebhookNotFound is returned when a webhook is not found.
	ErrWebhookNotFound = errors.New("webhook not found")

	// ErrDomainNotFound is returned when a sending domain is not found.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")

	// ErrIPPoolNotFound is returned when an IP pool is not found.
	ErrIPPoolNotFound = errors.New("IP pool not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// SendPostError is implemented by all SDK errors.
type SendPostError interface {
	error
	SendPostError() // marker method
}

// ResourceType indicates which type of resource an error relates to.
type ResourceType = api.ResourceType

// Resource type constants for APIError.ResourceType.
const (
	ResourceUnknown    = api.ResourceUnknown
	ResourceSubAccount = api.ResourceSubAccount
	ResourceWebhook    = api.ResourceWebhook
	ResourceDomain     = api.ResourceDomain
	ResourceMessage    = api.ResourceMessage
	ResourceIPPool     = api.ResourceIPPool
)

// APIError represents an HTTP error from the SendPost API.
type APIError struct {
	StatusCode   int
	Message      string
	RequestID    string       // if returned by server
	ResourceType ResourceType // which resource the failed call addressed
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// SendPostError implements the SendPostError interface.
func (e *APIError) SendPostError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 404:
		switch e.ResourceType {
		case ResourceSubAccount:
			return target == ErrSubAccountNotFound
		case ResourceWebhook:
			return target == ErrWebhookNotFound
		case ResourceDomain:
			return target == ErrDomainNotFound
		case ResourceMessage:
			return target == ErrMessageNotFound
		case ResourceIPPool:
			return target == ErrIPPoolNotFound
		default:
			// Resource unknown: match any of the not-found sentinels.
			return target == ErrSubAccountNotFound ||
				target == ErrWebhookNotFound ||
				target == ErrDomainNotFound ||
				target == ErrMessageNotFound ||
				target == ErrIPPoolNotFound
		}
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SendPostError implements the SendPostError interface.
func (e *NetworkError) SendPostError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, api.ErrMissingSubAccountKey) {
		return ErrMissingSubAccountKey
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: apiErr.ResourceType,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
