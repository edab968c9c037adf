package api

import (
	"errors"
	"fmt"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrMissingAPIKey indicates no account API key was provided.
	ErrMissingAPIKey = errors.New("account API key is required")
	// ErrMissingBaseURL indicates no base URL was provided.
	ErrMissingBaseURL = errors.New("base URL is required")
	// ErrMissingSubAccountKey indicates a sub-account-scoped call was made
	// without a sub-account API key.
	ErrMissingSubAccountKey = errors.New("sub-account API key is required")
	// ErrUnauthorized indicates the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")
	// ErrSubAccountNotFound indicates the requested sub-account does not exist.
	ErrSubAccountNotFound = errors.New("sub-account not found")
	// ErrWebhookNotFound indicates the requested webhook does not exist.
	ErrWebhookNotFound = errors.New("webhook not found")
	// ErrDomainNotFound indicates the requested sending domain does not exist.
	ErrDomainNotFound = errors.New("domain not found")
	// ErrMessageNotFound indicates the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrIPPoolNotFound indicates the requested IP pool does not exist.
	ErrIPPoolNotFound = errors.New("IP pool not found")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceSubAccount indicates the error relates to a sub-account.
	ResourceSubAccount ResourceType = "subaccount"
	// ResourceWebhook indicates the error relates to a webhook.
	ResourceWebhook ResourceType = "webhook"
	// ResourceDomain indicates the error relates to a sending domain.
	ResourceDomain ResourceType = "domain"
	// ResourceMessage indicates the error relates to a message.
	ResourceMessage ResourceType = "message"
	// ResourceIPPool indicates the error relates to an IP pool.
	ResourceIPPool ResourceType = "ippool"
)

// APIError represents an HTTP error from the SendPost API.
type APIError struct {
	StatusCode   int
	Message      string
	RequestID    string
	ResourceType ResourceType
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
			// Resource type unknown: match any of the not-found sentinels.
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

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *APIError, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: rt,
		}
	}
	return err
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

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SendPostError implements the SendPostError interface.
func (e *NetworkError) SendPostError() {}
