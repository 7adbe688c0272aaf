package chipsandguac

import (
	"errors"
	"fmt"
)

// ErrNoOpenOrder is returned by operations that need an in-progress order
// when no order has been opened on this client yet.
var ErrNoOpenOrder = errors.New("no order is open")

// TransportError is any non-200 response from the ordering site. The client
// never retries these; redirects are surfaced here too since redirect
// following is disabled.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %d body: %s", e.StatusCode, e.Body)
}

// ConfigurationError means a field required by the attempted operation was
// never set on the client.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not set", e.Field)
}

// AuthenticationError means the site rejected the configured credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "login failed, check credentials"
	}
	return "login failed: " + e.Message
}

// OrderUnavailableError means the site accepted the copy-order request but
// handed back order id 0, which usually means the restaurant is closed.
// Retrying later can succeed.
type OrderUnavailableError struct {
	PastOrderId int64
}

func (e *OrderUnavailableError) Error() string {
	return fmt.Sprintf("order %d could not be copied, the restaurant may be closed", e.PastOrderId)
}

// PaymentError means the site reported failure selecting pay-in-store.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	if e.Message == "" {
		return "selecting payment failed"
	}
	return "selecting payment failed: " + e.Message
}

// ReviewError means pickup times were reported unavailable for the current
// order. Message carries the server's own explanation.
type ReviewError struct {
	Message string
}

func (e *ReviewError) Error() string {
	return "pickup times unavailable: " + e.Message
}

// VerificationError means the site rejected the configured phone number.
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	if e.Message == "" {
		return "phone number verification failed"
	}
	return "phone number verification failed: " + e.Message
}

// PlacementError means the final place-order call was rejected.
type PlacementError struct {
	Message string
}

func (e *PlacementError) Error() string {
	if e.Message == "" {
		return "placing order failed"
	}
	return "placing order failed: " + e.Message
}
