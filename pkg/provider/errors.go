package provider

import (
	"errors"
	"fmt"
)

const exhaustedHint = "Plaid transactions product did not become ready after multiple attempts. Try running again later."

// UpstreamProtocolError means the provider replied with something we didn't
// expect: a missing field, an embedded error or a bad status.
type UpstreamProtocolError struct {
	Step    string
	Code    string
	Message string
}

func (e *UpstreamProtocolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("plaid %s: %s: %s", e.Step, e.Code, e.Message)
	}
	return fmt.Sprintf("plaid %s: %s", e.Step, e.Message)
}

// ProductNotReadyError means the provider is still preparing transaction data.
// It's the only error the fetch loop retries.
type ProductNotReadyError struct {
	Message string
}

func (e *ProductNotReadyError) Error() string {
	if e.Message == "" {
		return "transactions product not ready"
	}
	return fmt.Sprintf("transactions product not ready: %s", e.Message)
}

// RetriesExhaustedError is returned once every attempt came back not ready.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("transactions product not ready after %d attempts", e.Attempts)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// NetworkError wraps a transport level failure. It is never retried here.
type NetworkError struct {
	Step string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("plaid %s: %v", e.Step, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage turns err into something to show a person. Errors pass through
// verbatim except for exhausted retries, which get a hint to come back later.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var exhausted *RetriesExhaustedError
	if errors.As(err, &exhausted) {
		return exhaustedHint
	}
	return err.Error()
}
