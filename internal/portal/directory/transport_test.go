package directory_test

import (
	"errors"
	"net/http"
)

// countingTransport fails every request and counts the attempts.
type countingTransport struct {
	calls *int
}

func (c countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	*c.calls++
	return nil, errors.New("network disabled in test")
}

func countingClient(calls *int) *http.Client {
	return &http.Client{Transport: countingTransport{calls: calls}}
}
