// Package gcm sends downstream messages to devices through the legacy
// GCM HTTP API.
//
// Build a message with NewMessage, optionally attach a Notification
// built with NewNotificationBuilder, then send it with an API key:
//
//	notification := gcm.NewNotificationBuilder("Hey!").
//		Body("Do you want to catch up later?").
//		Finalize()
//
//	resp, err := gcm.NewMessage("<registration id>").
//		Notification(notification).
//		Send("<GCM API Key>")
//
// Every send is a single POST; there are no retries. Classified
// failures come back as spacemonkeygo error classes, so callers can
// switch on them with Contains:
//
//	if gcm.UnauthorizedError.Contains(err) {
//		// rotate the key
//	}
package gcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/spacelog"
)

// Endpoint is the fixed GCM send URL.
const Endpoint = "https://gcm-http.googleapis.com/gcm/send"

var (
	logger = spacelog.GetLogger()

	// Error is the base class for everything this package returns.
	Error = errors.NewClass("gcm")

	// UnauthorizedError means the server rejected the API key (HTTP 401).
	UnauthorizedError = Error.NewClass("unauthorized")

	// InvalidMessageError means the server rejected the message (HTTP
	// 400); the error text carries the raw response body.
	InvalidMessageError = Error.NewClass("invalid message")

	// ServerError covers HTTP 5xx and any transport-level failure.
	// The two are indistinguishable to the caller.
	ServerError = Error.NewClass("server error")

	// InvalidResponseBodyError means a 200 response whose body did not
	// decode, or a local encoding failure before the request went out.
	InvalidResponseBodyError = Error.NewClass("invalid response body")
)

// HttpClient performs the actual HTTP exchange. Timeouts, TLS and
// proxy configuration all belong to the implementation.
type HttpClient interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

// Client sends messages to a GCM endpoint with a fixed API key.
type Client struct {
	endpoint string
	apiKey   string
	client   HttpClient
}

// NewClient returns a Client for the given endpoint and API key. An
// empty endpoint means the production Endpoint; a nil client means
// http.DefaultClient.
func NewClient(endpoint, apiKey string, client HttpClient) *Client {
	if endpoint == "" {
		endpoint = Endpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	}
}

// Send posts the message and classifies the outcome. Exactly one
// network call is made; nothing is retried. A transport failure is
// reported the same way as a 500 from the server.
func (c *Client) Send(m *Message) (*Response, error) {
	if c.apiKey == "" {
		return nil, Error.New("the client's api key must not be empty")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, InvalidResponseBodyError.Wrap(err)
	}
	logger.Debugf("send json %s", payload)

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	req.Header.Add("Content-Type", "application/json; charset=utf-8")
	req.Header.Add("Authorization", fmt.Sprintf("key=%s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debugf("transport error: %v", err)
		return parseResponse(http.StatusInternalServerError, []byte("Server Error"))
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		logger.Debugf("transport error: %v", err)
		return parseResponse(http.StatusInternalServerError, []byte("Server Error"))
	}
	logger.Debugf("response %d: %s", resp.StatusCode, body)

	return parseResponse(resp.StatusCode, body)
}

// parseResponse maps a status code and body to a typed result. Pure,
// no I/O.
func parseResponse(status int, body []byte) (*Response, error) {
	switch {
	case status == http.StatusOK:
		resp := &Response{}
		if err := json.Unmarshal(body, resp); err != nil {
			return nil, InvalidResponseBodyError.Wrap(err)
		}
		return resp, nil
	case status == http.StatusUnauthorized:
		return nil, UnauthorizedError.New("check your api key")
	case status == http.StatusBadRequest:
		return nil, InvalidMessageError.New("%s", body)
	case status >= 500 && status <= 599:
		return nil, ServerError.New("status %d", status)
	default:
		return nil, InvalidMessageError.New("Unknown Error (status %d)", status)
	}
}
