package gcm

import (
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/amozoss/atest"
)

func TestParseResponseUnauthorized(t *testing.T) {
	test := atest.Wrap(t, 1)

	resp, err := parseResponse(401, []byte("Unauthorized"))
	test.AssertNil(resp)
	test.Assert(UnauthorizedError.Contains(err))
}

func TestParseResponseInvalidMessage(t *testing.T) {
	test := atest.Wrap(t, 1)

	resp, err := parseResponse(400, []byte("INVALID_REGISTRATION"))
	test.AssertNil(resp)
	test.Assert(InvalidMessageError.Contains(err))
	test.Assert(strings.Contains(err.Error(), "INVALID_REGISTRATION"))
}

func TestParseResponseServerError(t *testing.T) {
	test := atest.Wrap(t, 1)

	resp, err := parseResponse(500, []byte("Internal Server Error"))
	test.AssertNil(resp)
	test.Assert(ServerError.Contains(err))

	// any 5xx classifies the same way
	resp, err = parseResponse(503, []byte("Service Unavailable"))
	test.AssertNil(resp)
	test.Assert(ServerError.Contains(err))
}

func TestParseResponseUnknownStatus(t *testing.T) {
	test := atest.Wrap(t, 1)

	resp, err := parseResponse(302, []byte("ignored"))
	test.AssertNil(resp)
	test.Assert(InvalidMessageError.Contains(err))
	test.Assert(strings.Contains(err.Error(), "Unknown Error"))
	// the detail keeps the status we actually saw
	test.Assert(strings.Contains(err.Error(), "302"))
}

func TestParseResponseSuccess(t *testing.T) {
	test := atest.Wrap(t, 1)

	body := `{
		"message_id": 2000000,
		"results": [
			{
				"message_id": 200000,
				"registration_id": 200000,
				"error": "error"
			}
		]
	}`
	resp, err := parseResponse(200, []byte(body))
	test.AssertNoError(err)
	test.AssertEqual(uint64(2000000), *resp.MessageId)
	test.AssertEqual(1, len(resp.Results))
	test.AssertEqual(uint64(200000), *resp.Results[0].MessageId)
	test.AssertEqual(uint64(200000), *resp.Results[0].RegistrationId)
	test.AssertEqual("error", resp.Results[0].Error)
}

func TestParseResponseMulticast(t *testing.T) {
	test := atest.Wrap(t, 1)

	body := `{
		"multicast_id": 108,
		"success": 1,
		"failure": 0,
		"canonical_ids": 0,
		"results": [
			{ "message_id": 12 }
		]
	}`
	resp, err := parseResponse(200, []byte(body))
	test.AssertNoError(err)
	test.AssertEqual(int64(108), resp.MulticastId)
	test.AssertEqual(uint(1), resp.Success)
	test.AssertEqual(uint(0), resp.Failure)
	test.AssertEqual(uint(0), resp.CanonicalIds)
	test.AssertEqual(1, len(resp.Results))
	test.AssertEqual(uint64(12), *resp.Results[0].MessageId)
}

func TestParseResponseDryRunPlaceholder(t *testing.T) {
	test := atest.Wrap(t, 1)

	// under dry_run the server hands back a fake, non-numeric
	// message_id; that must not fail the parse
	body := `{
		"multicast_id": 108,
		"success": 1,
		"failure": 0,
		"results": [
			{ "message_id": "fake_message_id" }
		]
	}`
	resp, err := parseResponse(200, []byte(body))
	test.AssertNoError(err)
	test.AssertEqual(1, len(resp.Results))
	test.AssertNil(resp.Results[0].MessageId)
}

func TestParseResponseInvalidBody(t *testing.T) {
	test := atest.Wrap(t, 1)

	resp, err := parseResponse(200, []byte("not json"))
	test.AssertNil(resp)
	test.Assert(InvalidResponseBodyError.Contains(err))
}

func TestSendSuccess(t *testing.T) {
	test := NewTestClient(t)
	test.AddResponse(NewResponse(200, `{
		"multicast_id": 108,
		"success": 1,
		"failure": 0,
		"canonical_ids": 0,
		"results": [
			{ "message_id": 12 }
		]
	}`))

	msg := NewMessage("token").Data(map[string]string{"my": "data"})
	resp, err := test.client.Send(msg)
	test.AssertNoError(err)
	test.AssertEqual(uint(1), resp.Success)

	// exactly one request, with the auth and content-type headers
	test.AssertEqual(1, len(test.requests))
	req := test.requests[0]
	test.AssertEqual("POST", req.Method)
	test.AssertEqual("key=api_key", req.Header.Get("Authorization"))
	test.AssertEqual("application/json; charset=utf-8",
		req.Header.Get("Content-Type"))

	body, err := ioutil.ReadAll(req.Body)
	test.AssertNoError(err)
	test.AssertEqual(`{"to":"token","data":{"my":"data"}}`, string(body))
}

func TestSendUnauthorized(t *testing.T) {
	test := NewTestClient(t)
	test.AddResponse(NewResponse(401, "Unauthorized"))

	resp, err := test.client.Send(NewMessage("token"))
	test.AssertNil(resp)
	test.Assert(UnauthorizedError.Contains(err))
	test.AssertEqual(1, len(test.requests))
}

func TestSendTransportFailure(t *testing.T) {
	test := NewTestClient(t)
	test.doErr = Error.New("connection refused")

	// a transport failure looks exactly like a 500 to the caller
	resp, err := test.client.Send(NewMessage("token"))
	test.AssertNil(resp)
	test.Assert(ServerError.Contains(err))
	test.AssertEqual(1, len(test.requests))
}

func TestSendEmptyApiKey(t *testing.T) {
	test := atest.Wrap(t, 1)

	client := NewClient("", "", nil)
	resp, err := client.Send(NewMessage("token"))
	test.AssertNil(resp)
	test.Assert(Error.Contains(err))
}

func TestNewClientDefaults(t *testing.T) {
	test := atest.Wrap(t, 1)

	client := NewClient("", "api_key", nil)
	test.AssertEqual(Endpoint, client.endpoint)
	test.Assert(client.client == http.DefaultClient)
}

//////////////////////////////////////////////////////////////
// Helpers
//////////////////////////////////////////////////////////////

type TestClient struct {
	*atest.Test
	client *Client

	requests  []*http.Request
	responses []*http.Response
	doErr     error
}

func NewTestClient(t *testing.T) *TestClient {
	test := &TestClient{
		Test: atest.Wrap(t, 2),
	}
	test.client = NewClient("https://gcm.test/send", "api_key", test)
	return test
}

func NewResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     make(http.Header),
		Body:       ioutil.NopCloser(strings.NewReader(body)),
	}
}

func (t *TestClient) AddResponse(resp *http.Response) {
	t.responses = append(t.responses, resp)
}

// Mock HttpClient
// Requires responses to be queued before Do is called, unless doErr
// is set.
func (t *TestClient) Do(req *http.Request) (resp *http.Response, err error) {
	t.requests = append(t.requests, req)
	if t.doErr != nil {
		return nil, t.doErr
	}
	if len(t.requests) > len(t.responses) {
		t.Fatalf("Do called %d times, expected %d",
			len(t.requests), len(t.responses))
	}
	return t.responses[len(t.requests)-1], nil
}
