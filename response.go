package gcm

import (
	"encoding/json"
)

// Response is the server's answer to a downstream message request.
// Which fields are present depends on the addressing mode: topic
// sends fill message_id/error, device sends fill the multicast
// fields and per-id results.
type Response struct {
	// Unique id of a topic message the server accepted
	MessageId *uint64 `json:"message_id,omitempty"`

	// Top-level error for a topic send, distinct from per-result errors
	Error string `json:"error,omitempty"`

	// Unique id identifying the multicast message
	MulticastId int64 `json:"multicast_id,omitempty"`

	// Number of messages processed without an error
	Success uint `json:"success,omitempty"`

	// Number of messages that could not be processed
	Failure uint `json:"failure,omitempty"`

	// Number of results carrying a canonical registration id
	CanonicalIds uint `json:"canonical_ids,omitempty"`

	// Status of each processed message, in request order
	Results []Result `json:"results,omitempty"`
}

// Result is the status of one processed message.
type Result struct {
	MessageId      *uint64 `json:"message_id,omitempty"`
	RegistrationId *uint64 `json:"registration_id,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// UnmarshalJSON tolerates the non-numeric message_id placeholder the
// server returns under dry_run ("fake_message_id"): it decodes to an
// absent id instead of failing the whole response.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire struct {
		MessageId      json.RawMessage `json:"message_id"`
		RegistrationId *uint64         `json:"registration_id"`
		Error          string          `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.MessageId = nil
	if len(wire.MessageId) > 0 {
		var id uint64
		if err := json.Unmarshal(wire.MessageId, &id); err == nil {
			r.MessageId = &id
		}
	}
	r.RegistrationId = wire.RegistrationId
	r.Error = wire.Error
	return nil
}
