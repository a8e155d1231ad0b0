package gcm

import (
	"encoding/json"
	"net/http"
)

// Priority of a message. The server treats an unset priority as
// Normal.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// The wire format wants lowercase names, not the enum values.
var priorityNames = map[Priority]string{
	PriorityNormal: "normal",
	PriorityHigh:   "high",
}

// Message is one downstream GCM request. Get one from NewMessage,
// chain the setters you need, then call Send (or hand it to a
// Client). None of the setters validate their input; the server is
// the authority on what is acceptable.
type Message struct {
	to                    string
	registrationIds       []string
	collapseKey           string
	priority              *Priority
	contentAvailable      *bool
	delayWhileIdle        *bool
	timeToLive            *int
	restrictedPackageName string
	dryRun                *bool
	data                  map[string]string
	notification          *Notification
}

// NewMessage returns a Message addressed to a single registration id
// or a topic path (/topics/...). Every optional field starts unset.
func NewMessage(to string) *Message {
	return &Message{to: to}
}

// RegistrationIds sets additional registration ids to deliver to. The
// slice is copied. Note that the server treats `to` and
// `registration_ids` as alternative addressing modes, but this
// library does not enforce that; keeping both set is the caller's
// mistake to make.
func (m *Message) RegistrationIds(ids []string) *Message {
	m.registrationIds = append([]string(nil), ids...)
	return m
}

// CollapseKey identifies a group of messages that can be collapsed
// into a single delivery when the device comes back online.
func (m *Message) CollapseKey(collapseKey string) *Message {
	m.collapseKey = collapseKey
	return m
}

// Priority sets the delivery priority.
func (m *Message) Priority(priority Priority) *Message {
	m.priority = &priority
	return m
}

// ContentAvailable sets the iOS content-available flag.
func (m *Message) ContentAvailable(contentAvailable bool) *Message {
	m.contentAvailable = &contentAvailable
	return m
}

// DelayWhileIdle asks the server to hold the message until the device
// is active.
func (m *Message) DelayWhileIdle(delayWhileIdle bool) *Message {
	m.delayWhileIdle = &delayWhileIdle
	return m
}

// TimeToLive sets how long, in seconds, the server keeps the message
// for an offline device. The server's maximum and default is 4 weeks.
func (m *Message) TimeToLive(timeToLive int) *Message {
	m.timeToLive = &timeToLive
	return m
}

// RestrictedPackageName limits delivery to registration tokens
// matching the given application package name.
func (m *Message) RestrictedPackageName(restrictedPackageName string) *Message {
	m.restrictedPackageName = restrictedPackageName
	return m
}

// DryRun asks the server to validate the message without delivering
// it. Dry-run responses carry placeholder message ids.
func (m *Message) DryRun(dryRun bool) *Message {
	m.dryRun = &dryRun
	return m
}

// Data sets the custom key/value payload. The map is copied, so the
// caller may reuse theirs afterwards.
func (m *Message) Data(data map[string]string) *Message {
	datamap := make(map[string]string, len(data))
	for key, val := range data {
		datamap[key] = val
	}
	m.data = datamap
	return m
}

// Notification attaches a display notification to the message.
func (m *Message) Notification(notification *Notification) *Message {
	m.notification = notification
	return m
}

// Send posts the message to the production endpoint with the given
// API key and classifies the outcome. One-shot: one network call, no
// retry. Use a Client directly to control the endpoint or transport.
func (m *Message) Send(apiKey string) (*Response, error) {
	return NewClient(Endpoint, apiKey, http.DefaultClient).Send(m)
}

// wireMessage is the JSON shape the server expects. Unset optional
// fields must disappear entirely, never show up as null.
type wireMessage struct {
	To                    string            `json:"to"`
	RegistrationIds       []string          `json:"registration_ids,omitempty"`
	CollapseKey           string            `json:"collapse_key,omitempty"`
	Priority              string            `json:"priority,omitempty"`
	ContentAvailable      *bool             `json:"content_available,omitempty"`
	DelayWhileIdle        *bool             `json:"delay_while_idle,omitempty"`
	TimeToLive            *int              `json:"time_to_live,omitempty"`
	RestrictedPackageName string            `json:"restricted_package_name,omitempty"`
	DryRun                *bool             `json:"dry_run,omitempty"`
	Data                  map[string]string `json:"data,omitempty"`
	Notification          *Notification     `json:"notification,omitempty"`
}

func (m *Message) MarshalJSON() ([]byte, error) {
	var priority string
	if m.priority != nil {
		priority = priorityNames[*m.priority]
	}
	return json.Marshal(&wireMessage{
		To:                    m.to,
		RegistrationIds:       m.registrationIds,
		CollapseKey:           m.collapseKey,
		Priority:              priority,
		ContentAvailable:      m.contentAvailable,
		DelayWhileIdle:        m.delayWhileIdle,
		TimeToLive:            m.timeToLive,
		RestrictedPackageName: m.restrictedPackageName,
		DryRun:                m.dryRun,
		Data:                  m.data,
		Notification:          m.notification,
	})
}
