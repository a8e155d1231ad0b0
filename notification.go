package gcm

import (
	"encoding/json"
)

const defaultIcon = "myicon"

// Notification is the display payload of a message. Get one from a
// NotificationBuilder; once built it never changes.
type Notification struct {
	title        string
	body         string
	icon         string
	sound        string
	badge        string
	tag          string
	color        string
	clickAction  string
	bodyLocKey   string
	bodyLocArgs  []string
	titleLocKey  string
	titleLocArgs []string
}

// wireNotification mirrors the server's notification object. Title
// and icon are always present; everything else is omitted when unset.
type wireNotification struct {
	Title        string   `json:"title"`
	Body         string   `json:"body,omitempty"`
	Icon         string   `json:"icon"`
	Sound        string   `json:"sound,omitempty"`
	Badge        string   `json:"badge,omitempty"`
	Tag          string   `json:"tag,omitempty"`
	Color        string   `json:"color,omitempty"`
	ClickAction  string   `json:"click_action,omitempty"`
	BodyLocKey   string   `json:"body_loc_key,omitempty"`
	BodyLocArgs  []string `json:"body_loc_args,omitempty"`
	TitleLocKey  string   `json:"title_loc_key,omitempty"`
	TitleLocArgs []string `json:"title_loc_args,omitempty"`
}

func (n *Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(&wireNotification{
		Title:        n.title,
		Body:         n.body,
		Icon:         n.icon,
		Sound:        n.sound,
		Badge:        n.badge,
		Tag:          n.tag,
		Color:        n.color,
		ClickAction:  n.clickAction,
		BodyLocKey:   n.bodyLocKey,
		BodyLocArgs:  n.bodyLocArgs,
		TitleLocKey:  n.titleLocKey,
		TitleLocArgs: n.titleLocArgs,
	})
}

// NotificationBuilder builds a Notification. Setters return the
// builder for chaining and do not validate their input. The builder
// stays usable after Finalize.
type NotificationBuilder struct {
	title        string
	body         string
	icon         string
	sound        string
	badge        string
	tag          string
	color        string
	clickAction  string
	bodyLocKey   string
	bodyLocArgs  []string
	titleLocKey  string
	titleLocArgs []string
}

// NewNotificationBuilder returns a builder with the given title and
// the default icon.
func NewNotificationBuilder(title string) *NotificationBuilder {
	return &NotificationBuilder{
		title: title,
		icon:  defaultIcon,
	}
}

// Body sets the notification body.
func (b *NotificationBuilder) Body(body string) *NotificationBuilder {
	b.body = body
	return b
}

// Icon replaces the default icon.
func (b *NotificationBuilder) Icon(icon string) *NotificationBuilder {
	b.icon = icon
	return b
}

// Sound sets the sound to play on delivery.
func (b *NotificationBuilder) Sound(sound string) *NotificationBuilder {
	b.sound = sound
	return b
}

// Badge sets the iOS badge value.
func (b *NotificationBuilder) Badge(badge string) *NotificationBuilder {
	b.badge = badge
	return b
}

// Tag lets a new notification replace an existing one carrying the
// same tag.
func (b *NotificationBuilder) Tag(tag string) *NotificationBuilder {
	b.tag = tag
	return b
}

// Color sets the icon color, in #rrggbb form. Not validated.
func (b *NotificationBuilder) Color(color string) *NotificationBuilder {
	b.color = color
	return b
}

// ClickAction sets the action taken when the user taps the
// notification.
func (b *NotificationBuilder) ClickAction(clickAction string) *NotificationBuilder {
	b.clickAction = clickAction
	return b
}

// BodyLocKey sets the localization key for the body.
func (b *NotificationBuilder) BodyLocKey(bodyLocKey string) *NotificationBuilder {
	b.bodyLocKey = bodyLocKey
	return b
}

// BodyLocArgs sets the values substituted into the localized body, in
// order.
func (b *NotificationBuilder) BodyLocArgs(bodyLocArgs []string) *NotificationBuilder {
	b.bodyLocArgs = append([]string(nil), bodyLocArgs...)
	return b
}

// TitleLocKey sets the localization key for the title.
func (b *NotificationBuilder) TitleLocKey(titleLocKey string) *NotificationBuilder {
	b.titleLocKey = titleLocKey
	return b
}

// TitleLocArgs sets the values substituted into the localized title,
// in order.
func (b *NotificationBuilder) TitleLocArgs(titleLocArgs []string) *NotificationBuilder {
	b.titleLocArgs = append([]string(nil), titleLocArgs...)
	return b
}

// Finalize snapshots the builder into an immutable Notification. It
// is pure: calling it twice without intervening setters yields equal
// values.
func (b *NotificationBuilder) Finalize() *Notification {
	return &Notification{
		title:        b.title,
		body:         b.body,
		icon:         b.icon,
		sound:        b.sound,
		badge:        b.badge,
		tag:          b.tag,
		color:        b.color,
		clickAction:  b.clickAction,
		bodyLocKey:   b.bodyLocKey,
		bodyLocArgs:  append([]string(nil), b.bodyLocArgs...),
		titleLocKey:  b.titleLocKey,
		titleLocArgs: append([]string(nil), b.titleLocArgs...),
	}
}
