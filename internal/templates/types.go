package templates

import "strings"

// Channel is the delivery medium of a reminder.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelSMS, ChannelEmail, ChannelPhone}

// Tone is the voice a reminder is written in.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCasual       Tone = "casual"
)

// Tones lists every tone in display order.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneCasual}

// MessageType is the scenario an SMS reminder is written for.
type MessageType string

const (
	MessageConfirmation MessageType = "confirmation"
	MessageDayBefore    MessageType = "day_before"
	MessageSameDay      MessageType = "same_day"
	MessageReschedule   MessageType = "reschedule"
	MessageNoShow       MessageType = "no_show"
)

// MessageTypes lists every SMS message type in display order.
var MessageTypes = []MessageType{
	MessageConfirmation,
	MessageDayBefore,
	MessageSameDay,
	MessageReschedule,
	MessageNoShow,
}

// NoticePeriod is how far ahead a cancellation must be made.
type NoticePeriod string

const (
	Notice24h NoticePeriod = "24h"
	Notice48h NoticePeriod = "48h"
	Notice72h NoticePeriod = "72h"
)

// FeeOption selects the fee charged for a late cancellation or no-show.
type FeeOption string

const (
	FeeNone   FeeOption = "none"
	Fee25     FeeOption = "25"
	Fee50     FeeOption = "50"
	FeeFull   FeeOption = "full"
	FeeCustom FeeOption = "custom"
)

// PolicyStyle is the severity tier of a generated policy.
type PolicyStyle string

const (
	StyleLenient  PolicyStyle = "lenient"
	StyleStandard PolicyStyle = "standard"
	StyleStrict   PolicyStyle = "strict"
)

// PolicyStyles lists every style from softest to strictest.
var PolicyStyles = []PolicyStyle{StyleLenient, StyleStandard, StyleStrict}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelSMS || c == ChannelEmail || c == ChannelPhone
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	return t == ToneProfessional || t == ToneFriendly || t == ToneCasual
}

// Valid reports whether m is a known message type.
func (m MessageType) Valid() bool {
	for _, known := range MessageTypes {
		if m == known {
			return true
		}
	}
	return false
}

// Valid reports whether n is a known notice period.
func (n NoticePeriod) Valid() bool {
	return n == Notice24h || n == Notice48h || n == Notice72h
}

// Valid reports whether f is a known fee option.
func (f FeeOption) Valid() bool {
	switch f {
	case FeeNone, Fee25, Fee50, FeeFull, FeeCustom:
		return true
	}
	return false
}

// Valid reports whether s is a known policy style.
func (s PolicyStyle) Valid() bool {
	return s == StyleLenient || s == StyleStandard || s == StyleStrict
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseChannel normalizes s; ok is false for unknown values.
func ParseChannel(s string) (Channel, bool) {
	c := Channel(normalize(s))
	return c, c.Valid()
}

// ParseTone normalizes s; ok is false for unknown values.
func ParseTone(s string) (Tone, bool) {
	t := Tone(normalize(s))
	return t, t.Valid()
}

// ParseMessageType normalizes s; ok is false for unknown values.
func ParseMessageType(s string) (MessageType, bool) {
	m := MessageType(normalize(s))
	return m, m.Valid()
}

// ParseNoticePeriod normalizes s; ok is false for unknown values.
func ParseNoticePeriod(s string) (NoticePeriod, bool) {
	n := NoticePeriod(normalize(s))
	return n, n.Valid()
}

// ParseFeeOption normalizes s; ok is false for unknown values.
func ParseFeeOption(s string) (FeeOption, bool) {
	f := FeeOption(normalize(s))
	return f, f.Valid()
}

// ParsePolicyStyle normalizes s; ok is false for unknown values.
func ParsePolicyStyle(s string) (PolicyStyle, bool) {
	p := PolicyStyle(normalize(s))
	return p, p.Valid()
}
