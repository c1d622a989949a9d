package templates

import (
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
)

// PauseMarker marks where a phone caller waits for the customer to answer.
const PauseMarker = "[PAUSE]"

// ReminderInput holds the fields for a single channel/tone reminder.
type ReminderInput struct {
	BusinessName string       `json:"business_name" yaml:"business_name"`
	CustomerName string       `json:"customer_name" yaml:"customer_name"`
	ServiceName  string       `json:"service_name" yaml:"service_name"`
	Date         string       `json:"date" yaml:"date"`
	Time         string       `json:"time" yaml:"time"`
	Industry     industry.Key `json:"industry" yaml:"industry"`
	Channel      Channel      `json:"channel" yaml:"channel"`
	Tone         Tone         `json:"tone" yaml:"tone"`
}

var reminderSources = map[string]string{
	"sms_professional": "Hello {{.Name}}, this is a reminder of your {{.Service}} at {{.Business}} on {{.Date}} at {{.Time}}. Please reply C to confirm or call us to reschedule.",
	"sms_friendly":     "Hi {{.Name}}! Just a friendly reminder about your {{.Service}} at {{.Business}} on {{.Date}} at {{.Time}}. We can't wait to see you! Reply C to confirm 😊",
	"sms_casual":       "Hey {{.Name}}! Quick reminder: {{.Service}} at {{.Business}}, {{.Date}} @ {{.Time}}. See ya there! Reply C to confirm.",

	"email_professional": `Subject: Appointment Reminder: {{.Service}} on {{.Date}}

Dear {{.Name}},

This is a reminder of your upcoming {{.Service}} at {{.Business}}.

Date: {{.Date}}
Time: {{.Time}}

If you need to reschedule or cancel, please contact our {{.Location}} at least 24 hours in advance.

Sincerely,
{{.Business}}`,
	"email_friendly": `Subject: See you soon, {{.Name}}!

Hi {{.Name}},

We're looking forward to your {{.Service}} at {{.Business}} on {{.Date}} at {{.Time}}!

If anything changes, just reply to this email or give us a call and we'll be happy to help.

See you soon,
The {{.Business}} Team`,
	"email_casual": `Subject: Quick reminder: {{.Service}} on {{.Date}}

Hey {{.Name}},

Just a heads up that you're booked for {{.Service}} at {{.Business}} on {{.Date}} at {{.Time}}.

Need to switch things up? Just hit reply.

Cheers,
{{.Business}}`,

	"phone_professional": "Hello, this is {{.Business}} calling for {{.Name}}. [PAUSE] I'm calling to remind you of your {{.Service}} on {{.Date}} at {{.Time}}. [PAUSE] Will you be able to keep this {{.ServiceWord}}? [PAUSE] Thank you. If you need to reschedule, please call our {{.Location}}. Have a good day.",
	"phone_friendly":     "Hi {{.Name}}! This is {{.Business}} giving you a quick call. [PAUSE] We just wanted to remind you about your {{.Service}} on {{.Date}} at {{.Time}}. [PAUSE] Does that time still work for you? [PAUSE] Wonderful! We look forward to seeing you at the {{.Location}}. Take care!",
	"phone_casual":       "Hey {{.Name}}, it's {{.Business}}! [PAUSE] Just calling to remind you about your {{.Service}} on {{.Date}} at {{.Time}}. [PAUSE] Still good to come in? [PAUSE] Awesome, see you then!",
}

var reminderRenderer = mustRenderer(reminderSources)

// ReminderKey is the table key for a channel/tone pair.
func ReminderKey(c Channel, t Tone) string {
	return string(c) + "_" + string(t)
}

// GenerateTemplate renders the reminder for the input's channel and tone.
// An unknown pair yields "".
func GenerateTemplate(in ReminderInput) string {
	key := ReminderKey(in.Channel, in.Tone)
	if !reminderRenderer.Has(key) {
		return ""
	}
	terms := in.Industry.Terms()
	text, err := reminderRenderer.Render(key, textFields{
		Name:        orPlaceholder(in.CustomerName, PlaceholderCustomer),
		Business:    orPlaceholder(in.BusinessName, PlaceholderBusiness),
		Service:     orPlaceholder(in.ServiceName, PlaceholderService),
		Date:        FormatDate(in.Date),
		Time:        FormatTime(in.Time),
		ServiceWord: terms.ServiceWord,
		Location:    terms.LocationWord,
	})
	if err != nil {
		return ""
	}
	return text
}

// SplitEmail separates the "Subject:" line of an email reminder from its
// body. Text without a subject line is returned whole as the body.
func SplitEmail(text string) (subject, body string) {
	first, rest, found := strings.Cut(text, "\n")
	if !strings.HasPrefix(first, "Subject:") {
		return "", text
	}
	subject = strings.TrimSpace(strings.TrimPrefix(first, "Subject:"))
	if !found {
		return subject, ""
	}
	return subject, strings.TrimLeft(rest, "\n")
}

// SplitScript breaks a phone script into the turns between pause markers.
func SplitScript(script string) []string {
	parts := strings.Split(script, PauseMarker)
	turns := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			turns = append(turns, p)
		}
	}
	return turns
}
