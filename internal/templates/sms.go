package templates

import "fmt"

// SMSInput holds the fields substituted into SMS reminder options.
type SMSInput struct {
	BusinessName string      `json:"business_name" yaml:"business_name"`
	CustomerName string      `json:"customer_name" yaml:"customer_name"`
	ServiceName  string      `json:"service_name" yaml:"service_name"`
	Date         string      `json:"date" yaml:"date"`
	Time         string      `json:"time" yaml:"time"`
	MessageType  MessageType `json:"message_type" yaml:"message_type"`
}

// SMSOptionsPerType is the number of alternatives offered per message type.
const SMSOptionsPerType = 3

var smsSources = map[MessageType][SMSOptionsPerType]string{
	MessageConfirmation: {
		"Hi {{.Name}}, your {{.Service}} at {{.Business}} is confirmed for {{.Date}} at {{.Time}}. Reply C to confirm or R to reschedule.",
		"{{.Business}}: Thanks for booking, {{.Name}}! We'll see you {{.Date}} at {{.Time}} for your {{.Service}}. Questions? Reply to this message or give us a call.",
		"Hello {{.Name}}! This confirms your {{.Service}} with {{.Business}} on {{.Date}} at {{.Time}}. Need to make a change? Reply CHANGE.",
	},
	MessageDayBefore: {
		"Hi {{.Name}}, a friendly reminder from {{.Business}}: your {{.Service}} is tomorrow, {{.Date}} at {{.Time}}. Reply C to confirm or R to reschedule.",
		"Reminder: {{.Name}}, we'll see you tomorrow at {{.Time}} for your {{.Service}} at {{.Business}}. Can't make it? Please call us or reply R.",
		"See you tomorrow, {{.Name}}! Your {{.Service}} at {{.Business}} is on {{.Date}} at {{.Time}}. Reply YES to confirm.",
	},
	MessageSameDay: {
		"Hi {{.Name}}, just a reminder that your {{.Service}} at {{.Business}} is today at {{.Time}}. Reply C to confirm or call us if you're running late.",
		"Good morning {{.Name}}! {{.Business}} is looking forward to seeing you today at {{.Time}} for your {{.Service}}. Reply if you need anything.",
		"Today's the day, {{.Name}}! Your {{.Service}} at {{.Business}} starts at {{.Time}}. Running behind? Give us a call.",
	},
	MessageReschedule: {
		"Hi {{.Name}}, your {{.Service}} at {{.Business}} has been moved to {{.Date}} at {{.Time}}. Reply C to confirm the new time or R to pick another.",
		"{{.Business}}: {{.Name}}, we need to reschedule your {{.Service}}. Our next opening is {{.Date}} at {{.Time}}. Reply YES to accept or call us to find another time.",
		"Hello {{.Name}}, your {{.Service}} with {{.Business}} is now scheduled for {{.Date}} at {{.Time}}. Does that still work? Reply YES or NO.",
	},
	MessageNoShow: {
		"Hi {{.Name}}, we missed you at {{.Business}} today! We hope everything is okay. Reply R to reschedule your {{.Service}}.",
		"{{.Name}}, we noticed you weren't able to make your {{.Service}} at {{.Business}} on {{.Date}}. Please call us or reply to book a new time.",
		"We missed you, {{.Name}}! Your {{.Service}} at {{.Business}} on {{.Date}} at {{.Time}} was missed. Reply BOOK and we'll find a time that works.",
	},
}

var smsRenderer = func() *Renderer {
	sources := make(map[string]string, len(smsSources)*SMSOptionsPerType)
	for mt, options := range smsSources {
		for i, src := range options {
			sources[smsTemplateName(mt, i)] = src
		}
	}
	return mustRenderer(sources)
}()

func smsTemplateName(mt MessageType, i int) string {
	return fmt.Sprintf("sms/%s/%d", mt, i)
}

// GenerateSMSTemplates returns the three SMS options for the input's message
// type, or nil when the type is unknown.
func GenerateSMSTemplates(in SMSInput) []string {
	if !in.MessageType.Valid() {
		return nil
	}
	data := textFields{
		Name:     orPlaceholder(in.CustomerName, PlaceholderCustomer),
		Business: orPlaceholder(in.BusinessName, PlaceholderBusiness),
		Service:  orPlaceholder(in.ServiceName, PlaceholderService),
		Date:     FormatDate(in.Date),
		Time:     FormatTime(in.Time),
	}
	out := make([]string, 0, SMSOptionsPerType)
	for i := 0; i < SMSOptionsPerType; i++ {
		text, err := smsRenderer.Render(smsTemplateName(in.MessageType, i), data)
		if err != nil {
			return nil
		}
		out = append(out, text)
	}
	return out
}

// textFields is the data handed to every text template.
type textFields struct {
	Name        string
	Business    string
	Service     string
	Date        string
	Time        string
	ServiceWord string
	Location    string
}
