package templates

import (
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
)

// CardDivider separates the header, the appointment fields and the footer.
const CardDivider = "━━━━━━━━━━━━━━━━━━━━"

// CardInput holds the fields printed on a reminder card.
type CardInput struct {
	BusinessName string       `json:"business_name" yaml:"business_name"`
	CustomerName string       `json:"customer_name" yaml:"customer_name"`
	ServiceName  string       `json:"service_name" yaml:"service_name"`
	Date         string       `json:"date" yaml:"date"`
	Time         string       `json:"time" yaml:"time"`
	Industry     industry.Key `json:"industry" yaml:"industry"`
	Phone        string       `json:"phone" yaml:"phone"`
	Address      string       `json:"address" yaml:"address"`
	NoticePeriod NoticePeriod `json:"notice_period" yaml:"notice_period"`
}

// GenerateCardText lays out the plain-text card. The line order and
// separators are copied verbatim by users, so they must not change.
func GenerateCardText(in CardInput) string {
	lines := []string{
		in.Industry.Icon() + " " + orPlaceholder(in.BusinessName, PlaceholderBusiness),
		CardDivider,
		"APPOINTMENT REMINDER",
		"For: " + orPlaceholder(in.CustomerName, CardBlankLong),
		"Service: " + orPlaceholder(in.ServiceName, CardBlankLong),
		"Date: " + FormatCardDate(in.Date),
		"Time: " + FormatCardTime(in.Time),
		CardDivider,
	}
	if contact := cardContactLine(in.Phone, in.Address); contact != "" {
		lines = append(lines, contact)
	}
	lines = append(lines, "Need to reschedule? Please let us know at least "+NoticeText(in.NoticePeriod)+" in advance.")
	return strings.Join(lines, "\n")
}

func cardContactLine(phone, address string) string {
	var parts []string
	if p := strings.TrimSpace(phone); p != "" {
		parts = append(parts, "📞 "+p)
	}
	if a := strings.TrimSpace(address); a != "" {
		parts = append(parts, "📍 "+a)
	}
	return strings.Join(parts, " • ")
}
