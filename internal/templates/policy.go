package templates

import (
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
)

// LateArrivalGraceMinutes is how late a customer may arrive before the
// late-arrival clause applies.
const LateArrivalGraceMinutes = "15"

// PolicyInput holds the options for a cancellation/no-show policy.
type PolicyInput struct {
	BusinessName          string       `json:"business_name" yaml:"business_name"`
	Industry              industry.Key `json:"industry" yaml:"industry"`
	Phone                 string       `json:"phone" yaml:"phone"`
	NoticePeriod          NoticePeriod `json:"notice_period" yaml:"notice_period"`
	CancellationFee       FeeOption    `json:"cancellation_fee" yaml:"cancellation_fee"`
	CancellationFeeCustom string       `json:"cancellation_fee_custom" yaml:"cancellation_fee_custom"`
	NoShowFee             FeeOption    `json:"no_show_fee" yaml:"no_show_fee"`
	NoShowFeeCustom       string       `json:"no_show_fee_custom" yaml:"no_show_fee_custom"`
	PolicyStyle           PolicyStyle  `json:"policy_style" yaml:"policy_style"`
	IncludeLateArrival    bool         `json:"include_late_arrival" yaml:"include_late_arrival"`
}

// Section headers, in the order they appear.
const (
	HeaderCancellation = "Cancellation Policy"
	HeaderNoShow       = "No-Show Policy"
	HeaderLateArrival  = "Late Arrival Policy"
	HeaderHowTo        = "How to Cancel or Reschedule"
	HeaderAcknowledge  = "Acknowledgment"
)

// NoticeText maps a notice period to its phrase. Unknown periods read as 24 hours.
func NoticeText(p NoticePeriod) string {
	switch p {
	case Notice48h:
		return "48 hours"
	case Notice72h:
		return "72 hours"
	default:
		return "24 hours"
	}
}

// FeeText phrases a fee option. FeeNone (and unknown options) yield "".
// A custom fee with no amount reads "a fee" rather than "a $ fee".
func FeeText(option FeeOption, customAmount, serviceWord string) string {
	switch option {
	case Fee25:
		return "a $25 fee"
	case Fee50:
		return "a $50 fee"
	case FeeFull:
		return "the full price of the " + serviceWord
	case FeeCustom:
		amount := strings.TrimSpace(customAmount)
		if amount == "" || amount == "$" {
			return "a fee"
		}
		if !strings.HasPrefix(amount, "$") {
			amount = "$" + amount
		}
		return "a " + amount + " fee"
	default:
		return ""
	}
}

// policyVars carries the substitutions shared by every clause.
type policyVars struct {
	biz      string
	client   string
	clients  string
	service  string
	aService string
	aClient  string
	notice   string
}

type styleClauses struct {
	intro             func(v policyVars) string
	cancellationNoFee func(v policyVars) string
	noShowNoFee       func(v policyVars) string
	noShowExtra       func(v policyVars) string
	lateArrival       func(v policyVars) string
	acknowledgment    func(v policyVars) string
}

var policyStyles = map[PolicyStyle]styleClauses{
	StyleLenient: {
		intro: func(v policyVars) string {
			return "At " + v.biz + ", we know life gets busy. To keep our schedule fair for all of our " + v.clients + ", we ask that you follow the guidelines below."
		},
		cancellationNoFee: func(v policyVars) string {
			return "We understand that emergencies happen, and we will always do our best to work with you."
		},
		noShowNoFee: func(v policyVars) string {
			return "If you miss your " + v.service + ", we'll reach out to help you find a new time."
		},
		noShowExtra: func(v policyVars) string { return "" },
		lateArrival: func(v policyVars) string {
			return "If you're running late, please give us a call. We'll do our best to accommodate you, though your " + v.service + " may need to be shortened so we can stay on time for other " + v.clients + "."
		},
		acknowledgment: func(v policyVars) string {
			return "Thank you for your understanding. By booking with " + v.biz + ", you agree to this policy. We look forward to seeing you!"
		},
	},
	StyleStandard: {
		intro: func(v policyVars) string {
			return "At " + v.biz + ", we value your time and the time of all our " + v.clients + ". This policy helps us serve everyone efficiently and keep " + v.service + " times available for those who need them."
		},
		cancellationNoFee: func(v policyVars) string {
			return "Repeated late cancellations may require a deposit to secure future bookings."
		},
		noShowNoFee: func(v policyVars) string {
			return "Please note: repeated no-shows may result in a no-show fee on future bookings."
		},
		noShowExtra: func(v policyVars) string { return "" },
		lateArrival: func(v policyVars) string {
			return "If you arrive more than " + LateArrivalGraceMinutes + " minutes late, your " + v.service + " may be shortened or rescheduled, depending on availability."
		},
		acknowledgment: func(v policyVars) string {
			return "By scheduling " + v.aService + " with " + v.biz + ", you acknowledge that you have read and agree to this cancellation and no-show policy."
		},
	},
	StyleStrict: {
		intro: func(v policyVars) string {
			return v.biz + " reserves each " + v.service + " exclusively for the " + v.client + " who booked it. Missed and late-cancelled bookings keep other " + v.clients + " from being seen, so the following policy is strictly enforced."
		},
		cancellationNoFee: func(v policyVars) string {
			return "Late cancellations are recorded on your account and may affect your ability to book in the future."
		},
		noShowNoFee: func(v policyVars) string {
			return "Please note: we reserve the right to charge a no-show fee for any missed " + v.service + "."
		},
		noShowExtra: func(v policyVars) string {
			return "After two no-shows, prepayment may be required for all future bookings."
		},
		lateArrival: func(v policyVars) string {
			return "Arriving more than " + LateArrivalGraceMinutes + " minutes late will be treated as a no-show. Your " + v.service + " will be forfeited, you will not be entitled to a shortened " + v.service + " or a refund, and the no-show policy above will apply."
		},
		acknowledgment: func(v policyVars) string {
			return "By scheduling " + v.aService + " with " + v.biz + ", you acknowledge that you have read, understood, and agree to comply with this policy in full. " + v.biz + " enforces this policy without exception."
		},
	},
}

// GeneratePolicy composes the policy sections in their fixed order:
// title, intro, cancellation, no-show, optional late arrival, how to cancel,
// acknowledgment. Unknown styles are treated as standard.
func GeneratePolicy(in PolicyInput) string {
	style, ok := policyStyles[in.PolicyStyle]
	if !ok {
		style = policyStyles[StyleStandard]
	}
	terms := in.Industry.Terms()
	v := policyVars{
		biz:      orPlaceholder(in.BusinessName, PlaceholderBusiness),
		client:   terms.ClientWord,
		clients:  terms.PluralClient(),
		service:  terms.ServiceWord,
		aService: withArticle(terms.ServiceWord),
		aClient:  withArticle(terms.ClientWord),
		notice:   NoticeText(in.NoticePeriod),
	}

	sections := []string{
		v.biz + " Cancellation & No-Show Policy",
		style.intro(v),
		section(HeaderCancellation, cancellationClause(v, style, FeeText(in.CancellationFee, in.CancellationFeeCustom, v.service))),
		section(HeaderNoShow, noShowClause(v, style, FeeText(in.NoShowFee, in.NoShowFeeCustom, v.service))),
	}
	if in.IncludeLateArrival {
		sections = append(sections, section(HeaderLateArrival, style.lateArrival(v)))
	}
	sections = append(sections,
		section(HeaderHowTo, howToCancel(v, in.Phone)),
		section(HeaderAcknowledge, style.acknowledgment(v)),
	)
	return strings.Join(sections, "\n\n")
}

func section(header, body string) string {
	return header + "\n" + body
}

func cancellationClause(v policyVars, style styleClauses, fee string) string {
	text := "Please give us at least " + v.notice + " notice if you need to cancel or reschedule your " + v.service + "."
	if fee != "" {
		return text + " Cancellations made with less than " + v.notice + " notice will be subject to " + fee + "."
	}
	return text + " " + style.cancellationNoFee(v)
}

func noShowClause(v policyVars, style styleClauses, fee string) string {
	text := "A no-show is when " + v.aClient + " misses a scheduled " + v.service + " without letting us know in advance."
	if fee != "" {
		text += " No-shows will be charged " + fee + "."
	} else {
		text += " " + style.noShowNoFee(v)
	}
	if extra := style.noShowExtra(v); extra != "" {
		text += " " + extra
	}
	return text
}

func howToCancel(v policyVars, phone string) string {
	contact := "contact " + v.biz + " directly"
	if p := strings.TrimSpace(phone); p != "" {
		contact = "call us at " + p
	}
	return "To cancel or reschedule, please " + contact + " or reply to your reminder message at least " + v.notice + " before your " + v.service + "."
}

func withArticle(word string) string {
	if word == "" {
		return word
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an " + word
	}
	return "a " + word
}
