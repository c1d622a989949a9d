package templates

import (
	"context"
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
)

// Defaults are per-business values used to fill blank generator inputs.
type Defaults struct {
	BusinessName          string
	Industry              industry.Key
	Phone                 string
	Address               string
	Tone                  Tone
	Channel               Channel
	NoticePeriod          NoticePeriod
	CancellationFee       FeeOption
	CancellationFeeCustom string
	NoShowFee             FeeOption
	NoShowFeeCustom       string
	PolicyStyle           PolicyStyle
	IncludeLateArrival    bool
}

// DefaultsSource resolves the defaults for an organization.
type DefaultsSource interface {
	TemplateDefaults(ctx context.Context, orgID string) (Defaults, error)
}

// ApplySMS fills a blank business name.
func (d Defaults) ApplySMS(in *SMSInput) {
	in.BusinessName = fill(in.BusinessName, d.BusinessName)
}

// ApplyReminder fills blank business, industry, channel and tone fields.
func (d Defaults) ApplyReminder(in *ReminderInput) {
	in.BusinessName = fill(in.BusinessName, d.BusinessName)
	if in.Industry == "" {
		in.Industry = d.Industry
	}
	if in.Channel == "" {
		in.Channel = d.Channel
	}
	if in.Tone == "" {
		in.Tone = d.Tone
	}
}

// ApplyCard fills blank card fields from the profile.
func (d Defaults) ApplyCard(in *CardInput) {
	in.BusinessName = fill(in.BusinessName, d.BusinessName)
	in.Phone = fill(in.Phone, d.Phone)
	in.Address = fill(in.Address, d.Address)
	if in.Industry == "" {
		in.Industry = d.Industry
	}
	if in.NoticePeriod == "" {
		in.NoticePeriod = d.NoticePeriod
	}
}

// ApplyPolicy fills blank policy fields. IncludeLateArrival is left to the caller
// because false is indistinguishable from unset.
func (d Defaults) ApplyPolicy(in *PolicyInput) {
	in.BusinessName = fill(in.BusinessName, d.BusinessName)
	in.Phone = fill(in.Phone, d.Phone)
	if in.Industry == "" {
		in.Industry = d.Industry
	}
	if in.NoticePeriod == "" {
		in.NoticePeriod = d.NoticePeriod
	}
	if in.CancellationFee == "" {
		in.CancellationFee = d.CancellationFee
		in.CancellationFeeCustom = fill(in.CancellationFeeCustom, d.CancellationFeeCustom)
	}
	if in.NoShowFee == "" {
		in.NoShowFee = d.NoShowFee
		in.NoShowFeeCustom = fill(in.NoShowFeeCustom, d.NoShowFeeCustom)
	}
	if in.PolicyStyle == "" {
		in.PolicyStyle = d.PolicyStyle
	}
}

func fill(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
