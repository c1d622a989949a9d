// Package business holds per-organization account settings and receptionist
// configuration, and turns them into defaults for the reminder generators.
package business

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
)

// Receptionist configures the automated caller.
type Receptionist struct {
	Greeting          string `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	VoiceName         string `json:"voice_name,omitempty" yaml:"voice_name,omitempty"`
	CallWindowStart   string `json:"call_window_start" yaml:"call_window_start"`
	CallWindowEnd     string `json:"call_window_end" yaml:"call_window_end"`
	RemindHoursBefore int    `json:"remind_hours_before" yaml:"remind_hours_before"`
}

// Profile is a business's saved settings.
type Profile struct {
	OrgID                 string                 `json:"org_id" yaml:"org_id,omitempty"`
	Name                  string                 `json:"name" yaml:"name"`
	Industry              industry.Key           `json:"industry" yaml:"industry"`
	Phone                 string                 `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address               string                 `json:"address,omitempty" yaml:"address,omitempty"`
	Email                 string                 `json:"email,omitempty" yaml:"email,omitempty"`
	Timezone              string                 `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	DefaultTone           templates.Tone         `json:"default_tone" yaml:"default_tone"`
	DefaultChannel        templates.Channel      `json:"default_channel" yaml:"default_channel"`
	NoticePeriod          templates.NoticePeriod `json:"notice_period" yaml:"notice_period"`
	CancellationFee       templates.FeeOption    `json:"cancellation_fee" yaml:"cancellation_fee"`
	CancellationFeeCustom string                 `json:"cancellation_fee_custom,omitempty" yaml:"cancellation_fee_custom,omitempty"`
	NoShowFee             templates.FeeOption    `json:"no_show_fee" yaml:"no_show_fee"`
	NoShowFeeCustom       string                 `json:"no_show_fee_custom,omitempty" yaml:"no_show_fee_custom,omitempty"`
	PolicyStyle           templates.PolicyStyle  `json:"policy_style" yaml:"policy_style"`
	IncludeLateArrival    bool                   `json:"include_late_arrival" yaml:"include_late_arrival"`
	Receptionist          Receptionist           `json:"receptionist" yaml:"receptionist"`
	UpdatedAt             time.Time              `json:"updated_at" yaml:"-"`
}

const (
	defaultCallWindowStart   = "09:00"
	defaultCallWindowEnd     = "18:00"
	defaultRemindHoursBefore = 24
	maxRemindHoursBefore     = 168
)

// DefaultProfile returns the settings a new organization starts with.
func DefaultProfile(orgID string) *Profile {
	return &Profile{
		OrgID:              orgID,
		Industry:           industry.Other,
		DefaultTone:        templates.ToneFriendly,
		DefaultChannel:     templates.ChannelSMS,
		NoticePeriod:       templates.Notice24h,
		CancellationFee:    templates.FeeNone,
		NoShowFee:          templates.FeeNone,
		PolicyStyle:        templates.StyleStandard,
		IncludeLateArrival: true,
		Receptionist: Receptionist{
			CallWindowStart:   defaultCallWindowStart,
			CallWindowEnd:     defaultCallWindowEnd,
			RemindHoursBefore: defaultRemindHoursBefore,
		},
	}
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "business: invalid profile: " + strings.Join(parts, "; ")
}

// Validate checks contact details, enum fields and the call window. It runs
// on the values as entered, before Normalize.
func (p *Profile) Validate() error {
	fields := map[string]string{}

	if res := validation.ValidatePhone(p.Phone); !res.Valid {
		fields["phone"] = res.Error
	}
	if res := validation.ValidateEmail(p.Email); !res.Valid {
		fields["email"] = res.Error
	}
	if key := strings.ToLower(strings.TrimSpace(string(p.Industry))); key != "" && !industry.Key(key).Valid() {
		fields["industry"] = fmt.Sprintf("unknown industry %q", p.Industry)
	}
	if !p.DefaultTone.Valid() {
		fields["default_tone"] = fmt.Sprintf("unknown tone %q", p.DefaultTone)
	}
	if !p.DefaultChannel.Valid() {
		fields["default_channel"] = fmt.Sprintf("unknown channel %q", p.DefaultChannel)
	}
	if !p.NoticePeriod.Valid() {
		fields["notice_period"] = fmt.Sprintf("unknown notice period %q", p.NoticePeriod)
	}
	if !p.CancellationFee.Valid() {
		fields["cancellation_fee"] = fmt.Sprintf("unknown fee option %q", p.CancellationFee)
	}
	if !p.NoShowFee.Valid() {
		fields["no_show_fee"] = fmt.Sprintf("unknown fee option %q", p.NoShowFee)
	}
	if !p.PolicyStyle.Valid() {
		fields["policy_style"] = fmt.Sprintf("unknown policy style %q", p.PolicyStyle)
	}
	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			fields["timezone"] = fmt.Sprintf("unknown timezone %q", p.Timezone)
		}
	}

	start, okStart := clockMinutes(p.Receptionist.CallWindowStart)
	end, okEnd := clockMinutes(p.Receptionist.CallWindowEnd)
	switch {
	case !okStart:
		fields["receptionist.call_window_start"] = "must be HH:MM"
	case !okEnd:
		fields["receptionist.call_window_end"] = "must be HH:MM"
	case start >= end:
		fields["receptionist.call_window_end"] = "must be after call_window_start"
	}
	if h := p.Receptionist.RemindHoursBefore; h < 1 || h > maxRemindHoursBefore {
		fields["receptionist.remind_hours_before"] = fmt.Sprintf("must be between 1 and %d", maxRemindHoursBefore)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Normalize trims free-text fields and stores the phone in API form.
func (p *Profile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = validation.FormatPhoneForAPI(p.Phone)
	p.Industry = industry.Parse(string(p.Industry))
}

// TemplateDefaults maps the profile onto generator defaults. The phone is
// rendered for display since it is printed on cards and policies.
func (p *Profile) TemplateDefaults() templates.Defaults {
	return templates.Defaults{
		BusinessName:          p.Name,
		Industry:              p.Industry,
		Phone:                 validation.FormatPhoneForDisplay(p.Phone),
		Address:               p.Address,
		Tone:                  p.DefaultTone,
		Channel:               p.DefaultChannel,
		NoticePeriod:          p.NoticePeriod,
		CancellationFee:       p.CancellationFee,
		CancellationFeeCustom: p.CancellationFeeCustom,
		NoShowFee:             p.NoShowFee,
		NoShowFeeCustom:       p.NoShowFeeCustom,
		PolicyStyle:           p.PolicyStyle,
		IncludeLateArrival:    p.IncludeLateArrival,
	}
}

// TemplateDefaults loads the org's profile and returns its generator defaults.
func (s *Store) TemplateDefaults(ctx context.Context, orgID string) (templates.Defaults, error) {
	p, err := s.Get(ctx, orgID)
	if err != nil {
		return templates.Defaults{}, err
	}
	return p.TemplateDefaults(), nil
}

// clockMinutes parses HH:MM into minutes after midnight.
func clockMinutes(v string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
