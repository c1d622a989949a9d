package templates

import (
	"testing"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/stretchr/testify/assert"
)

func sampleDefaults() Defaults {
	return Defaults{
		BusinessName:    "Bloom Dental",
		Industry:        industry.Dental,
		Phone:           "+16045551234",
		Address:         "12 Main St",
		Tone:            ToneProfessional,
		Channel:         ChannelEmail,
		NoticePeriod:    Notice48h,
		CancellationFee: Fee25,
		NoShowFee:       FeeCustom,
		NoShowFeeCustom: "40",
		PolicyStyle:     StyleStrict,
	}
}

func TestDefaultsApplyReminderKeepsExplicitValues(t *testing.T) {
	in := ReminderInput{BusinessName: "Other Co", Tone: ToneCasual}
	sampleDefaults().ApplyReminder(&in)

	assert.Equal(t, "Other Co", in.BusinessName)
	assert.Equal(t, ToneCasual, in.Tone)
	assert.Equal(t, ChannelEmail, in.Channel)
	assert.Equal(t, industry.Dental, in.Industry)
}

func TestDefaultsApplyCard(t *testing.T) {
	in := CardInput{BusinessName: "  "}
	sampleDefaults().ApplyCard(&in)

	assert.Equal(t, "Bloom Dental", in.BusinessName)
	assert.Equal(t, "12 Main St", in.Address)
	assert.Equal(t, Notice48h, in.NoticePeriod)
}

func TestDefaultsApplyPolicy(t *testing.T) {
	in := PolicyInput{CancellationFee: FeeNone}
	sampleDefaults().ApplyPolicy(&in)

	assert.Equal(t, FeeNone, in.CancellationFee)
	assert.Equal(t, FeeCustom, in.NoShowFee)
	assert.Equal(t, "40", in.NoShowFeeCustom)
	assert.Equal(t, StyleStrict, in.PolicyStyle)
	assert.Contains(t, GeneratePolicy(in), "a $40 fee")
}

func TestDefaultsApplySMS(t *testing.T) {
	in := SMSInput{}
	sampleDefaults().ApplySMS(&in)
	assert.Equal(t, "Bloom Dental", in.BusinessName)
}
