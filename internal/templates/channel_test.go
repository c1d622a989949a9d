package templates

import (
	"strings"
	"testing"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReminder(c Channel, tone Tone) ReminderInput {
	return ReminderInput{
		BusinessName: "Bloom Dental",
		CustomerName: "Jane",
		ServiceName:  "Cleaning",
		Date:         "2025-03-18",
		Time:         "09:00",
		Industry:     industry.Dental,
		Channel:      c,
		Tone:         tone,
	}
}

func TestGenerateTemplateCoversEveryPair(t *testing.T) {
	for _, c := range Channels {
		for _, tone := range Tones {
			t.Run(ReminderKey(c, tone), func(t *testing.T) {
				out := GenerateTemplate(sampleReminder(c, tone))
				require.NotEmpty(t, out)
				assert.Contains(t, out, "Jane")
				assert.Contains(t, out, "Bloom Dental")
				assert.Contains(t, out, "Tuesday, March 18, 2025")
			})
		}
	}
}

func TestGenerateTemplateEmailStructure(t *testing.T) {
	for _, tone := range Tones {
		out := GenerateTemplate(sampleReminder(ChannelEmail, tone))
		lines := strings.Split(out, "\n")
		require.GreaterOrEqual(t, len(lines), 4)
		assert.True(t, strings.HasPrefix(lines[0], "Subject: "), "tone %s", tone)
		assert.Equal(t, "", lines[1], "blank line after subject for tone %s", tone)
		assert.Contains(t, out, "\n\n", "email body must have paragraphs")
	}
}

func TestGenerateTemplatePhoneHasPauses(t *testing.T) {
	for _, tone := range Tones {
		out := GenerateTemplate(sampleReminder(ChannelPhone, tone))
		assert.Contains(t, out, PauseMarker, "tone %s", tone)
		assert.Greater(t, len(SplitScript(out)), 1)
	}
}

func TestGenerateTemplateSMSIsSingleParagraph(t *testing.T) {
	for _, tone := range Tones {
		out := GenerateTemplate(sampleReminder(ChannelSMS, tone))
		assert.NotContains(t, out, "\n")
		assert.NotContains(t, out, "Subject:")
		assert.NotContains(t, out, PauseMarker)
	}
}

func TestGenerateTemplateUnknownPair(t *testing.T) {
	assert.Equal(t, "", GenerateTemplate(ReminderInput{Channel: "fax", Tone: ToneCasual}))
	assert.Equal(t, "", GenerateTemplate(ReminderInput{Channel: ChannelSMS, Tone: "angry"}))
}

func TestGenerateTemplatePlaceholders(t *testing.T) {
	for _, c := range Channels {
		out := GenerateTemplate(ReminderInput{Channel: c, Tone: ToneProfessional})
		for _, p := range []string{PlaceholderCustomer, PlaceholderBusiness, PlaceholderDate, PlaceholderTime} {
			assert.Contains(t, out, p, "channel %s", c)
		}
		assert.NotContains(t, out, "undefined")
		assert.NotContains(t, out, "<no value>")
	}
}

func TestGenerateTemplateUsesIndustryVocabulary(t *testing.T) {
	in := sampleReminder(ChannelEmail, ToneProfessional)
	in.Industry = industry.AutoRepair
	assert.Contains(t, GenerateTemplate(in), "contact our shop")

	in.Industry = ""
	assert.Contains(t, GenerateTemplate(in), "contact our business")
}

func TestSplitEmail(t *testing.T) {
	subject, body := SplitEmail(GenerateTemplate(sampleReminder(ChannelEmail, ToneFriendly)))
	assert.Equal(t, "See you soon, Jane!", subject)
	assert.True(t, strings.HasPrefix(body, "Hi Jane,"))

	subject, body = SplitEmail("no subject here")
	assert.Equal(t, "", subject)
	assert.Equal(t, "no subject here", body)

	subject, body = SplitEmail("Subject: only")
	assert.Equal(t, "only", subject)
	assert.Equal(t, "", body)
}

func TestSplitScript(t *testing.T) {
	turns := SplitScript("Hello. [PAUSE] Are you there? [PAUSE]  [PAUSE] Bye.")
	assert.Equal(t, []string{"Hello.", "Are you there?", "Bye."}, turns)
}
