package templates

import (
	"strings"
	"testing"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCardTextLayout(t *testing.T) {
	out := GenerateCardText(CardInput{
		BusinessName: "Bloom Dental",
		CustomerName: "Jane Doe",
		ServiceName:  "Cleaning",
		Date:         "2025-03-18",
		Time:         "14:30",
		Industry:     industry.Dental,
		Phone:        "(604) 555-1234",
		Address:      "12 Main St",
		NoticePeriod: Notice48h,
	})

	want := strings.Join([]string{
		"🦷 Bloom Dental",
		CardDivider,
		"APPOINTMENT REMINDER",
		"For: Jane Doe",
		"Service: Cleaning",
		"Date: Tuesday, March 18, 2025",
		"Time: 2:30 PM",
		CardDivider,
		"📞 (604) 555-1234 • 📍 12 Main St",
		"Need to reschedule? Please let us know at least 48 hours in advance.",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestGenerateCardTextLabelOrder(t *testing.T) {
	out := GenerateCardText(CardInput{BusinessName: "Bloom Dental", Industry: industry.Dental})
	require.True(t, strings.HasPrefix(out, "🦷 Bloom Dental"))

	last := -1
	for _, label := range []string{"For:", "Service:", "Date:", "Time:"} {
		idx := strings.Index(out, label)
		require.NotEqual(t, -1, idx, "missing %s", label)
		assert.Greater(t, idx, last, "%s out of order", label)
		last = idx
	}
}

func TestGenerateCardTextBlanks(t *testing.T) {
	out := GenerateCardText(CardInput{})
	lines := strings.Split(out, "\n")

	assert.Equal(t, "📋 "+PlaceholderBusiness, lines[0])
	assert.Equal(t, "For: "+CardBlankLong, lines[3])
	assert.Equal(t, "Service: "+CardBlankLong, lines[4])
	assert.Equal(t, "Date: _______________", lines[5])
	assert.Equal(t, "Time: ______", lines[6])
	assert.Len(t, lines, 9, "contact line is omitted when phone and address are empty")
	assert.Contains(t, lines[8], "24 hours")
	assert.NotContains(t, out, "undefined")
}

func TestGenerateCardTextPartialContact(t *testing.T) {
	out := GenerateCardText(CardInput{Address: "12 Main St"})
	assert.Contains(t, out, "\n📍 12 Main St\n")
	assert.NotContains(t, out, "📞")
	assert.NotContains(t, out, " • ")
}

func TestGenerateCardTextIdempotent(t *testing.T) {
	in := CardInput{BusinessName: "Paws", Industry: industry.PetGrooming, Date: "2025-01-01"}
	assert.Equal(t, GenerateCardText(in), GenerateCardText(in))
}
