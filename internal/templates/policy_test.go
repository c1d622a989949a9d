package templates

import (
	"fmt"
	"strings"
	"testing"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeText(t *testing.T) {
	assert.Equal(t, "24 hours", NoticeText(Notice24h))
	assert.Equal(t, "48 hours", NoticeText(Notice48h))
	assert.Equal(t, "72 hours", NoticeText(Notice72h))
	assert.Equal(t, "24 hours", NoticeText(""))
}

func TestFeeText(t *testing.T) {
	tests := []struct {
		option FeeOption
		custom string
		want   string
	}{
		{FeeNone, "", ""},
		{Fee25, "", "a $25 fee"},
		{Fee50, "99", "a $50 fee"},
		{FeeFull, "", "the full price of the appointment"},
		{FeeCustom, "35", "a $35 fee"},
		{FeeCustom, "$40", "a $40 fee"},
		{FeeCustom, "", "a fee"},
		{FeeCustom, "  ", "a fee"},
		{FeeCustom, "$", "a fee"},
		{"bogus", "", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.option, tt.custom), func(t *testing.T) {
			got := FeeText(tt.option, tt.custom, "appointment")
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "$ ")
		})
	}
}

func TestGeneratePolicyScenario(t *testing.T) {
	out := GeneratePolicy(PolicyInput{
		BusinessName:       "Bloom Dental",
		Industry:           industry.Dental,
		NoticePeriod:       Notice24h,
		CancellationFee:    FeeNone,
		NoShowFee:          Fee50,
		PolicyStyle:        StyleStandard,
		IncludeLateArrival: true,
	})

	assert.True(t, strings.HasPrefix(out, "Bloom Dental"))
	assert.Contains(t, out, "24 hours")
	assert.Contains(t, out, "$50")
	assert.Contains(t, out, HeaderLateArrival)

	idx := strings.LastIndex(out, "\n\n")
	require.NotEqual(t, -1, idx)
	last := out[idx+2:]
	assert.True(t, strings.HasPrefix(last, HeaderAcknowledge))
	assert.Contains(t, last, "Bloom Dental")
}

func TestGeneratePolicyCombinations(t *testing.T) {
	for _, style := range PolicyStyles {
		for _, fee := range []FeeOption{FeeNone, Fee25} {
			for _, late := range []bool{false, true} {
				name := fmt.Sprintf("%s/fee=%s/late=%v", style, fee, late)
				t.Run(name, func(t *testing.T) {
					out := GeneratePolicy(PolicyInput{
						BusinessName:       "Glow Spa",
						Industry:           industry.Spa,
						NoticePeriod:       Notice48h,
						CancellationFee:    fee,
						NoShowFee:          fee,
						PolicyStyle:        style,
						IncludeLateArrival: late,
					})
					assertSectionOrder(t, out, late)
					assert.Contains(t, out, "48 hours")
					assert.Equal(t, late, strings.Contains(out, HeaderLateArrival))
					assert.Equal(t, fee != FeeNone, strings.Contains(out, "$25"))

					noShow := sectionBody(out, HeaderNoShow)
					hasDefaultNote := strings.Contains(noShow, "no-show fee")
					switch {
					case fee != FeeNone:
						assert.Contains(t, noShow, "will be charged a $25 fee")
					case style == StyleLenient:
						assert.False(t, hasDefaultNote, "lenient adds no fee note")
					default:
						assert.True(t, hasDefaultNote, "%s adds a no-show fee note", style)
					}

					if late {
						lateBody := sectionBody(out, HeaderLateArrival)
						switch style {
						case StyleLenient:
							assert.Contains(t, lateBody, "do our best to accommodate")
						case StyleStandard:
							assert.Contains(t, lateBody, "shortened or rescheduled")
						case StyleStrict:
							assert.Contains(t, lateBody, "forfeited")
							assert.Contains(t, lateBody, "not be entitled")
						}
					}
					assert.Contains(t, sectionBody(out, HeaderAcknowledge), "Glow Spa")
				})
			}
		}
	}
}

func TestGeneratePolicyPlaceholdersAndDefaults(t *testing.T) {
	out := GeneratePolicy(PolicyInput{})
	assert.True(t, strings.HasPrefix(out, PlaceholderBusiness+" Cancellation & No-Show Policy"))
	assert.Contains(t, out, "24 hours")
	assert.Contains(t, out, "customers", "falls back to the other vocabulary")
	assert.NotContains(t, out, HeaderLateArrival)
	assert.NotContains(t, out, "undefined")
	// Unknown style reads as standard.
	assert.Contains(t, out, "repeated no-shows may result in a no-show fee")
}

func TestGeneratePolicyCustomFeeWithoutAmount(t *testing.T) {
	out := GeneratePolicy(PolicyInput{
		BusinessName:    "Fix-It Auto",
		Industry:        industry.AutoRepair,
		CancellationFee: FeeCustom,
		NoShowFee:       FeeFull,
	})
	assert.Contains(t, out, "will be subject to a fee.")
	assert.NotContains(t, out, "$ ")
	assert.Contains(t, out, "the full price of the service appointment")
	assert.Contains(t, out, "By scheduling a service appointment with Fix-It Auto")
}

func TestGeneratePolicyArticles(t *testing.T) {
	out := GeneratePolicy(PolicyInput{BusinessName: "Bloom Dental", Industry: industry.Dental, PolicyStyle: StyleStrict})
	assert.Contains(t, out, "By scheduling an appointment with Bloom Dental")
	assert.Contains(t, out, "when a patient misses")
}

func TestGeneratePolicyHowToUsesPhone(t *testing.T) {
	withPhone := GeneratePolicy(PolicyInput{BusinessName: "Bloom", Phone: "+1 (604) 555-1234"})
	assert.Contains(t, sectionBody(withPhone, HeaderHowTo), "call us at +1 (604) 555-1234")

	without := GeneratePolicy(PolicyInput{BusinessName: "Bloom"})
	assert.Contains(t, sectionBody(without, HeaderHowTo), "contact Bloom directly")
}

func TestGeneratePolicyIdempotent(t *testing.T) {
	in := PolicyInput{BusinessName: "Bloom", PolicyStyle: StyleStrict, IncludeLateArrival: true}
	assert.Equal(t, GeneratePolicy(in), GeneratePolicy(in))
}

func assertSectionOrder(t *testing.T, out string, late bool) {
	t.Helper()
	headers := []string{HeaderCancellation, HeaderNoShow}
	if late {
		headers = append(headers, HeaderLateArrival)
	}
	headers = append(headers, HeaderHowTo, HeaderAcknowledge)
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, "\n\n"+h+"\n")
		require.NotEqual(t, -1, idx, "missing section %s", h)
		assert.Greater(t, idx, last, "section %s out of order", h)
		last = idx
	}
}

func sectionBody(out, header string) string {
	for _, block := range strings.Split(out, "\n\n") {
		if body, ok := strings.CutPrefix(block, header+"\n"); ok {
			return body
		}
	}
	return ""
}
