package templates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

type stubDefaults struct {
	d   Defaults
	err error
}

func (s stubDefaults) TemplateDefaults(context.Context, string) (Defaults, error) {
	return s.d, s.err
}

func call(t *testing.T, fn http.HandlerFunc, orgID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	if orgID != "" {
		req = req.WithContext(tenancy.WithOrgID(req.Context(), orgID))
	}
	rr := httptest.NewRecorder()
	fn(rr, req)
	return rr
}

func TestHandlerSMS(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHandler(nil, nil, metrics.NewEngineMetrics(reg), logging.New("error"))

	rr := call(t, h.SMS, "", `{"business_name":"Bloom","customer_name":"Jo","message_type":"day_before","date":"2025-03-18","time":"09:00"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SMSResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, MessageDayBefore, resp.MessageType)
	require.Len(t, resp.Options, SMSOptionsPerType)
	for _, opt := range resp.Options {
		assert.Contains(t, opt.Text, "Jo")
		assert.Equal(t, Segments(opt.Text).Characters, opt.Characters)
		assert.GreaterOrEqual(t, opt.Segments, 1)
	}
	assert.Equal(t, int64(1), metrics.Snapshot(reg).Generations["sms"])
}

func TestHandlerSMSDefaultsAndErrors(t *testing.T) {
	h := NewHandler(nil, nil, nil, logging.New("error"))

	rr := call(t, h.SMS, "", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp SMSResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, MessageConfirmation, resp.MessageType)
	assert.Contains(t, resp.Options[0].Text, PlaceholderCustomer)

	rr = call(t, h.SMS, "", `{"message_type":"birthday"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = call(t, h.SMS, "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerReminderChannels(t *testing.T) {
	h := NewHandler(nil, nil, nil, logging.New("error"))

	rr := call(t, h.Reminder, "", `{"channel":"email","tone":"professional","customer_name":"Jo"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var email ReminderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&email))
	assert.Equal(t, "Appointment Reminder: [Service] on [Date]", email.Subject)
	assert.True(t, strings.HasPrefix(email.Body, "Dear Jo,"))

	rr = call(t, h.Reminder, "", `{"channel":"phone","tone":"casual"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var phone ReminderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&phone))
	assert.Len(t, phone.Turns, 4)
	assert.Contains(t, phone.Text, PauseMarker)

	rr = call(t, h.Reminder, "", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var def ReminderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&def))
	assert.Equal(t, ChannelSMS, def.Channel)
	assert.Equal(t, ToneFriendly, def.Tone)

	rr = call(t, h.Reminder, "", `{"channel":"fax"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerOrgScopedAppliesDefaultsAndAudits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs(sqlmock.AnyArg(), audit.EventTemplateGenerated, "org-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewHandler(stubDefaults{d: Defaults{
		BusinessName: "Bloom Dental",
		Industry:     industry.Dental,
		Phone:        "+1 (604) 555-1234",
		Address:      "12 Main St",
		NoticePeriod: Notice48h,
	}}, audit.NewService(db), nil, logging.New("error"))

	rr := call(t, h.Card, "org-1", `{"customer_name":"Jo"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TextResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	lines := strings.Split(resp.Text, "\n")
	assert.Equal(t, "🦷 Bloom Dental", lines[0])
	assert.Contains(t, resp.Text, "📞 +1 (604) 555-1234 • 📍 12 Main St")
	assert.Contains(t, resp.Text, "at least 48 hours in advance")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerOrgDefaultsError(t *testing.T) {
	h := NewHandler(stubDefaults{err: errors.New("redis down")}, nil, nil, logging.New("error"))
	rr := call(t, h.Card, "org-1", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// Unscoped requests never consult the source.
	rr = call(t, h.Card, "", `{}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlerPolicyLateArrival(t *testing.T) {
	h := NewHandler(stubDefaults{d: Defaults{BusinessName: "Zen Spa", IncludeLateArrival: false}}, nil, nil, logging.New("error"))

	decode := func(rr *httptest.ResponseRecorder) string {
		var resp TextResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		return resp.Text
	}

	text := decode(call(t, h.Policy, "", `{"business_name":"Bloom"}`))
	assert.Contains(t, text, HeaderLateArrival, "unscoped requests include late arrival by default")

	text = decode(call(t, h.Policy, "org-1", `{}`))
	assert.True(t, strings.HasPrefix(text, "Zen Spa Cancellation & No-Show Policy"))
	assert.NotContains(t, text, HeaderLateArrival, "profile turned late arrival off")

	text = decode(call(t, h.Policy, "org-1", `{"include_late_arrival":true,"policy_style":"strict"}`))
	assert.Contains(t, text, HeaderLateArrival)
	assert.Contains(t, text, "forfeited")
}
