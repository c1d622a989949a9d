package calls

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

type fakePlacer struct {
	got  TestCallRequest
	resp *TestCallResponse
	err  error
}

func (f *fakePlacer) PlaceTestCall(ctx context.Context, req TestCallRequest) (*TestCallResponse, error) {
	f.got = req
	return f.resp, f.err
}

type staticDefaults templates.Defaults

func (s staticDefaults) TemplateDefaults(context.Context, string) (templates.Defaults, error) {
	return templates.Defaults(s), nil
}

func postTestCall(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orgs/org-1/test-call", strings.NewReader(body))
	req = req.WithContext(tenancy.WithOrgID(req.Context(), "org-1"))
	rr := httptest.NewRecorder()
	h.TestCall(rr, req)
	return rr
}

func TestTestCall_Success(t *testing.T) {
	placer := &fakePlacer{resp: &TestCallResponse{CallID: "call-1", Status: "queued"}}
	reg := prometheus.NewRegistry()
	h := NewHandler(placer, staticDefaults{
		BusinessName: "Bloom Dental",
		Industry:     industry.Dental,
		Tone:         templates.ToneProfessional,
	}, nil, metrics.NewOutreachMetrics(reg), logging.New("error"))

	rr := postTestCall(h, `{"phone":"(604) 555-1234","customer_name":"Jo","service":"Cleaning","date":"2025-03-18","time":"14:30"}`)
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "call-1", resp["call_id"])

	assert.Equal(t, "+6045551234", placer.got.To)
	assert.Equal(t, "Bloom Dental", placer.got.BusinessName)
	assert.True(t, strings.HasPrefix(placer.got.Script, "Hello, this is Bloom Dental calling for Jo."))
	assert.Contains(t, placer.got.Script, "Tuesday, March 18, 2025 at 2:30 PM")
	assert.Contains(t, placer.got.Script, "keep this appointment")
	assert.Len(t, placer.got.Turns, 4)
	assert.Equal(t, int64(1), metrics.Snapshot(reg).TestCalls["accepted"])
}

func TestTestCall_DefaultToneWithoutProfile(t *testing.T) {
	placer := &fakePlacer{resp: &TestCallResponse{CallID: "call-2"}}
	h := NewHandler(placer, nil, nil, nil, logging.New("error"))

	rr := postTestCall(h, `{"phone":"+16045551234"}`)
	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.True(t, strings.HasPrefix(placer.got.Script, "Hi [Customer Name]!"))
}

func TestTestCall_PhoneValidation(t *testing.T) {
	h := NewHandler(&fakePlacer{}, nil, nil, nil, logging.New("error"))

	rr := postTestCall(h, `{"phone":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Phone number is required")

	rr = postTestCall(h, `{"phone":"not a phone"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"valid":false`)

	rr = postTestCall(h, `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTestCall_BodyTooLarge(t *testing.T) {
	placer := &fakePlacer{resp: &TestCallResponse{CallID: "call-3"}}
	h := NewHandler(placer, nil, nil, nil, logging.New("error"))

	body := `{"phone":"+16045551234","customer_name":"` + strings.Repeat("x", maxRequestBytes) + `"}`
	rr := postTestCall(h, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, placer.got.To)
}

func TestTestCall_NotConfigured(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHandler(nil, nil, nil, metrics.NewOutreachMetrics(reg), logging.New("error"))
	rr := postTestCall(h, `{"phone":"+16045551234"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var nilClient *Client
	h = NewHandler(nilClient, nil, nil, metrics.NewOutreachMetrics(prometheus.NewRegistry()), logging.New("error"))
	rr = postTestCall(h, `{"phone":"+16045551234"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, int64(1), metrics.Snapshot(reg).TestCalls["not_configured"])
}

func TestTestCall_UpstreamError(t *testing.T) {
	reg := prometheus.NewRegistry()
	placer := &fakePlacer{err: &UpstreamError{StatusCode: 500, Body: "oops"}}
	h := NewHandler(placer, nil, nil, metrics.NewOutreachMetrics(reg), logging.New("error"))

	rr := postTestCall(h, `{"phone":"+16045551234"}`)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, int64(1), metrics.Snapshot(reg).TestCalls["upstream_error"])

	placer.err = errors.New("dial tcp: refused")
	rr = postTestCall(h, `{"phone":"+16045551234"}`)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
