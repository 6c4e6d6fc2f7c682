package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hvacsim/internal/diagnostics"
	"hvacsim/internal/models"
	"hvacsim/internal/service"
	"hvacsim/internal/sim"
)

func testSnapshot() service.LiveSnapshot {
	return service.LiveSnapshot{
		Status: models.LiveStatus{
			ID:          1,
			IsRunning:   true,
			SetpointC:   24,
			HumidityPct: 60,
			QExtraW:     3000,
			State:       sim.State{Time: 120, Temperature: 25.1, FanSpeed: 48.3, QCool: 8694, QDist: 5500},
			UpdatedAt:   time.Now().UTC(),
		},
		Report: diagnostics.Report{
			ErrorValue:     1.1,
			ErrorLabel:     diagnostics.LabelZE,
			FanRegime:      diagnostics.FanMedium,
			LoadRegime:     diagnostics.LoadHeavy,
			Comfort:        diagnostics.ComfortAbove,
			Aggressiveness: diagnostics.ControlModerate,
			EnergyBalance:  diagnostics.EnergySurplus,
		},
	}
}

func TestLiveHandlers_StartStopTargetsReset(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	live := &mockLive{snapResp: testSnapshot()}
	s := &service.Service{
		Authorization: auth,
		Live:          live,
	}
	r := newTestRouter(s)

	// start requires auth → 401 without header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/live/start", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// POST /start → 200, passes targets and includes snapshot
	body := bytes.NewBufferString(`{"setpoint_c":24,"humidity_pct":60,"q_extra_w":3000}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/live/start", body)
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("start status=%d, body=%s", w.Code, w.Body.String())
	}
	if live.startCalls != 1 {
		t.Fatalf("expected Start to be called once, got %d", live.startCalls)
	}
	if live.lastStart.SetpointC != 24 || live.lastStart.HumidityPct != 60 || live.lastStart.QExtraW != 3000 {
		t.Fatalf("wrong Start targets: %+v", live.lastStart)
	}
	var startResp struct {
		Status   string               `json:"status"`
		Snapshot service.LiveSnapshot `json:"snapshot"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &startResp)
	if startResp.Status != statusStarted {
		t.Fatalf("expected status %q, got %q", statusStarted, startResp.Status)
	}
	if !startResp.Snapshot.Status.IsRunning || startResp.Snapshot.Report.FanRegime != diagnostics.FanMedium {
		t.Fatalf("snapshot missing/invalid in response: %+v", startResp.Snapshot)
	}

	// PUT /targets → 200, passes params and echoes setpoint
	body = bytes.NewBufferString(`{"setpoint_c":22,"humidity_pct":70,"q_extra_w":5000}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/live/targets", body)
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("targets status=%d, body=%s", w.Code, w.Body.String())
	}
	if live.setCalls != 1 {
		t.Fatalf("SetTargets calls=%d", live.setCalls)
	}
	if live.lastTargets.SetpointC != 22 || live.lastTargets.HumidityPct != 70 || live.lastTargets.QExtraW != 5000 {
		t.Fatalf("wrong SetTargets params: %+v", live.lastTargets)
	}
	var targetsResp struct {
		Status    string  `json:"status"`
		SetpointC float64 `json:"setpoint_c"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &targetsResp)
	if targetsResp.Status != statusTargetsSet || targetsResp.SetpointC != 22 {
		t.Fatalf("bad targets response: %+v", targetsResp)
	}

	// POST /stop → 200 and Stop counter
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/live/stop", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stop status=%d, body=%s", w.Code, w.Body.String())
	}
	if live.stopCalls != 1 {
		t.Fatalf("expected Stop to be called once, got %d", live.stopCalls)
	}

	// POST /reset → 200 and Reset counter
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/live/reset", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status=%d, body=%s", w.Code, w.Body.String())
	}
	if live.resetCalls != 1 {
		t.Fatalf("expected Reset to be called once, got %d", live.resetCalls)
	}
}

func TestLiveHandlers_GetSnapshot(t *testing.T) {
	auth := &mockAuth{parseID: 1}
	live := &mockLive{snapResp: testSnapshot()}
	s := &service.Service{Authorization: auth, Live: live}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/live/state", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("snapshot status=%d, body=%s", w.Code, w.Body.String())
	}
	var snap service.LiveSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Status.State.Temperature != 25.1 || snap.Report.ErrorLabel != diagnostics.LabelZE {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestLiveHandlers_ErrorMapping(t *testing.T) {
	invalidTargets := fmt.Errorf("%w: setpoint_c must be within [18, 30]", service.ErrInvalidParams)

	cases := []struct {
		name     string
		method   string
		path     string
		body     string
		mock     *mockLive
		wantCode int
	}{
		{
			name:     "start malformed body",
			method:   http.MethodPost,
			path:     "/api/v1/live/start",
			body:     `{"setpoint_c":"hot"}`,
			mock:     &mockLive{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "start invalid targets",
			method:   http.MethodPost,
			path:     "/api/v1/live/start",
			body:     `{"setpoint_c":35,"humidity_pct":60,"q_extra_w":0}`,
			mock:     &mockLive{startErr: invalidTargets},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "start storage failure",
			method:   http.MethodPost,
			path:     "/api/v1/live/start",
			body:     `{"setpoint_c":24,"humidity_pct":60,"q_extra_w":0}`,
			mock:     &mockLive{startErr: errors.New("db down")},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "targets while paused",
			method:   http.MethodPut,
			path:     "/api/v1/live/targets",
			body:     `{"setpoint_c":24,"humidity_pct":60,"q_extra_w":0}`,
			mock:     &mockLive{setErr: service.ErrLoopNotRunning},
			wantCode: http.StatusConflict,
		},
		{
			name:     "stop failure",
			method:   http.MethodPost,
			path:     "/api/v1/live/stop",
			mock:     &mockLive{stopErr: errors.New("db down")},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "snapshot failure",
			method:   http.MethodGet,
			path:     "/api/v1/live/state",
			mock:     &mockLive{snapErr: errors.New("db down")},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 1}
			s := &service.Service{Authorization: auth, Live: tc.mock}
			r := newTestRouter(s)

			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			for k, vv := range authHeader("valid") {
				for _, v := range vv {
					req.Header.Add(k, v)
				}
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}
