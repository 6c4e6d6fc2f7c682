package handlers

import (
	"context"
	"net/http"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/service"
	"hvacsim/internal/sim"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulation struct {
	execResp models.SimulationRun
	execErr  error
	getResp  models.SimulationRun
	getErr   error
	listResp []models.SimulationRun
	listErr  error
	histResp *sim.History
	histErr  error
	delErr   error

	lastExec   service.RunParams
	lastGetID  string
	lastLimit  int
	lastHistID string
	lastDelID  string
	execCalls  int
	delCalls   int
}

func (m *mockSimulation) Execute(ctx context.Context, p service.RunParams) (models.SimulationRun, error) {
	m.execCalls++
	m.lastExec = p
	return m.execResp, m.execErr
}
func (m *mockSimulation) GetRun(ctx context.Context, runID string) (models.SimulationRun, error) {
	m.lastGetID = runID
	return m.getResp, m.getErr
}
func (m *mockSimulation) ListRuns(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	m.lastLimit = limit
	return m.listResp, m.listErr
}
func (m *mockSimulation) RunHistory(ctx context.Context, runID string) (*sim.History, error) {
	m.lastHistID = runID
	return m.histResp, m.histErr
}
func (m *mockSimulation) DeleteRun(ctx context.Context, runID string) error {
	m.delCalls++
	m.lastDelID = runID
	return m.delErr
}

type mockLive struct {
	startErr error
	stopErr  error
	setErr   error
	resetErr error
	snapResp service.LiveSnapshot
	snapErr  error

	lastStart   service.LiveTargets
	lastTargets service.LiveTargets
	startCalls  int
	stopCalls   int
	setCalls    int
	resetCalls  int
}

func (m *mockLive) Start(ctx context.Context, t service.LiveTargets) error {
	m.startCalls++
	m.lastStart = t
	return m.startErr
}
func (m *mockLive) Stop(ctx context.Context) error {
	m.stopCalls++
	return m.stopErr
}
func (m *mockLive) SetTargets(ctx context.Context, t service.LiveTargets) error {
	m.setCalls++
	m.lastTargets = t
	return m.setErr
}
func (m *mockLive) Reset(ctx context.Context) error {
	m.resetCalls++
	return m.resetErr
}
func (m *mockLive) Snapshot(ctx context.Context) (service.LiveSnapshot, error) {
	return m.snapResp, m.snapErr
}

type mockEventLog struct {
	resp     []models.SimEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SimEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
