package handlers

import (
	"context"
	"net/http"

	"production_board/internal/models"
	"production_board/internal/report"
	"production_board/internal/service"

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

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTracking struct {
	openStopResp models.MachineStop
	openStopErr  error
	resumeErr    error
	setStatusErr error
	scanResp     models.ProductionScan
	scanErr      error
	scrapErr     error
	manualErr    error

	lastStop   service.StopParams
	lastResume string
	lastStatus service.StatusParams
	lastScan   service.ScanParams
	lastScrap  service.ScrapParams
	lastManual service.ManualParams
}

func (m *mockTracking) OpenStop(ctx context.Context, p service.StopParams) (models.MachineStop, error) {
	m.lastStop = p
	return m.openStopResp, m.openStopErr
}
func (m *mockTracking) ResumeStop(ctx context.Context, stopID string) error {
	m.lastResume = stopID
	return m.resumeErr
}
func (m *mockTracking) SetStatus(ctx context.Context, p service.StatusParams) error {
	m.lastStatus = p
	return m.setStatusErr
}
func (m *mockTracking) RecordScan(ctx context.Context, p service.ScanParams) (models.ProductionScan, error) {
	m.lastScan = p
	return m.scanResp, m.scanErr
}
func (m *mockTracking) RecordScrap(ctx context.Context, p service.ScrapParams) error {
	m.lastScrap = p
	return m.scrapErr
}
func (m *mockTracking) RecordManual(ctx context.Context, p service.ManualParams) error {
	m.lastManual = p
	return m.manualErr
}

type mockReporting struct {
	resp       *report.Report
	err        error
	lastFilter service.ReportFilter
	calls      int
}

func (m *mockReporting) ShiftReport(ctx context.Context, f service.ReportFilter) (*report.Report, error) {
	m.lastFilter = f
	m.calls++
	return m.resp, m.err
}

type mockBoard struct {
	snap  service.BoardSnapshot
	err   error
	calls int
}

func (m *mockBoard) Snapshot(ctx context.Context) (service.BoardSnapshot, error) {
	m.calls++
	return m.snap, m.err
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
