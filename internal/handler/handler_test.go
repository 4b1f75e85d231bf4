package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/tgchan/internal/miniapp"
	"github.com/itchan-dev/tgchan/shared/config"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/itchan-dev/tgchan/shared/jwt"
)

// --- Mocks ---

type MockBoardReader struct {
	GetBoardsFunc  func(ctx context.Context) (domain.BoardList, error)
	GetThreadsFunc func(ctx context.Context, board string, page int) (domain.ThreadPage, error)
	GetThreadFunc  func(ctx context.Context, board, thread string) (domain.ThreadDetail, error)
}

func (m *MockBoardReader) GetBoards(ctx context.Context) (domain.BoardList, error) {
	if m.GetBoardsFunc != nil {
		return m.GetBoardsFunc(ctx)
	}
	return domain.BoardList{}, nil
}

func (m *MockBoardReader) GetThreads(ctx context.Context, board string, page int) (domain.ThreadPage, error) {
	if m.GetThreadsFunc != nil {
		return m.GetThreadsFunc(ctx, board, page)
	}
	return domain.ThreadPage{}, nil
}

func (m *MockBoardReader) GetThread(ctx context.Context, board, thread string) (domain.ThreadDetail, error) {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(ctx, board, thread)
	}
	return domain.ThreadDetail{}, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

type MockSessionHost struct {
	InitFunc func(initData, colorScheme string) (*miniapp.WebApp, error)
}

func (m *MockSessionHost) Init(initData, colorScheme string) (*miniapp.WebApp, error) {
	if m.InitFunc != nil {
		return m.InitFunc(initData, colorScheme)
	}
	return &miniapp.WebApp{User: miniapp.DevUser, Theme: domain.Light, Initialized: true}, nil
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{
		Public:  config.Public{Session: config.Session{TTL: time.Hour}},
		Private: config.Private{JwtKey: "test_secret"},
	}
}

func newTestHandler(boards BoardReader, health HealthChecker, host SessionHost) *Handler {
	cfg := testConfig()
	return New(boards, health, host, jwt.New(cfg.JwtKey(), cfg.JwtTTL()), cfg)
}

// withURLParams attaches chi route params to req the way the router does.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}
