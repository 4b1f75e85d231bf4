package handler

import (
	"context"

	"github.com/itchan-dev/tgchan/internal/miniapp"
	"github.com/itchan-dev/tgchan/shared/config"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/itchan-dev/tgchan/shared/jwt"
)

// BoardReader is implemented by apiclient.Client.
type BoardReader interface {
	GetBoards(ctx context.Context) (domain.BoardList, error)
	GetThreads(ctx context.Context, board string, page int) (domain.ThreadPage, error)
	GetThread(ctx context.Context, board, thread string) (domain.ThreadDetail, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SessionHost validates Mini-App launch data. Implemented by miniapp.Host.
type SessionHost interface {
	Init(initData, colorScheme string) (*miniapp.WebApp, error)
}

type Handler struct {
	boards BoardReader
	health HealthChecker
	host   SessionHost
	jwt    jwt.JwtService
	cfg    *config.Config
}

func New(boards BoardReader, health HealthChecker, host SessionHost, jwt jwt.JwtService, cfg *config.Config) *Handler {
	return &Handler{
		boards: boards,
		health: health,
		host:   host,
		jwt:    jwt,
		cfg:    cfg,
	}
}
