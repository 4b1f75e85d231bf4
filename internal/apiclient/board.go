package apiclient

import (
	"context"
	"fmt"

	"github.com/itchan-dev/tgchan/internal/fallback"
	"github.com/itchan-dev/tgchan/internal/fetcher"
	"github.com/itchan-dev/tgchan/internal/normalize"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/itchan-dev/tgchan/shared/logger"
)

const boardsPath = "/api/mobile/v2/boards"

// GetBoards returns the board index. When no proxy answers, the static
// board list is returned instead; the only error is ctx cancellation.
func (c *Client) GetBoards(ctx context.Context) (domain.BoardList, error) {
	var raw []normalize.RawBoard
	res, err := c.fetcher.Fetch(ctx, c.url(boardsPath), fetcher.Into(&raw))
	if err != nil {
		if ctx.Err() != nil {
			return domain.BoardList{}, fmt.Errorf("get boards: %w", ctx.Err())
		}
		logger.Log.Warn("serving fallback board list", "component", "apiclient", "error", err)
		fallbackServedTotal.WithLabelValues(resourceBoards).Inc()
		return fallback.Boards(), nil
	}

	boards := c.normalizer.Boards(raw)
	if len(boards) == 0 {
		logger.Log.Warn("upstream returned no boards, serving fallback", "component", "apiclient", "proxy", res.Proxy)
		fallbackServedTotal.WithLabelValues(resourceBoards).Inc()
		return fallback.Boards(), nil
	}
	return domain.BoardList{Boards: boards}, nil
}

// Ping reports whether the board index is reachable through any proxy.
func (c *Client) Ping(ctx context.Context) error {
	var raw []normalize.RawBoard
	if _, err := c.fetcher.Fetch(ctx, c.url(boardsPath), fetcher.Into(&raw)); err != nil {
		return fmt.Errorf("ping upstream: %w", err)
	}
	return nil
}
