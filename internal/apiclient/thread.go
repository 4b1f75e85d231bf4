package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/itchan-dev/tgchan/internal/fallback"
	"github.com/itchan-dev/tgchan/internal/fetcher"
	"github.com/itchan-dev/tgchan/internal/normalize"
	"github.com/itchan-dev/tgchan/shared/domain"
	internal_errors "github.com/itchan-dev/tgchan/shared/errors"
	"github.com/itchan-dev/tgchan/shared/logger"
)

// GetThreads returns one page of a board. Pages below 1 are treated as 1.
// When no proxy answers, a synthetic page is returned instead.
func (c *Client) GetThreads(ctx context.Context, board string, page int) (domain.ThreadPage, error) {
	if err := validateBoard(board); err != nil {
		return domain.ThreadPage{}, err
	}
	page = max(1, page)

	var raw normalize.RawThreadList
	_, err := c.fetcher.Fetch(ctx, c.url(fmt.Sprintf("/%s/%d.json", board, page)), fetcher.Into(&raw))
	if err != nil {
		if ctx.Err() != nil {
			return domain.ThreadPage{}, fmt.Errorf("get threads: %w", ctx.Err())
		}
		logger.Log.Warn("serving fallback threads",
			"component", "apiclient",
			"board", board,
			"page", page,
			"error", err)
		fallbackServedTotal.WithLabelValues(resourceThreads).Inc()
		return fallback.Threads(board, page), nil
	}
	return c.normalizer.Threads(board, page, raw), nil
}

// GetThread returns a single thread with all posts. Unlike the list calls
// it has no fallback: exhaustion is reported as a 502.
func (c *Client) GetThread(ctx context.Context, board, thread string) (domain.ThreadDetail, error) {
	if err := validateBoard(board); err != nil {
		return domain.ThreadDetail{}, err
	}
	if err := validateThread(thread); err != nil {
		return domain.ThreadDetail{}, err
	}

	var raw normalize.RawThreadDetail
	_, err := c.fetcher.Fetch(ctx, c.url(fmt.Sprintf("/%s/res/%s.json", board, thread)), fetcher.Into(&raw))
	if err != nil {
		if errors.Is(err, fetcher.ErrExhausted) {
			return domain.ThreadDetail{}, internal_errors.Wrap(err,
				fmt.Sprintf("thread /%s/%s is unavailable", board, thread), http.StatusBadGateway)
		}
		return domain.ThreadDetail{}, fmt.Errorf("get thread: %w", err)
	}

	detail, ok := c.normalizer.Thread(board, raw)
	if !ok {
		return domain.ThreadDetail{}, internal_errors.New(
			fmt.Sprintf("thread /%s/%s not found", board, thread), http.StatusNotFound)
	}
	return detail, nil
}
