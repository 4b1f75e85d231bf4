// Package apiclient reads boards and threads from the upstream board API
// through the proxy chain and degrades to static data when it is down.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/itchan-dev/tgchan/internal/fetcher"
	"github.com/itchan-dev/tgchan/internal/normalize"
	"github.com/itchan-dev/tgchan/shared/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetcher is the part of fetcher.Fetcher the client needs.
type Fetcher interface {
	Fetch(ctx context.Context, target string, decode fetcher.Decoder) (fetcher.Result, error)
}

type Client struct {
	BaseURL    string
	fetcher    Fetcher
	normalizer *normalize.Normalizer
}

func New(baseURL string, f Fetcher) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL:    baseURL,
		fetcher:    f,
		normalizer: normalize.New(baseURL),
	}
}

const (
	resourceBoards  = "boards"
	resourceThreads = "threads"
)

var fallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tgchan_fallback_served_total",
		Help: "Responses served from static fallback data",
	},
	[]string{"resource"},
)

var (
	boardIdRe  = regexp.MustCompile(`^[a-z0-9]{1,10}$`)
	threadIdRe = regexp.MustCompile(`^[0-9]{1,20}$`)
)

func validateBoard(board string) error {
	if !boardIdRe.MatchString(board) {
		return errors.New(fmt.Sprintf("invalid board id %q", board), http.StatusBadRequest)
	}
	return nil
}

func validateThread(thread string) error {
	if !threadIdRe.MatchString(thread) {
		return errors.New(fmt.Sprintf("invalid thread id %q", thread), http.StatusBadRequest)
	}
	return nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}
