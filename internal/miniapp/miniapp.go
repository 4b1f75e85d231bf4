// Package miniapp validates the launch parameters Telegram hands to a
// Mini-App and turns them into an explicit per-session context object.
package miniapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/itchan-dev/tgchan/shared/domain"
	internal_errors "github.com/itchan-dev/tgchan/shared/errors"
	"github.com/itchan-dev/tgchan/shared/logger"
)

var (
	ErrEmptyInitData = errors.New("init data is empty")
	ErrMissingHash   = errors.New("init data has no hash")
	ErrInvalidHash   = errors.New("init data signature mismatch")
	ErrExpired       = errors.New("init data expired")
	ErrAuthDate      = errors.New("init data has no valid auth_date")
	ErrNoUser        = errors.New("init data has no user")
	ErrNoBotToken    = errors.New("bot token is not configured")
)

// DevUser is returned in dev mode when the UI runs outside Telegram.
var DevUser = domain.User{
	Id:        123456789,
	FirstName: "Test",
	LastName:  "User",
	Username:  "testuser",
}

// WebApp is the validated state of one Mini-App launch.
type WebApp struct {
	User        domain.User
	Theme       domain.ColorScheme
	AuthDate    time.Time
	QueryID     string
	StartParam  string
	Initialized bool
}

// Close tears the session down. A closed WebApp keeps no user.
func (w *WebApp) Close() {
	w.Initialized = false
	w.User = domain.User{}
	w.QueryID = ""
}

type Host struct {
	secret  []byte
	maxAge  time.Duration
	devMode bool
	now     func() time.Time
}

// NewHost builds a validator for initData signed with botToken. maxAge of 0
// disables the auth_date freshness check.
func NewHost(botToken string, maxAge time.Duration, devMode bool) *Host {
	h := &Host{maxAge: maxAge, devMode: devMode, now: time.Now}
	if botToken != "" {
		h.secret = secretKey(botToken)
	}
	return h
}

func secretKey(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// Init validates initData and returns the launch context. Validation errors
// carry status 401.
func (h *Host) Init(initData, colorScheme string) (*WebApp, error) {
	theme := domain.ParseColorScheme(colorScheme)

	if strings.TrimSpace(initData) == "" {
		if h.devMode {
			logger.Log.Debug("dev mode: using mock Mini-App user", "component", "miniapp")
			return &WebApp{User: DevUser, Theme: theme, AuthDate: h.now(), Initialized: true}, nil
		}
		return nil, unauthorized(ErrEmptyInitData)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, unauthorized(fmt.Errorf("parse init data: %w", err))
	}
	if err := h.verify(values); err != nil {
		return nil, unauthorized(err)
	}

	authDate, err := parseAuthDate(values.Get("auth_date"))
	if err != nil {
		return nil, unauthorized(err)
	}
	if h.maxAge > 0 && h.now().Sub(authDate) > h.maxAge {
		return nil, unauthorized(ErrExpired)
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, unauthorized(ErrNoUser)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.Id == 0 {
		return nil, unauthorized(ErrNoUser)
	}

	return &WebApp{
		User:        user,
		Theme:       theme,
		AuthDate:    authDate,
		QueryID:     values.Get("query_id"),
		StartParam:  values.Get("start_param"),
		Initialized: true,
	}, nil
}

// verify checks the hash field against the data-check-string: every other
// field as key=value, sorted by key, joined with newlines.
func (h *Host) verify(values url.Values) error {
	if h.secret == nil {
		return ErrNoBotToken
	}
	got := values.Get("hash")
	if got == "" {
		return ErrMissingHash
	}
	want, err := hex.DecodeString(got)
	if err != nil {
		return ErrInvalidHash
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(dataCheckString(values)))
	if !hmac.Equal(mac.Sum(nil), want) {
		return ErrInvalidHash
	}
	return nil
}

func dataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	return strings.Join(pairs, "\n")
}

func parseAuthDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrAuthDate
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrAuthDate, s)
	}
	return time.Unix(sec, 0), nil
}

func unauthorized(err error) error {
	return internal_errors.Wrap(err, "Invalid Telegram init data", http.StatusUnauthorized)
}
