package miniapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/itchan-dev/tgchan/shared/domain"
	internal_errors "github.com/itchan-dev/tgchan/shared/errors"
	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:ABC-test-token"

var fixedNow = time.Unix(1_700_000_000, 0)

// sign produces initData the way Telegram does for the given fields.
func sign(t *testing.T, token string, values url.Values) string {
	t.Helper()
	mac := hmac.New(sha256.New, secretKey(token))
	mac.Write([]byte(dataCheckString(values)))
	signed := url.Values{}
	for k, v := range values {
		signed[k] = v
	}
	signed.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return signed.Encode()
}

func launchValues(authDate time.Time) url.Values {
	return url.Values{
		"query_id":  {"AAHdF6IQAAAAAN0XohDhrOrc"},
		"user":      {`{"id":42,"first_name":"Анон","username":"anon","language_code":"ru","is_premium":true}`},
		"auth_date": {strconv.FormatInt(authDate.Unix(), 10)},
	}
}

func newHost(maxAge time.Duration, devMode bool) *Host {
	h := NewHost(botToken, maxAge, devMode)
	h.now = func() time.Time { return fixedNow }
	return h
}

func TestInit_Valid(t *testing.T) {
	initData := sign(t, botToken, launchValues(fixedNow.Add(-time.Minute)))

	app, err := newHost(time.Hour, false).Init(initData, "dark")

	require.NoError(t, err)
	assert.True(t, app.Initialized)
	assert.Equal(t, domain.Dark, app.Theme)
	assert.Equal(t, int64(42), app.User.Id)
	assert.Equal(t, "Анон", app.User.FirstName)
	assert.Equal(t, "anon", app.User.Username)
	assert.True(t, app.User.IsPremium)
	assert.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", app.QueryID)
	assert.Equal(t, fixedNow.Add(-time.Minute).Unix(), app.AuthDate.Unix())
}

func TestInit_Rejected(t *testing.T) {
	logger.Discard()
	fresh := launchValues(fixedNow)

	tampered, err := url.ParseQuery(sign(t, botToken, fresh))
	require.NoError(t, err)
	tampered.Set("user", `{"id":1,"first_name":"Mallory"}`)

	noUser := url.Values{"auth_date": fresh["auth_date"]}

	testCases := []struct {
		name     string
		initData string
		expected error
	}{
		{name: "empty", initData: "", expected: ErrEmptyInitData},
		{name: "no hash", initData: fresh.Encode(), expected: ErrMissingHash},
		{name: "wrong bot token", initData: sign(t, "other:token", fresh), expected: ErrInvalidHash},
		{name: "tampered field", initData: tampered.Encode(), expected: ErrInvalidHash},
		{name: "hash not hex", initData: fresh.Encode() + "&hash=zz", expected: ErrInvalidHash},
		{name: "expired", initData: sign(t, botToken, launchValues(fixedNow.Add(-2*time.Hour))), expected: ErrExpired},
		{name: "no user", initData: sign(t, botToken, noUser), expected: ErrNoUser},
		{name: "no auth date", initData: sign(t, botToken, url.Values{"user": fresh["user"]}), expected: ErrAuthDate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, err := newHost(time.Hour, false).Init(tc.initData, "")

			require.Error(t, err)
			assert.Nil(t, app)
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, http.StatusUnauthorized, internal_errors.StatusCode(err))
		})
	}
}

func TestInit_ZeroMaxAgeSkipsFreshness(t *testing.T) {
	initData := sign(t, botToken, launchValues(fixedNow.Add(-365*24*time.Hour)))

	app, err := newHost(0, false).Init(initData, "")

	require.NoError(t, err)
	assert.Equal(t, domain.Light, app.Theme)
}

func TestInit_DevMode(t *testing.T) {
	logger.Discard()

	app, err := NewHost("", time.Hour, true).Init("", "light")

	require.NoError(t, err)
	assert.True(t, app.Initialized)
	assert.Equal(t, DevUser, app.User)
	assert.Equal(t, int64(123456789), app.User.Id)
	assert.Equal(t, "testuser", app.User.Username)
}

func TestInit_DevModeStillValidatesRealInitData(t *testing.T) {
	_, err := NewHost("", time.Hour, true).Init("user=%7B%7D&hash=00", "")
	assert.ErrorIs(t, err, ErrNoBotToken)
}

func TestWebApp_Close(t *testing.T) {
	app, err := NewHost("", 0, true).Init("", "dark")
	require.NoError(t, err)

	app.Close()

	assert.False(t, app.Initialized)
	assert.Zero(t, app.User.Id)
	assert.Equal(t, domain.Dark, app.Theme)
}

func TestDataCheckString(t *testing.T) {
	values := url.Values{
		"user":      {"{}"},
		"auth_date": {"1"},
		"hash":      {"ignored"},
		"query_id":  {"q"},
	}
	assert.Equal(t, "auth_date=1\nquery_id=q\nuser={}", dataCheckString(values))
}
