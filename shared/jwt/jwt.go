package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/tgchan/shared/domain"
	internal_errors "github.com/itchan-dev/tgchan/shared/errors"
	"github.com/itchan-dev/tgchan/shared/logger"
)

type JwtService interface {
	NewToken(session domain.Session) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(session domain.Session) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = session.User.Id
	claims["first_name"] = session.User.FirstName
	claims["last_name"] = session.User.LastName
	claims["username"] = session.User.Username
	claims["lang"] = session.User.LanguageCode
	claims["theme"] = string(session.Theme)
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("cannot sign session token", "component", "jwt", "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("session token rejected", "component", "jwt", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized, Err: err}
	}

	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	return token, nil
}

// SessionFromClaims rebuilds the session stored by NewToken.
func SessionFromClaims(claims jwt.MapClaims) (domain.Session, bool) {
	uid, ok := claims["uid"].(float64)
	if !ok || uid == 0 {
		return domain.Session{}, false
	}
	firstName, ok := claims["first_name"].(string)
	if !ok {
		return domain.Session{}, false
	}
	lastName, _ := claims["last_name"].(string)
	username, _ := claims["username"].(string)
	lang, _ := claims["lang"].(string)
	theme, _ := claims["theme"].(string)

	return domain.Session{
		User: domain.User{
			Id:           int64(uid),
			FirstName:    firstName,
			LastName:     lastName,
			Username:     username,
			LanguageCode: lang,
		},
		Theme: domain.ParseColorScheme(theme),
	}, true
}
