package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoToken      = errors.New("access token missing")
	errNoExpiry     = errors.New("token has no expiry")
	errTokenExpired = errors.New("access token expired")
)

// TokenExpiry reads the exp claim of a JWT access token. The signature is not
// checked here; the API does that on every call.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

// checkToken is the acceptance rule applied at login and on every restore.
// The token must be present. A JWT must parse, and its exp claim, when
// there is one, must lie ahead of now. Opaque tokens and JWTs without exp
// live as long as the session record.
func checkToken(token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errNoToken
	}
	if !looksLikeJWT(token) {
		return nil
	}
	exp, err := TokenExpiry(token)
	switch {
	case errors.Is(err, errNoExpiry):
		return nil
	case err != nil:
		return err
	case !now.Before(exp):
		return errTokenExpired
	}
	return nil
}
