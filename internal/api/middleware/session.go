package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodshare/platform/internal/core/session"
	"github.com/foodshare/platform/pkg/logger"
)

const (
	sessionKey = "session"
	tokenKey   = "session_token"
)

var errMissingSubject = errors.New("token has no session id")

// TokenCodec signs and verifies the HS256 token that names a client's
// session slot.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token carrying sessionID as its subject.
func (tc *TokenCodec) Issue(sessionID string) (string, error) {
	now := tc.now()
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if tc.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tc.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the session id it carries.
func (tc *TokenCodec) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(tc.now))
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return "", errMissingSubject
	}
	return claims.Subject, nil
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session resolves the client's session once per request and stores it in
// the echo context. The session id comes from the first valid token among
// the Bearer header and the session cookie; clients presenting neither get a
// fresh anonymous session and a cookie naming it.
func Session(store *session.Store, codec *TokenCodec, opts SessionOptions, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid, token string
			for _, candidate := range presentedTokens(c, opts.CookieName) {
				parsed, err := codec.Parse(candidate)
				if err != nil {
					log.Debug().Err(err).Msg("discarding session token")
					continue
				}
				sid, token = parsed, candidate
				break
			}

			if sid == "" {
				sid = uuid.NewString()
				var err error
				if token, err = codec.Issue(sid); err != nil {
					return err
				}
				setSessionCookie(c, opts, token)
			}

			reqLog := log.With().
				Str("session_id", sid).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Logger()
			c.SetRequest(c.Request().WithContext(logger.IntoContext(c.Request().Context(), reqLog)))

			c.Set(sessionKey, store.Restore(c.Request().Context(), sid))
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// presentedTokens lists the request's session tokens, Bearer first.
func presentedTokens(c echo.Context, cookieName string) []string {
	var tokens []string
	if t := bearerToken(c.Request()); t != "" {
		tokens = append(tokens, t)
	}
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		tokens = append(tokens, ck.Value)
	}
	return tokens
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setSessionCookie(c echo.Context, opts SessionOptions, token string) {
	ck := &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.TTL > 0 {
		ck.MaxAge = int(opts.TTL.Seconds())
	}
	c.SetCookie(ck)
}

// MustSession returns the request's session. Calling it on a route that is
// not behind the Session middleware is a programming error and panics.
func MustSession(c echo.Context) *session.Session {
	s, ok := c.Get(sessionKey).(*session.Session)
	if !ok || s == nil {
		panic("session: used outside session middleware")
	}
	return s
}

// SessionToken returns the token naming the request's session.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

// SessionFrom is the non-panicking form of MustSession, for code such as the
// error handler that may run before the middleware.
func SessionFrom(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(sessionKey).(*session.Session)
	return s, ok && s != nil
}
