package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"

	"github.com/gofiber/fiber/v2"
)

const ctxCallerKey = "caller"

// Sessions issues signed session tokens backed by a Store.
type Sessions struct {
	store  Store
	secret string
	ttl    time.Duration
	cookie string
	secure bool
}

func NewSessions(store Store, cfg *config.Config) *Sessions {
	return &Sessions{
		store:  store,
		secret: cfg.SessionSecret,
		ttl:    cfg.SessionTTL,
		cookie: cfg.SessionCookie,
		secure: cfg.CookieSecure,
	}
}

func (s *Sessions) Create(ctx context.Context, c Caller) (string, error) {
	id := newSessionID()
	if err := s.store.Save(ctx, id, c, s.ttl); err != nil {
		return "", err
	}
	return GenerateToken(s.secret, id, c.UserID, s.ttl)
}

// Resolve returns the caller bound to a token.
func (s *Sessions) Resolve(ctx context.Context, token string) (Caller, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return Caller{}, ErrSessionNotFound
	}
	return s.store.Load(ctx, claims.ID)
}

func (s *Sessions) Destroy(ctx context.Context, token string) error {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, claims.ID)
}

func (s *Sessions) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(s.ttl),
	})
}

func (s *Sessions) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		Expires:  time.Unix(0, 0),
	})
}

func (s *Sessions) tokenFrom(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(s.cookie)
}

// Middleware attaches the session caller to the request when one exists.
// It never rejects; guards do.
func (s *Sessions) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := s.tokenFrom(c)
		if token == "" {
			return c.Next()
		}
		caller, err := s.Resolve(c.UserContext(), token)
		switch {
		case err == nil:
			c.Locals(ctxCallerKey, caller)
		case !errors.Is(err, ErrSessionNotFound):
			slog.Warn("session lookup failed", "err", err)
		}
		return c.Next()
	}
}

// CallerFrom returns the request's caller, anonymous when not logged in.
func CallerFrom(c *fiber.Ctx) Caller {
	caller, _ := c.Locals(ctxCallerKey).(Caller)
	return caller
}

// Require rejects the request unless the guard admits the caller.
func Require(g Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := g(CallerFrom(c)); err != nil {
			return err
		}
		return c.Next()
	}
}
