package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/pkg/clock"
	"github.com/go-med-reminder/internal/pkg/otp"
	pkgtoken "github.com/go-med-reminder/internal/pkg/token"
)

const (
	// OTPExpiry is how long a one-time code stays valid.
	OTPExpiry = 5 * time.Minute
	// SessionExpiry is how long a session token stays valid.
	SessionExpiry = 30 * 24 * time.Hour

	maxOTPAttempts = 3

	rateLimitWindow   = 5 * time.Minute
	rateLimitRequests = 5
)

// OTPEntry is the cached state of one issued code, keyed by lowercased email.
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// SessionEntry binds a session token to an email address.
type SessionEntry struct {
	Email     string
	ExpiresAt time.Time
}

// RateLimitEntry counts OTP requests within the current fixed window,
// keyed by client IP.
type RateLimitEntry struct {
	Count       int
	WindowReset time.Time
}

// Allowlist decides which email addresses may authenticate.
type Allowlist interface {
	IsAllowed(email string) (bool, error)
}

// Mailer delivers one-time login codes.
type Mailer interface {
	SendOTP(to, code string, validity time.Duration) error
}

// Cache is the TTL-cache contract the service relies on.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type Service interface {
	// RequestOTP issues and mails a one-time code. For addresses not on the
	// allow-list it returns nil without storing anything, so the response
	// cannot be used to enumerate registered emails.
	RequestOTP(ctx context.Context, email, clientIP string) error
	// VerifyOTP checks a code and, on success, creates a session and returns
	// its token together with the normalized email.
	VerifyOTP(ctx context.Context, email, code string) (token, normalizedEmail string, err error)
	// ValidateSession returns the email bound to a live session token.
	ValidateSession(token string) (email string, ok bool)
	// Logout destroys the session; unknown tokens are ignored.
	Logout(token string)
	// Enabled reports whether authentication is enforced at all.
	Enabled() bool
}

// Deps wires the service. The caches are injected so tests can control
// their clocks and inspect their contents.
type Deps struct {
	Allowlist Allowlist
	Mailer    Mailer
	OTPs      Cache[string, OTPEntry]
	Sessions  Cache[string, SessionEntry]
	Rates     Cache[string, RateLimitEntry]
	Clock     clock.Clock
	Enabled   bool
}

type service struct {
	allowlist Allowlist
	mailer    Mailer
	otps      Cache[string, OTPEntry]
	sessions  Cache[string, SessionEntry]
	rates     Cache[string, RateLimitEntry]
	clock     clock.Clock
	enabled   bool

	// otpMu and rateMu make the check-then-increment sequences atomic with
	// respect to concurrent callers touching the same key.
	otpMu  sync.Mutex
	rateMu sync.Mutex
}

func NewService(d Deps) Service {
	return &service{
		allowlist: d.Allowlist,
		mailer:    d.Mailer,
		otps:      d.OTPs,
		sessions:  d.Sessions,
		rates:     d.Rates,
		clock:     d.Clock,
		enabled:   d.Enabled,
	}
}

func (s *service) Enabled() bool { return s.enabled }

func (s *service) RequestOTP(ctx context.Context, email, clientIP string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}
	// Rejecting here must not consume an issuance attempt, so the limiter
	// runs before anything else.
	if !s.allowRequest(clientIP) {
		return fmt.Errorf("too many requests, wait %d minutes: %w", int(rateLimitWindow.Minutes()), domain.ErrRateLimited)
	}

	allowed, err := s.allowlist.IsAllowed(email)
	if err != nil {
		return fmt.Errorf("allow-list lookup: %w", domain.ErrDependency)
	}
	if !allowed {
		slog.Info("otp requested for unregistered email", "ip", clientIP)
		return nil
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", domain.ErrDependency)
	}
	now := s.clock.Now()
	s.otps.Set(email, OTPEntry{Code: code, ExpiresAt: now.Add(OTPExpiry)}, OTPExpiry)

	// Delivery blocks on the mail server; it runs outside any cache lock and
	// is bounded by the mailer's own timeout.
	if err := s.mailer.SendOTP(email, code, OTPExpiry); err != nil {
		slog.Error("otp delivery failed", "err", err)
		return fmt.Errorf("send otp email: %w", domain.ErrDependency)
	}
	return nil
}

// allowRequest applies the fixed window: rateLimitRequests per
// rateLimitWindow per client IP. The count resets to 1 once the window has
// passed, otherwise it increments on every call.
func (s *service) allowRequest(clientIP string) bool {
	s.rateMu.Lock()
	defer s.rateMu.Unlock()

	now := s.clock.Now()
	e, ok := s.rates.Get(clientIP)
	if !ok || now.After(e.WindowReset) {
		s.rates.Set(clientIP, RateLimitEntry{Count: 1, WindowReset: now.Add(rateLimitWindow)}, rateLimitWindow)
		return true
	}
	e.Count++
	s.rates.Set(clientIP, e, e.WindowReset.Sub(now))
	return e.Count <= rateLimitRequests
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return "", "", fmt.Errorf("email and otp required: %w", domain.ErrBadRequest)
	}

	if err := s.consumeOTP(email, code); err != nil {
		return "", "", err
	}

	tok, err := pkgtoken.NewSessionToken()
	if err != nil {
		return "", "", fmt.Errorf("create session: %w", domain.ErrDependency)
	}
	s.sessions.Set(tok, SessionEntry{Email: email, ExpiresAt: s.clock.Now().Add(SessionExpiry)}, SessionExpiry)
	return tok, email, nil
}

// consumeOTP runs the attempt-counting state machine under one lock. The
// attempt counter increments before the code comparison on every call; the
// entry is deleted on expiry, on the attempt limit, and on success.
func (s *service) consumeOTP(email, code string) error {
	s.otpMu.Lock()
	defer s.otpMu.Unlock()

	now := s.clock.Now()
	entry, ok := s.otps.Get(email)
	if !ok || now.After(entry.ExpiresAt) {
		s.otps.Delete(email)
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrUnauthorized)
	}
	entry.Attempts++
	if entry.Attempts > maxOTPAttempts {
		s.otps.Delete(email)
		return fmt.Errorf("too many attempts: %w", domain.ErrTooManyAttempts)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(entry.Code)) != 1 {
		s.otps.Set(email, entry, entry.ExpiresAt.Sub(now))
		return fmt.Errorf("invalid OTP: %w", domain.ErrUnauthorized)
	}
	// One-shot: a verified code can never be replayed.
	s.otps.Delete(email)
	return nil
}

func (s *service) ValidateSession(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	e, ok := s.sessions.Get(token)
	if !ok {
		return "", false
	}
	if s.clock.Now().After(e.ExpiresAt) {
		s.sessions.Delete(token)
		return "", false
	}
	return e.Email, true
}

func (s *service) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Delete(token)
}
