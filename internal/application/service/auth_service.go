package service

import (
	"log/slog"

	"github.com/tofrito/till-api/internal/config"
	"github.com/tofrito/till-api/pkg/apperror"
	"github.com/tofrito/till-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// AuthService guards the shared manager passcode. The passcode unlocks
// the per-checkout discount gate and, via Login, issues a session
// token for the manager-only endpoints (cancel, reset, reports).
//
// The secret is held only as a bcrypt hash, and attempts share one
// token-bucket limiter so the passcode cannot be brute-forced from
// either entry point.
type AuthService struct {
	passcodeHash []byte
	attempts     *rate.Limiter
	jwtManager   *utils.JWTManager
	logger       *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.ManagerConfig, jwtManager *utils.JWTManager, logger *slog.Logger) (*AuthService, error) {
	hash := []byte(cfg.PasscodeHash)
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.Passcode), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = generated
		logger.Warn("MANAGER_PASSCODE_HASH not set, hashed MANAGER_PASSCODE at startup")
	}

	perSecond := cfg.AttemptsPerMin / 60
	if perSecond <= 0 {
		perSecond = 10.0 / 60
	}
	burst := cfg.AttemptsBurst
	if burst < 1 {
		burst = 1
	}

	return &AuthService{
		passcodeHash: hash,
		attempts:     rate.NewLimiter(rate.Limit(perSecond), burst),
		jwtManager:   jwtManager,
		logger:       logger,
	}, nil
}

// VerifyPasscode checks an attempt against the stored hash. Wrong
// passcodes are an authorization failure the staff can retry; the
// limiter turns sustained guessing into 429s.
func (s *AuthService) VerifyPasscode(attempt string) error {
	if !s.attempts.Allow() {
		s.logger.Warn("manager passcode attempts throttled")
		return apperror.ErrTooManyAttempts
	}
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(attempt)); err != nil {
		s.logger.Info("manager passcode rejected")
		return apperror.ErrInvalidPasscode
	}
	return nil
}

// Login verifies the passcode and issues a manager session token.
func (s *AuthService) Login(passcode string) (string, error) {
	if err := s.VerifyPasscode(passcode); err != nil {
		return "", err
	}

	token, err := s.jwtManager.GenerateManagerToken()
	if err != nil {
		return "", apperror.ErrInternalServer
	}

	s.logger.Info("manager session opened")
	return token, nil
}
