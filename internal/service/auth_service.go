package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/logger"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AuthService resolves a validated Telegram user to an account, creating it
// on first contact. Registration is where the referral chain is built.
type AuthService struct {
	userRepo  *repository.UserRepository
	referrals *ReferralService
	notifier  Notifier
	baseRate  decimal.Decimal
}

func NewAuthService(db *pgxpool.Pool, referrals *ReferralService, notifier Notifier, baseRate decimal.Decimal) *AuthService {
	return &AuthService{
		userRepo:  repository.NewUserRepository(db),
		referrals: referrals,
		notifier:  notifier,
		baseRate:  baseRate,
	}
}

// Login returns the existing account for a Telegram user or registers a new
// one. refCode is the referral parameter from the webapp start link; it is
// resolved against referral codes first and Telegram IDs second, and
// silently ignored when it matches nothing.
func (s *AuthService) Login(ctx context.Context, tgUser *TelegramUser, refCode string) (*domain.User, bool, error) {
	telegramID := strconv.FormatInt(tgUser.ID, 10)

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	name := tgUser.FirstName
	if tgUser.LastName != "" {
		name += " " + tgUser.LastName
	}

	user = &domain.User{
		TelegramID:       telegramID,
		TelegramUsername: tgUser.Username,
		TelegramName:     name,
		MiningRate:       s.baseRate,
		ReferralCode:     repository.GenerateReferralCode(),
	}

	referrer := s.resolveReferrer(ctx, refCode, telegramID)
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	if referrer != nil {
		if err := s.referrals.RegisterChain(ctx, user.ID, referrer.ID); err != nil {
			// The account exists; a failed chain is logged, not fatal
			logger.Error("referral chain failed", "user_id", user.ID, "referrer_id", referrer.ID, "error", err)
		} else {
			s.notifier.Notify(referrer.TelegramID,
				fmt.Sprintf("%s joined through your referral link!", name))
		}
	}

	return user, true, nil
}

func (s *AuthService) resolveReferrer(ctx context.Context, refCode, selfTelegramID string) *domain.User {
	if refCode == "" || refCode == selfTelegramID {
		return nil
	}

	if referrer, err := s.userRepo.GetByReferralCode(ctx, refCode); err == nil {
		return referrer
	}
	if referrer, err := s.userRepo.GetByTelegramID(ctx, refCode); err == nil {
		return referrer
	}
	return nil
}

// GetUser returns the account for the authenticated user ID
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
