// Package solana holds the deposit-side conventions for the Solana chain:
// address validation, the house deposit wallet and the SOL to USD
// conversion used when crediting deposits.
package solana

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Base58 without 0, O, I and l, the alphabet Solana addresses use
var addressRe = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ValidateAddress reports whether s looks like a Solana public key
func ValidateAddress(s string) bool {
	return addressRe.MatchString(s)
}

// MinimumDeposit is the smallest accepted deposit, in SOL
func MinimumDeposit() decimal.Decimal {
	return decimal.New(5, -2) // 0.05 SOL
}

// ConversionRate is the fixed SOL to USD rate applied to deposits.
// TODO: replace with a price feed once the oracle endpoint is chosen.
func ConversionRate() decimal.Decimal {
	return decimal.NewFromInt(100)
}

type Service struct {
	depositWallet string
}

func NewService(depositWallet string) *Service {
	return &Service{depositWallet: depositWallet}
}

// DepositWallet returns the house wallet users send deposits to
func (s *Service) DepositWallet() string {
	return s.depositWallet
}
