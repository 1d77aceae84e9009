package solana

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	// well-formed base58 public keys
	assert.True(t, ValidateAddress("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"))
	assert.True(t, ValidateAddress("So11111111111111111111111111111111111111112"))

	assert.False(t, ValidateAddress(""))
	assert.False(t, ValidateAddress("short"))
	assert.False(t, ValidateAddress(strings.Repeat("A", 45)))
	// 0, O, I and l are not part of the base58 alphabet
	assert.False(t, ValidateAddress("0xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"))
	assert.False(t, ValidateAddress("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgOlI"))
}

func TestDepositConventions(t *testing.T) {
	assert.True(t, MinimumDeposit().Equal(decimal.RequireFromString("0.05")))
	assert.True(t, ConversionRate().Equal(decimal.NewFromInt(100)))

	s := NewService("So11111111111111111111111111111111111111112")
	assert.Equal(t, "So11111111111111111111111111111111111111112", s.DepositWallet())
}
