package service

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

// buildInitData builds a valid init_data string for tests using the same
// algorithm as ValidateTelegramInitData.
func buildInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()
	var parts []string
	for k, v := range fields {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	dataString := strings.Join(parts, "\n")

	secret := sha256.Sum256([]byte(botToken))
	h := hmacNew(secret[:], []byte(dataString))
	hash := hex.EncodeToString(h)

	vals := url.Values{}
	for k, v := range fields {
		vals.Add(k, v)
	}
	vals.Add("hash", hash)
	return vals.Encode()
}

// hmacNew is a small helper duplicating the HMAC-SHA256 used in production code.
func hmacNew(key, data []byte) []byte {
	blockSize := 64
	if len(key) > blockSize {
		tmp := sha256.Sum256(key)
		key = tmp[:]
	}
	if len(key) < blockSize {
		pad := make([]byte, blockSize-len(key))
		key = append(key, pad...)
	}
	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = key[i] ^ 0x36
		opad[i] = key[i] ^ 0x5c
	}
	h := sha256.New()
	h.Write(ipad)
	h.Write(data)
	inner := h.Sum(nil)

	h2 := sha256.New()
	h2.Write(opad)
	h2.Write(inner)
	return h2.Sum(nil)
}

func TestValidateTelegramInitData_Valid(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}

	initData := buildInitData(t, botToken, fields)

	vals, ok := ValidateTelegramInitData(initData, botToken)
	if !ok {
		t.Fatalf("expected valid init data")
	}
	if vals.Get("user") == "" {
		t.Fatalf("expected user field in values")
	}
}

func TestValidateTelegramInitData_Tampered(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}
	initData := buildInitData(t, botToken, fields)

	// appending an extra field breaks the hash
	tampered := initData + "&x=1"

	_, ok := ValidateTelegramInitData(tampered, botToken)
	if ok {
		t.Fatalf("expected tampered init data to be invalid")
	}
}

func TestValidateTelegramInitData_Stale(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}
	initData := buildInitData(t, botToken, fields)

	_, ok := ValidateTelegramInitData(initData, botToken)
	if ok {
		t.Fatalf("expected stale init data to be invalid")
	}
}

func TestParseTelegramUser(t *testing.T) {
	vals := url.Values{}
	vals.Set("user", `{"id":77,"username":"miner","first_name":"Mi","last_name":"Ner"}`)

	u, ok := ParseTelegramUser(vals)
	if !ok {
		t.Fatalf("expected user to parse")
	}
	if u.ID != 77 || u.Username != "miner" || u.FirstName != "Mi" || u.LastName != "Ner" {
		t.Fatalf("unexpected user: %+v", u)
	}

	vals.Set("user", `{"username":"no-id"}`)
	if _, ok := ParseTelegramUser(vals); ok {
		t.Fatalf("expected user without id to be rejected")
	}

	vals.Del("user")
	if _, ok := ParseTelegramUser(vals); ok {
		t.Fatalf("expected missing user to be rejected")
	}
}
