package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"
)

const testBotToken = "12345:test-token"

// signInitData builds a valid init data query string the way the Telegram
// client would.
func signInitData(t *testing.T, values url.Values, botToken string) string {
	t.Helper()

	var keys []string
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		parts = append(parts, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(parts, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(botToken))

	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(dataCheckString))
	values.Set("hash", hex.EncodeToString(h.Sum(nil)))

	return values.Encode()
}

func freshInitData(t *testing.T) url.Values {
	t.Helper()
	values := url.Values{}
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
	values.Set("query_id", "AAE1")
	values.Set("user", `{"id":42,"username":"gamer","first_name":"Иван","last_name":"И","language_code":"ru"}`)
	return values
}

func TestValidateTelegramInitData(t *testing.T) {
	initData := signInitData(t, freshInitData(t), testBotToken)

	user, err := ValidateTelegramInitData(initData, testBotToken)
	if err != nil {
		t.Fatalf("ValidateTelegramInitData() error: %v", err)
	}
	if user.UserID != 42 {
		t.Errorf("UserID = %d, want 42", user.UserID)
	}
	if user.Username != "gamer" {
		t.Errorf("Username = %q, want gamer", user.Username)
	}
	if user.FirstName != "Иван" {
		t.Errorf("FirstName = %q", user.FirstName)
	}
}

func TestValidateTelegramInitDataWrongToken(t *testing.T) {
	initData := signInitData(t, freshInitData(t), "999:другой-токен")

	if _, err := ValidateTelegramInitData(initData, testBotToken); err == nil {
		t.Fatal("expected error for data signed with a different token")
	}
}

func TestValidateTelegramInitDataTampered(t *testing.T) {
	values := freshInitData(t)
	initData := signInitData(t, values, testBotToken)

	// Swap the user id after signing.
	tampered := strings.Replace(initData, "%22id%22%3A42", "%22id%22%3A43", 1)
	if tampered == initData {
		t.Fatal("tampering failed, encoded payload did not match")
	}

	if _, err := ValidateTelegramInitData(tampered, testBotToken); err == nil {
		t.Fatal("expected error for tampered payload")
	}
}

func TestValidateTelegramInitDataMissingHash(t *testing.T) {
	values := freshInitData(t)
	if _, err := ValidateTelegramInitData(values.Encode(), testBotToken); err == nil {
		t.Fatal("expected error for missing hash")
	}
}

func TestValidateTelegramInitDataStale(t *testing.T) {
	values := freshInitData(t)
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Add(-25*time.Hour).Unix()))
	initData := signInitData(t, values, testBotToken)

	if _, err := ValidateTelegramInitData(initData, testBotToken); err == nil {
		t.Fatal("expected error for auth_date older than a day")
	}
}

func TestValidateTelegramInitDataDayOldStillValid(t *testing.T) {
	values := freshInitData(t)
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Add(-23*time.Hour).Unix()))
	initData := signInitData(t, values, testBotToken)

	if _, err := ValidateTelegramInitData(initData, testBotToken); err != nil {
		t.Fatalf("23h-old init data should validate, got: %v", err)
	}
}

func TestValidateTelegramInitDataBadAuthDate(t *testing.T) {
	values := freshInitData(t)
	values.Set("auth_date", "not-a-number")
	initData := signInitData(t, values, testBotToken)

	if _, err := ValidateTelegramInitData(initData, testBotToken); err == nil {
		t.Fatal("expected error for non-numeric auth_date")
	}
}
