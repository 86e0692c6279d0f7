package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^FOOD[1-9]\d{3}$`)
	for range 200 {
		code, err := GenerateReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":      "0.00",
		"2.99":   "2.99",
		"22.9":   "22.90",
		"0.666":  "0.67",
		"1234.5": "1234.50",
		"-3.125": "-3.13",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestRenderEmail(t *testing.T) {
	raw, err := renderEmail("withdrawal", "Withdrawal confirmed", "noreply@foodcash.app", EmailData{
		Name:    "<Aysel>",
		Message: "Your cashback withdrawal is on its way.",
		Amount:  "12.50",
	})
	require.NoError(t, err)

	message := string(raw)
	assert.True(t, strings.HasPrefix(message, "From: noreply@foodcash.app\r\nSubject: Withdrawal confirmed\r\n"))
	assert.Contains(t, message, "12.50 AZN")
	assert.Contains(t, message, "&lt;Aysel&gt;")

	_, err = renderEmail("missing", "x", "y", EmailData{})
	assert.Error(t, err)
}

func TestDisabledMailerIsNoop(t *testing.T) {
	var mailer Mailer
	assert.False(t, mailer.Enabled())
	assert.NoError(t, mailer.SendEmail("a@example.com", "Hi", "welcome", EmailData{}))
}
