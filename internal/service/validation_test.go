package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"01712345678",
		"8801712345678",
		"+8801712345678",
		"017 1234 5678",
		" 01312345678 ",
		"01912345678",
	}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), "expected %q to be accepted", p)
	}

	invalid := []string{
		"12345",
		"02812345678",
		"01212345678",
		"0171234567",
		"017123456789",
		"+880171234567a",
		"",
	}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), "expected %q to be rejected", p)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("rahim@example.com"))
	assert.True(t, ValidEmail("a.b+c@shop.com.bd"))
	assert.False(t, ValidEmail("rahim@example"))
	assert.False(t, ValidEmail("rahim example.com"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestValidRating(t *testing.T) {
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"[]", []string{}},
		{`["A","B"]`, []string{"A", "B"}},
		{`"[\"A\",\"B\"]"`, []string{"A", "B"}},
		{`[" A ", "", "B"]`, []string{"A", "B"}},
		{"null", []string{}},
	}
	for _, tt := range tests {
		got, err := ParseFeatures(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, err := ParseFeatures("not json")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = ParseFeatures(`{"a":1}`)
	assert.ErrorAs(t, err, &verr)
}

func TestFlexInt(t *testing.T) {
	var body struct {
		A FlexInt  `json:"a"`
		B FlexInt  `json:"b"`
		C *FlexInt `json:"c"`
		D *FlexInt `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "7", "d": null}`), &body))
	assert.Equal(t, 3, body.A.Int())
	assert.Equal(t, 7, body.B.Int())
	assert.Nil(t, body.C)
	assert.Nil(t, body.D)

	assert.Error(t, json.Unmarshal([]byte(`{"a": "seven"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 2.5}`), &body))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Message: "Required fields missing", Details: map[string]string{"phone": "Phone is required", "address": "Address is required"}}
	assert.Equal(t, "Required fields missing: address, phone", err.Error())
	assert.Equal(t, "Invalid status value", NewValidationError("Invalid status value").Error())
}
