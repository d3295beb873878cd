package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonyprachine123/test-2/internal/model"
)

var (
	// Bangladesh mobile numbers: +8801 / 8801 / 01, operator digit 3-9, eight more digits
	phonePattern = regexp.MustCompile(`^(\+8801|8801|01)[3-9]\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// NormalizePhone strips all whitespace from a phone number
func NormalizePhone(phone string) string {
	return whitespace.ReplaceAllString(phone, "")
}

// ValidPhone reports whether phone is a Bangladesh mobile number once whitespace is removed
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// ValidEmail reports whether email looks like an address
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidRating reports whether rating is within 1..5
func ValidRating(rating int) bool {
	return rating >= model.MinRating && rating <= model.MaxRating
}

// ParseFeatures decodes a feature list supplied either as a JSON array or as a
// string containing a JSON array. Empty input yields an empty list.
func ParseFeatures(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}, nil
	}

	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		var encoded string
		if strErr := json.Unmarshal([]byte(raw), &encoded); strErr != nil {
			return nil, NewValidationError("features must be a JSON array of strings")
		}
		return ParseFeatures(encoded)
	}

	out := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

func percent(field string, n int) (model.Percent, error) {
	p, err := model.NewPercent(n)
	if err != nil {
		return 0, &ValidationError{
			Message: "Invalid " + field,
			Details: map[string]string{field: "must be between 0 and 100"},
		}
	}
	return p, nil
}

// FlexInt decodes from a JSON number or a numeric string, the way browser
// forms tend to send it.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns f as an int
func (f FlexInt) Int() int { return int(f) }
