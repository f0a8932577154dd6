package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Result is the outcome of validating one extracted field. Malformed or
// missing input is an expected outcome, not an error return: IsValid is
// false and Error carries a human-readable reason. Normalized is set only
// when the field is valid; the email validator never sets it because a
// valid address is used verbatim.
type Result struct {
	IsValid    bool   `json:"is_valid"`
	Normalized string `json:"normalized,omitempty"`
	Error      string `json:"error,omitempty"`
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	sapPattern   = regexp.MustCompile(`^SAP\d{6}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Email checks the address format. No normalization is produced.
func Email(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Error: "Email is empty"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(raw)) {
		return Result{Error: fmt.Sprintf("Invalid email format: %s", raw)}
	}
	return Result{IsValid: true}
}

// Phone validates and normalizes a phone number to (AAA) XXX-YYYY.
// The checks run in a fixed order: digit extraction, US country-code strip,
// length check, then the NANP area-code constraint, which assumes the
// length check already passed.
func Phone(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Error: "Phone number is missing"}
	}

	digits := nonDigits.ReplaceAllString(raw, "")

	// Handle +1 prefix
	if strings.HasPrefix(digits, "1") && len(digits) == 11 {
		digits = digits[1:]
	}

	if len(digits) != 10 {
		return Result{Error: fmt.Sprintf("Phone must have 10 digits, got %d", len(digits))}
	}

	if digits[0] == '0' || digits[0] == '1' {
		return Result{Error: "Area code cannot start with 0 or 1"}
	}

	return Result{
		IsValid:    true,
		Normalized: fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10]),
	}
}

// SAPID validates the SAP account ID format (SAP followed by six digits).
// Input is case-insensitive, the normalized value is upper-cased.
func SAPID(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Error: "SAP ID is missing"}
	}

	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if !sapPattern.MatchString(cleaned) {
		return Result{Error: "Invalid SAP ID format (expected SAPXXXXXX)"}
	}
	return Result{IsValid: true, Normalized: cleaned}
}

// Name validates a contact name. The policy requires a first and a last
// name, not just any two characters.
func Name(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Error: "Contact name is missing"}
	}

	cleaned := strings.TrimSpace(raw)
	if len(cleaned) < 2 {
		return Result{Error: "Name too short"}
	}

	parts := strings.Fields(cleaned)
	if len(parts) < 2 {
		return Result{Error: "Name must include first and last name"}
	}

	// Naive per-token title casing. "mcdonald" comes out as "Mcdonald";
	// stored normalized values depend on this, so do not "fix" it.
	for i, p := range parts {
		parts[i] = titleToken(p)
	}
	return Result{IsValid: true, Normalized: strings.Join(parts, " ")}
}

func titleToken(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
