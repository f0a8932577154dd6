package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		err   string
	}{
		{"simple", "a@b.co", true, ""},
		{"full address", "john.smith@example.com", true, ""},
		{"plus tag", "john+tag@example.com", true, ""},
		{"surrounding spaces", "  jane@doe.com  ", true, ""},
		{"empty", "", false, "Email is empty"},
		{"whitespace only", "   ", false, "Email is empty"},
		{"no at sign", "not-an-email", false, "Invalid email format: not-an-email"},
		{"one letter tld", "a@b.c", false, "Invalid email format: a@b.c"},
		{"missing domain", "a@", false, "Invalid email format: a@"},
		{"internal space", "a b@c.de", false, "Invalid email format: a b@c.de"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Email(tc.raw)
			assert.Equal(t, tc.valid, r.IsValid)
			assert.Equal(t, tc.err, r.Error)
			// The email validator never normalizes.
			assert.Empty(t, r.Normalized)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		valid      bool
		normalized string
		err        string
	}{
		{"dashes", "555-123-4567", true, "(555) 123-4567", ""},
		{"dots", "555.123.4567", true, "(555) 123-4567", ""},
		{"already formatted", "(555) 123-4567", true, "(555) 123-4567", ""},
		{"country code", "15551234567", true, "(555) 123-4567", ""},
		{"plus one", "+1 555 123 4567", true, "(555) 123-4567", ""},
		{"empty", "", false, "", "Phone number is missing"},
		{"too short", "123-456", false, "", "Phone must have 10 digits, got 6"},
		{"too long", "555-123-45678", false, "", "Phone must have 10 digits, got 11"},
		{"leading zero area code", "055-123-4567", false, "", "Area code cannot start with 0 or 1"},
		{"leading one area code", "155-123-4567", false, "", "Area code cannot start with 0 or 1"},
		{"no digits", "call me", false, "", "Phone must have 10 digits, got 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Phone(tc.raw)
			assert.Equal(t, tc.valid, r.IsValid)
			assert.Equal(t, tc.normalized, r.Normalized)
			assert.Equal(t, tc.err, r.Error)
		})
	}
}

func TestPhoneEquivalentForms(t *testing.T) {
	// All common renderings of the same number normalize identically.
	want := Phone("(555) 123-4567")
	require.True(t, want.IsValid)
	assert.Equal(t, want, Phone("15551234567"))
	assert.Equal(t, want, Phone("555.123.4567"))
	assert.Equal(t, "(555) 123-4567", want.Normalized)
}

func TestSAPID(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		valid      bool
		normalized string
	}{
		{"upper", "SAP123456", true, "SAP123456"},
		{"lower", "sap123456", true, "SAP123456"},
		{"mixed with spaces", "  sAp999999  ", true, "SAP999999"},
		{"five digits", "SAP12345", false, ""},
		{"seven digits", "SAP1234567", false, ""},
		{"wrong prefix", "SAB123456", false, ""},
		{"trailing letter", "SAP12345X", false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := SAPID(tc.raw)
			assert.Equal(t, tc.valid, r.IsValid)
			assert.Equal(t, tc.normalized, r.Normalized)
			if !tc.valid {
				assert.Equal(t, "Invalid SAP ID format (expected SAPXXXXXX)", r.Error)
			}
		})
	}

	r := SAPID("")
	assert.False(t, r.IsValid)
	assert.Equal(t, "SAP ID is missing", r.Error)
}

func TestName(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		valid      bool
		normalized string
		err        string
	}{
		{"lower case", "john smith", true, "John Smith", ""},
		{"shouting", "JANE DOE", true, "Jane Doe", ""},
		{"three tokens", "mary jo smith", true, "Mary Jo Smith", ""},
		{"padded", "  jane doe  ", true, "Jane Doe", ""},
		{"empty", "", false, "", "Contact name is missing"},
		{"single letter", "J", false, "", "Name too short"},
		{"single token", "John", false, "", "Name must include first and last name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Name(tc.raw)
			assert.Equal(t, tc.valid, r.IsValid)
			assert.Equal(t, tc.normalized, r.Normalized)
			assert.Equal(t, tc.err, r.Error)
		})
	}
}

func TestNameNaiveTitleCasing(t *testing.T) {
	// Per-word capitalization is deliberately naive; stored normalized
	// values depend on it staying this way.
	r := Name("ronald mcdonald")
	require.True(t, r.IsValid)
	assert.Equal(t, "Ronald Mcdonald", r.Normalized)
}

func TestResultInvariants(t *testing.T) {
	inputs := []string{"", "  ", "x", "john smith", "SAP123456", "555-123-4567", "a@b.co", "garbage!!"}
	for _, in := range inputs {
		for name, fn := range map[string]func(string) Result{
			"sap": SAPID, "name": Name, "email": Email, "phone": Phone,
		} {
			r := fn(in)
			if r.IsValid {
				assert.Empty(t, r.Error, "%s(%q): valid result must carry no error", name, in)
				if name != "email" {
					assert.NotEmpty(t, r.Normalized, "%s(%q): valid result must carry a normalized value", name, in)
				}
			} else {
				assert.NotEmpty(t, r.Error, "%s(%q): invalid result must carry an error", name, in)
				assert.Empty(t, r.Normalized, "%s(%q): invalid result must not normalize", name, in)
			}
		}
	}
}

func TestValidatorsIdempotent(t *testing.T) {
	// Re-running a validator on its own normalized output must accept it
	// and leave it unchanged.
	cases := []struct {
		fn  func(string) Result
		raw string
	}{
		{SAPID, "sap123456"},
		{Name, "john SMITH"},
		{Phone, "1 (555) 987-6543"},
	}
	for _, tc := range cases {
		first := tc.fn(tc.raw)
		require.True(t, first.IsValid)
		second := tc.fn(first.Normalized)
		require.True(t, second.IsValid)
		assert.Equal(t, first.Normalized, second.Normalized)
	}
}
