package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllValid(t *testing.T) {
	fs := All("sap999999", "jane doe", "jane@doe.com", "555-987-6543")

	assert.True(t, fs.AllValid)
	assert.Empty(t, fs.Errors)
	assert.Equal(t, "SAP999999", fs.SAP.Normalized)
	assert.Equal(t, "Jane Doe", fs.Name.Normalized)
	assert.Equal(t, "(555) 987-6543", fs.Phone.Normalized)
}

func TestAllReportsEveryFailure(t *testing.T) {
	// No short-circuiting: every invalid field shows up, in fixed order.
	fs := All("", "John", "not-an-email", "123")

	assert.False(t, fs.AllValid)
	require.Len(t, fs.Errors, 4)
	assert.Equal(t, FieldError{FieldSAPID, "SAP ID is missing"}, fs.Errors[0])
	assert.Equal(t, FieldError{FieldName, "Name must include first and last name"}, fs.Errors[1])
	assert.Equal(t, FieldError{FieldEmail, "Invalid email format: not-an-email"}, fs.Errors[2])
	assert.Equal(t, FieldError{FieldPhone, "Phone must have 10 digits, got 3"}, fs.Errors[3])
}

func TestAllSingleFailure(t *testing.T) {
	fs := All("SAP123456", "jane doe", "jane@doe.com", "055-123-4567")

	assert.False(t, fs.AllValid)
	require.Len(t, fs.Errors, 1)
	assert.Equal(t, FieldError{FieldPhone, "Area code cannot start with 0 or 1"}, fs.Errors[0])
	// The other results are still fully populated.
	assert.True(t, fs.SAP.IsValid)
	assert.True(t, fs.Name.IsValid)
	assert.True(t, fs.Email.IsValid)
}
