package validate

// Field labels as shown to reviewers and in follow-up emails.
const (
	FieldSAPID = "SAP ID"
	FieldName  = "Contact Name"
	FieldEmail = "Email"
	FieldPhone = "Phone"
)

// FieldError pairs a field label with its validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FieldSet holds the combined validation outcome for one email's extracted
// fields. All four validators always run; Errors lists every invalid field
// in fixed order (SAP ID, Contact Name, Email, Phone), which drives both
// the displayed error list and the generated follow-up email.
type FieldSet struct {
	AllValid bool
	SAP      Result
	Name     Result
	Email    Result
	Phone    Result
	Errors   []FieldError
}

// All runs the four field validators and combines their results. It never
// short-circuits, so the caller sees every problem at once.
func All(sapID, name, email, phone string) FieldSet {
	fs := FieldSet{
		SAP:   SAPID(sapID),
		Name:  Name(name),
		Email: Email(email),
		Phone: Phone(phone),
	}
	fs.AllValid = fs.SAP.IsValid && fs.Name.IsValid && fs.Email.IsValid && fs.Phone.IsValid

	if !fs.SAP.IsValid {
		fs.Errors = append(fs.Errors, FieldError{Field: FieldSAPID, Error: fs.SAP.Error})
	}
	if !fs.Name.IsValid {
		fs.Errors = append(fs.Errors, FieldError{Field: FieldName, Error: fs.Name.Error})
	}
	if !fs.Email.IsValid {
		fs.Errors = append(fs.Errors, FieldError{Field: FieldEmail, Error: fs.Email.Error})
	}
	if !fs.Phone.IsValid {
		fs.Errors = append(fs.Errors, FieldError{Field: FieldPhone, Error: fs.Phone.Error})
	}

	return fs
}
