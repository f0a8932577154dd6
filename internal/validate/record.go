package validate

import (
	"time"

	"mailtriage/internal/model"
)

// Not-found note appended to a record's error list when the SAP ID format
// is valid but the account is unknown.
const errSAPNotFound = "SAP ID not found in database"

// BuildRecord assembles the flat review-queue record from the raw fields,
// the combined validation outcome and the existence flag. The error list
// keeps only real failures, plus the not-found note for a well-formed but
// unknown SAP ID.
func BuildRecord(emailID, sender, sapID, name, email, phone string, fs FieldSet, exists bool, queuedAt time.Time) model.ReviewRecord {
	routing := Route(fs.SAP.IsValid, fs.Name.IsValid, fs.Email.IsValid, fs.Phone.IsValid, exists)

	errs := make([]string, 0, len(fs.Errors)+1)
	for _, fe := range fs.Errors {
		errs = append(errs, fe.Field+": "+fe.Error)
	}
	if fs.SAP.IsValid && !exists {
		errs = append(errs, errSAPNotFound)
	}

	return model.ReviewRecord{
		EmailID:          emailID,
		Sender:           sender,
		ValidationStatus: string(routing.Status),
		QueueType:        string(routing.Queue),
		SAPID:            sapID,
		ContactName:      name,
		ContactEmail:     email,
		ContactPhone:     phone,
		NormalizedSAPID:  fs.SAP.Normalized,
		NormalizedName:   fs.Name.Normalized,
		NormalizedPhone:  fs.Phone.Normalized,
		SAPIDValid:       fs.SAP.IsValid,
		NameValid:        fs.Name.IsValid,
		EmailValid:       fs.Email.IsValid,
		PhoneValid:       fs.Phone.IsValid,
		SAPExists:        exists,
		Errors:           errs,
		QueuedAt:         queuedAt,
	}
}
