package model

import "time"

// SAPCustomer is a row in the sap_customers reference table used by the
// existence lookup.
type SAPCustomer struct {
	SAPID         string    `json:"sap_id"`
	AccountStatus string    `json:"account_status"`
	LastUpdated   time.Time `json:"last_updated"`
}
