package domain

import "strings"

// Customer is an onboarded business. ID is zero until the identity store
// assigns one and never changes afterwards.
type Customer struct {
	ID           uint64   `json:"id"`
	BusinessName string   `json:"businessName"`
	PhoneNumber  string   `json:"phoneNumber"`
	Website      string   `json:"website"`
	Documents    []string `json:"documents"`
}

// Equal reports whether two customers share the same identity. Attributes
// other than ID are not compared.
func (c Customer) Equal(other Customer) bool {
	return c.ID == other.ID
}

// Clone returns a copy that shares no mutable state with c.
func (c Customer) Clone() Customer {
	out := c
	if c.Documents != nil {
		out.Documents = append([]string(nil), c.Documents...)
	}
	return out
}

// Validate checks the required fields. It returns nil or a ValidationErrors.
func (c Customer) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(c.BusinessName) == "" {
		errs["businessName"] = "BusinessName is Required Field"
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		errs["phoneNumber"] = "PhoneNumber is Required Field"
	}
	return errs.OrNil()
}
