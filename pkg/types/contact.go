package types

import "strings"

// Contact column names.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldAddress   = "address"
	FieldDateAdded = "date_added"
)

// ContactSearchFields are the columns the contact search box matches.
var ContactSearchFields = []string{FieldName, FieldPhone, FieldEmail}

// Contact is an address-book entry. Name and Phone are required; Email and
// Address are optional and stored as empty strings when absent.
type Contact struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	DateAdded string `json:"date_added"`
}

var _ Record[Contact] = Contact{}

func (c Contact) RecordID() int { return c.ID }

func (c Contact) Added() string { return c.DateAdded }

// Validate returns a *ValidationError naming the first empty required field.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Kind: KindContact, Field: FieldName}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &ValidationError{Kind: KindContact, Field: FieldPhone}
	}
	return nil
}

func (c Contact) Normalize() Contact {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	return c
}

func (c Contact) WithIdentity(id int, dateAdded string) Contact {
	c.ID = id
	c.DateAdded = dateAdded
	return c
}

func (c Contact) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return Int(c.ID), true
	case FieldName:
		return String(c.Name), true
	case FieldPhone:
		return String(c.Phone), true
	case FieldEmail:
		return String(c.Email), true
	case FieldAddress:
		return String(c.Address), true
	case FieldDateAdded:
		return String(c.DateAdded), true
	}
	return Value{}, false
}
