package app

import (
	"github.com/mesh-intelligence/keeper/internal/query"
	"github.com/mesh-intelligence/keeper/internal/store"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// ContactInput carries the user-entered fields of a new contact.
type ContactInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// ContactPatch names the fields to change; nil fields keep their value.
type ContactPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// ContactQuery selects and orders the visible contacts. Each entry in Sort
// is one header click replayed through the View.
type ContactQuery struct {
	Search  string
	Sort    []string
	Reverse bool
}

// ContactPage is a computed contact projection plus its status line.
type ContactPage struct {
	Contacts []types.Contact
	Status   string
}

// AddContact validates and stores a new contact.
func AddContact(s *store.Store[types.Contact], in ContactInput) (types.Contact, error) {
	return s.Add(types.Contact{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	})
}

// EditContact applies p to contact id. Required fields must stay non-empty.
func EditContact(s *store.Store[types.Contact], id int, p ContactPatch) (types.Contact, error) {
	c, err := s.Get(id)
	if err != nil {
		return types.Contact{}, err
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	return s.Update(id, c)
}

// DeleteContact removes contact id.
func DeleteContact(s *store.Store[types.Contact], id int) error {
	return s.Delete(id)
}

// ShowContact returns contact id.
func ShowContact(s *store.Store[types.Contact], id int) (types.Contact, error) {
	return s.Get(id)
}

// ListContacts filters the store's contacts by q.Search over name, phone
// and email, then replays q.Sort through v.
func ListContacts(s *store.Store[types.Contact], v *query.View[types.Contact], q ContactQuery) (ContactPage, error) {
	all := s.List()
	shown, err := query.Filter(all, q.Search, types.ContactSearchFields...)
	if err != nil {
		return ContactPage{}, err
	}
	for _, field := range q.Sort {
		if shown, err = v.SortBy(shown, field, q.Reverse); err != nil {
			return ContactPage{}, err
		}
	}
	return ContactPage{
		Contacts: shown,
		Status:   query.ContactSummary(len(shown), len(all)),
	}, nil
}

// sampleContacts is the demo address book.
var sampleContacts = []ContactInput{
	{Name: "John Doe", Phone: "555-1234", Email: "john@example.com", Address: "123 Main St, Anytown"},
	{Name: "Jane Smith", Phone: "555-5678", Email: "jane@example.com", Address: "456 Oak Ave, Somewhere"},
	{Name: "Bob Johnson", Phone: "555-9012", Email: "bob@example.com", Address: "789 Pine Rd, Nowhere"},
}

// AddSampleContacts adds the demo contacts through the normal Add path, so
// they get fresh ids alongside existing records. It stops at the first
// error and returns what was added so far.
func AddSampleContacts(s *store.Store[types.Contact]) ([]types.Contact, error) {
	added := make([]types.Contact, 0, len(sampleContacts))
	for _, in := range sampleContacts {
		c, err := AddContact(s, in)
		if err != nil {
			return added, err
		}
		added = append(added, c)
	}
	return added, nil
}
