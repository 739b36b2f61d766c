package scope

import (
	"fmt"

	"staff-acl/internal/common/apperr"
)

var catalog = []Definition{
	{CustomerNameRead, "customer.name", ActionRead, "Read customer name"},
	{CustomerNameWrite, "customer.name", ActionWrite, "Edit customer name"},
	{CustomerPhoneRead, "customer.phone", ActionRead, "Read customer phone"},
	{CustomerPhoneWrite, "customer.phone", ActionWrite, "Edit customer phone"},
	{CustomerEmailRead, "customer.email", ActionRead, "Read customer email"},
	{CustomerEmailWrite, "customer.email", ActionWrite, "Edit customer email"},
	{CustomerAddressRead, "customer.address", ActionRead, "Read customer address"},
	{CustomerAddressWrite, "customer.address", ActionWrite, "Edit customer address"},
	{CustomerDobRead, "customer.dob", ActionRead, "Read customer date of birth"},
	{CustomerDobWrite, "customer.dob", ActionWrite, "Edit customer date of birth"},
	{CustomerGenderRead, "customer.gender", ActionRead, "Read customer gender"},
	{CustomerGenderWrite, "customer.gender", ActionWrite, "Edit customer gender"},
	{CustomerNotesRead, "customer.notes", ActionRead, "Read customer notes"},
	{CustomerNotesWrite, "customer.notes", ActionWrite, "Edit customer notes"},
	{CustomerFinancialRead, "customer.financial", ActionRead, "Read total spent, points and tier"},
	{CustomerVipRead, "customer.vip", ActionRead, "Read VIP status"},
	{CustomerVipWrite, "customer.vip", ActionWrite, "Change VIP status"},
	{AppointmentView, "appointment", ActionView, "View appointments"},
	{AppointmentCreate, "appointment", ActionCreate, "Book appointments"},
	{AppointmentUpdate, "appointment", ActionUpdate, "Reschedule appointments"},
	{AppointmentCancel, "appointment", ActionCancel, "Cancel appointments"},
	{InvoiceView, "invoice", ActionView, "View invoices"},
	{InvoiceCreate, "invoice", ActionCreate, "Create invoices"},
	{InvoiceUpdate, "invoice", ActionUpdate, "Edit invoices"},
	{HistoryView, "history", ActionView, "View customer history"},
	{HistoryExport, "history", ActionExport, "Export customer data"},
	{CustomerDelete, "customer", ActionDelete, "Delete customers"},
}

var byScope = func() map[Scope]Definition {
	m := make(map[Scope]Definition, len(catalog))
	for _, d := range catalog {
		m[d.Scope] = d
	}
	return m
}()

// Field name -> scope tables used by read/write checks keyed on a customer field.
var (
	readScopes = map[string]Scope{
		"name":        CustomerNameRead,
		"phone":       CustomerPhoneRead,
		"email":       CustomerEmailRead,
		"address":     CustomerAddressRead,
		"dob":         CustomerDobRead,
		"gender":      CustomerGenderRead,
		"notes":       CustomerNotesRead,
		"totalSpent":  CustomerFinancialRead,
		"totalPoints": CustomerFinancialRead,
		"tier":        CustomerFinancialRead,
		"vipStatus":   CustomerVipRead,
	}
	writeScopes = map[string]Scope{
		"name":      CustomerNameWrite,
		"phone":     CustomerPhoneWrite,
		"email":     CustomerEmailWrite,
		"address":   CustomerAddressWrite,
		"dob":       CustomerDobWrite,
		"gender":    CustomerGenderWrite,
		"notes":     CustomerNotesWrite,
		"vipStatus": CustomerVipWrite,
	}
)

// All returns the catalog in declaration order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Parse validates a scope name against the catalog.
func Parse(name string) (Scope, error) {
	s := Scope(name)
	if _, ok := byScope[s]; !ok {
		return "", fmt.Errorf("%w: unknown permission scope %q", apperr.ErrInvalidArgument, name)
	}
	return s, nil
}

// ParseAll parses every name, failing on the first unknown one.
func ParseAll(names []string) ([]Scope, error) {
	out := make([]Scope, 0, len(names))
	for _, n := range names {
		s, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (s Scope) Valid() bool {
	_, ok := byScope[s]
	return ok
}

// Action returns the category of s, or "" for a scope outside the catalog.
func (s Scope) Action() Action {
	return byScope[s].Action
}

func (s Scope) IsReadable() bool { return s.Action() == ActionRead }

func (s Scope) IsWritable() bool { return s.Action() == ActionWrite }

func (s Scope) String() string { return string(s) }

// ReadScopeForField maps a customer field name to its read scope.
// ok is false for unknown fields, which callers must treat as denied.
func ReadScopeForField(field string) (Scope, bool) {
	s, ok := readScopes[field]
	return s, ok
}

// WriteScopeForField maps a customer field name to its write scope.
func WriteScopeForField(field string) (Scope, bool) {
	s, ok := writeScopes[field]
	return s, ok
}
