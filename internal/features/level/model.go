package level

import (
	"fmt"
	"strings"
	"time"

	"staff-acl/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Level string

const (
	LevelNo   Level = "NO"
	LevelView Level = "VIEW"
	LevelEdit Level = "EDIT"
)

// ParseLevel accepts exactly NO, VIEW or EDIT.
func ParseLevel(raw string) (Level, error) {
	switch l := Level(strings.TrimSpace(raw)); l {
	case LevelNo, LevelView, LevelEdit:
		return l, nil
	}
	return "", fmt.Errorf("%w: level %q", apperr.ErrInvalidArgument, raw)
}

// Decision is the masking outcome for one field.
type Decision int

const (
	Show Decision = iota
	Hide
)

func (d Decision) String() string {
	if d == Hide {
		return "hide"
	}
	return "show"
}

// Decide hides only NO. VIEW and EDIT are not distinguished for visibility.
func Decide(l Level) Decision {
	if l == LevelNo {
		return Hide
	}
	return Show
}

// Field keys of a LevelGrant.
const (
	FieldCustomerName        = "customerName"
	FieldCustomerPhone       = "customerPhone"
	FieldCustomerEmail       = "customerEmail"
	FieldCustomerDob         = "customerDob"
	FieldCustomerGender      = "customerGender"
	FieldCustomerAddress     = "customerAddress"
	FieldCustomerNotes       = "customerNotes"
	FieldCustomerTotalSpent  = "customerTotalSpent"
	FieldCustomerTotalPoints = "customerTotalPoints"
	FieldCustomerTier        = "customerTier"
	FieldCustomerVipStatus   = "customerVipStatus"
	FieldAppointmentView     = "appointmentView"
	FieldAppointmentCreate   = "appointmentCreate"
	FieldAppointmentUpdate   = "appointmentUpdate"
	FieldAppointmentCancel   = "appointmentCancel"
	FieldInvoiceView         = "invoiceView"
	FieldInvoiceCreate       = "invoiceCreate"
	FieldInvoiceUpdate       = "invoiceUpdate"
	FieldHistoryView         = "historyView"
	FieldHistoryExport       = "historyExport"
)

// LevelGrant is the flat per-staff policy. A staff member without a row is
// unrestricted until an administrator initializes one.
type LevelGrant struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID primitive.ObjectID `json:"tenant_id,omitempty" bson:"tenant_id,omitempty"`
	StaffID  int64              `json:"staff_id" bson:"staff_id"`

	CustomerName        Level `json:"customerName" bson:"customer_name"`
	CustomerPhone       Level `json:"customerPhone" bson:"customer_phone"`
	CustomerEmail       Level `json:"customerEmail" bson:"customer_email"`
	CustomerDob         Level `json:"customerDob" bson:"customer_dob"`
	CustomerGender      Level `json:"customerGender" bson:"customer_gender"`
	CustomerAddress     Level `json:"customerAddress" bson:"customer_address"`
	CustomerNotes       Level `json:"customerNotes" bson:"customer_notes"`
	CustomerTotalSpent  Level `json:"customerTotalSpent" bson:"customer_total_spent"`
	CustomerTotalPoints Level `json:"customerTotalPoints" bson:"customer_total_points"`
	CustomerTier        Level `json:"customerTier" bson:"customer_tier"`
	CustomerVipStatus   Level `json:"customerVipStatus" bson:"customer_vip_status"`

	AppointmentView   Level `json:"appointmentView" bson:"appointment_view"`
	AppointmentCreate Level `json:"appointmentCreate" bson:"appointment_create"`
	AppointmentUpdate Level `json:"appointmentUpdate" bson:"appointment_update"`
	AppointmentCancel Level `json:"appointmentCancel" bson:"appointment_cancel"`

	InvoiceView   Level `json:"invoiceView" bson:"invoice_view"`
	InvoiceCreate Level `json:"invoiceCreate" bson:"invoice_create"`
	InvoiceUpdate Level `json:"invoiceUpdate" bson:"invoice_update"`

	HistoryView   Level `json:"historyView" bson:"history_view"`
	HistoryExport Level `json:"historyExport" bson:"history_export"`

	UpdatedBy int64     `json:"updated_by" bson:"updated_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

var fields = []struct {
	name string
	bson string
	ref  func(g *LevelGrant) *Level
}{
	{FieldCustomerName, "customer_name", func(g *LevelGrant) *Level { return &g.CustomerName }},
	{FieldCustomerPhone, "customer_phone", func(g *LevelGrant) *Level { return &g.CustomerPhone }},
	{FieldCustomerEmail, "customer_email", func(g *LevelGrant) *Level { return &g.CustomerEmail }},
	{FieldCustomerDob, "customer_dob", func(g *LevelGrant) *Level { return &g.CustomerDob }},
	{FieldCustomerGender, "customer_gender", func(g *LevelGrant) *Level { return &g.CustomerGender }},
	{FieldCustomerAddress, "customer_address", func(g *LevelGrant) *Level { return &g.CustomerAddress }},
	{FieldCustomerNotes, "customer_notes", func(g *LevelGrant) *Level { return &g.CustomerNotes }},
	{FieldCustomerTotalSpent, "customer_total_spent", func(g *LevelGrant) *Level { return &g.CustomerTotalSpent }},
	{FieldCustomerTotalPoints, "customer_total_points", func(g *LevelGrant) *Level { return &g.CustomerTotalPoints }},
	{FieldCustomerTier, "customer_tier", func(g *LevelGrant) *Level { return &g.CustomerTier }},
	{FieldCustomerVipStatus, "customer_vip_status", func(g *LevelGrant) *Level { return &g.CustomerVipStatus }},
	{FieldAppointmentView, "appointment_view", func(g *LevelGrant) *Level { return &g.AppointmentView }},
	{FieldAppointmentCreate, "appointment_create", func(g *LevelGrant) *Level { return &g.AppointmentCreate }},
	{FieldAppointmentUpdate, "appointment_update", func(g *LevelGrant) *Level { return &g.AppointmentUpdate }},
	{FieldAppointmentCancel, "appointment_cancel", func(g *LevelGrant) *Level { return &g.AppointmentCancel }},
	{FieldInvoiceView, "invoice_view", func(g *LevelGrant) *Level { return &g.InvoiceView }},
	{FieldInvoiceCreate, "invoice_create", func(g *LevelGrant) *Level { return &g.InvoiceCreate }},
	{FieldInvoiceUpdate, "invoice_update", func(g *LevelGrant) *Level { return &g.InvoiceUpdate }},
	{FieldHistoryView, "history_view", func(g *LevelGrant) *Level { return &g.HistoryView }},
	{FieldHistoryExport, "history_export", func(g *LevelGrant) *Level { return &g.HistoryExport }},
}

// Fields lists the level field keys in declaration order.
func Fields() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

func bsonName(field string) string {
	for _, f := range fields {
		if f.name == field {
			return f.bson
		}
	}
	return ""
}

func lookup(field string) (func(g *LevelGrant) *Level, bool) {
	for _, f := range fields {
		if f.name == field {
			return f.ref, true
		}
	}
	return nil, false
}

// NewLevelGrant returns a row with every field set to def.
func NewLevelGrant(staffID int64, def Level) *LevelGrant {
	g := &LevelGrant{StaffID: staffID}
	for _, f := range fields {
		*f.ref(g) = def
	}
	return g
}

func (g *LevelGrant) Get(field string) (Level, error) {
	ref, ok := lookup(field)
	if !ok {
		return "", fmt.Errorf("%w: level field %q", apperr.ErrInvalidArgument, field)
	}
	return *ref(g), nil
}

func (g *LevelGrant) Set(field string, l Level) error {
	ref, ok := lookup(field)
	if !ok {
		return fmt.Errorf("%w: level field %q", apperr.ErrInvalidArgument, field)
	}
	*ref(g) = l
	return nil
}

// Levels returns the row as a field-keyed map.
func (g *LevelGrant) Levels() map[string]Level {
	out := make(map[string]Level, len(fields))
	for _, f := range fields {
		out[f.name] = *f.ref(g)
	}
	return out
}

// Hides reports whether field is masked by this row. A nil row hides nothing,
// and neither does a field the row does not know.
func (g *LevelGrant) Hides(field string) bool {
	if g == nil {
		return false
	}
	l, err := g.Get(field)
	if err != nil {
		return false
	}
	return Decide(l) == Hide
}

type InitializeRequest struct {
	Default string `json:"default" validate:"omitempty,access_level"`
}

// UpdateRequest maps level field keys to NO, VIEW or EDIT.
type UpdateRequest struct {
	Levels map[string]string `json:"levels" validate:"required,min=1,dive,keys,required,endkeys,access_level"`
}
