package policy

import (
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/scope"
)

// Posture is what a backend answers when nothing has been configured.
type Posture string

const (
	DefaultDeny  Posture = "default-deny"
	DefaultAllow Posture = "default-allow"
)

type Model string

const (
	ModelScoped Model = "scoped"
	ModelLevel  Model = "level"
)

type EvaluateRequest struct {
	StaffID    int64  `json:"staff_id" query:"staff_id" validate:"required,gt=0"`
	Scope      string `json:"scope,omitempty" query:"scope" validate:"required_without=Field"`
	Field      string `json:"field,omitempty" query:"field" validate:"required_without=Scope"`
	CustomerID *int64 `json:"customer_id,omitempty" query:"customer_id" validate:"omitempty,gt=0"`
	Model      Model  `json:"model,omitempty" query:"model" validate:"omitempty,oneof=scoped level"`
}

type EvaluateResult struct {
	StaffID    int64   `json:"staff_id"`
	CustomerID *int64  `json:"customer_id"`
	Scope      string  `json:"scope,omitempty"`
	Field      string  `json:"field,omitempty"`
	Model      Model   `json:"model"`
	Posture    Posture `json:"posture"`
	Allowed    bool    `json:"allowed"`
}

// levelFields maps scoped-model field names onto level keys. The level model
// has no write distinction, so only reads are mapped.
var levelFields = map[string]string{
	"name":        level.FieldCustomerName,
	"phone":       level.FieldCustomerPhone,
	"email":       level.FieldCustomerEmail,
	"address":     level.FieldCustomerAddress,
	"dob":         level.FieldCustomerDob,
	"gender":      level.FieldCustomerGender,
	"notes":       level.FieldCustomerNotes,
	"totalSpent":  level.FieldCustomerTotalSpent,
	"totalPoints": level.FieldCustomerTotalPoints,
	"tier":        level.FieldCustomerTier,
	"vipStatus":   level.FieldCustomerVipStatus,
}

// levelScopes maps the scopes the level model can express onto level keys.
// Financial read is represented by total spent.
var levelScopes = map[scope.Scope]string{
	scope.CustomerNameRead:      level.FieldCustomerName,
	scope.CustomerPhoneRead:     level.FieldCustomerPhone,
	scope.CustomerEmailRead:     level.FieldCustomerEmail,
	scope.CustomerAddressRead:   level.FieldCustomerAddress,
	scope.CustomerDobRead:       level.FieldCustomerDob,
	scope.CustomerGenderRead:    level.FieldCustomerGender,
	scope.CustomerNotesRead:     level.FieldCustomerNotes,
	scope.CustomerFinancialRead: level.FieldCustomerTotalSpent,
	scope.CustomerVipRead:       level.FieldCustomerVipStatus,
	scope.AppointmentView:       level.FieldAppointmentView,
	scope.AppointmentCreate:     level.FieldAppointmentCreate,
	scope.AppointmentUpdate:     level.FieldAppointmentUpdate,
	scope.AppointmentCancel:     level.FieldAppointmentCancel,
	scope.InvoiceView:           level.FieldInvoiceView,
	scope.InvoiceCreate:         level.FieldInvoiceCreate,
	scope.InvoiceUpdate:         level.FieldInvoiceUpdate,
	scope.HistoryView:           level.FieldHistoryView,
	scope.HistoryExport:         level.FieldHistoryExport,
}
