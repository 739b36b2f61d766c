package summary

import (
	"context"

	"staff-acl/internal/features/directory"
	"staff-acl/internal/features/permission"
	"staff-acl/internal/features/scope"

	"go.uber.org/zap"
)

type Summarizer interface {
	Summarize(ctx context.Context, staffID int64, customerID *int64) (*PermissionSummary, error)
}

type SummarizerImpl struct {
	Grants      permission.Evaluator
	StaffDir    directory.StaffDirectory
	CustomerDir directory.CustomerDirectory
	Logger      *zap.Logger
}

func NewSummarizer(grants permission.GrantService, staffDir directory.StaffDirectory, customerDir directory.CustomerDirectory, logger *zap.Logger) Summarizer {
	return &SummarizerImpl{
		Grants:      grants,
		StaffDir:    staffDir,
		CustomerDir: customerDir,
		Logger:      logger,
	}
}

// capabilityScopes binds each flag to the scope that sets it.
var capabilityScopes = []struct {
	scope scope.Scope
	flag  func(c *Capabilities) *bool
}{
	{scope.CustomerNameRead, func(c *Capabilities) *bool { return &c.CanReadName }},
	{scope.CustomerNameWrite, func(c *Capabilities) *bool { return &c.CanWriteName }},
	{scope.CustomerPhoneRead, func(c *Capabilities) *bool { return &c.CanReadPhone }},
	{scope.CustomerPhoneWrite, func(c *Capabilities) *bool { return &c.CanWritePhone }},
	{scope.CustomerEmailRead, func(c *Capabilities) *bool { return &c.CanReadEmail }},
	{scope.CustomerEmailWrite, func(c *Capabilities) *bool { return &c.CanWriteEmail }},
	{scope.CustomerAddressRead, func(c *Capabilities) *bool { return &c.CanReadAddress }},
	{scope.CustomerAddressWrite, func(c *Capabilities) *bool { return &c.CanWriteAddress }},
	{scope.CustomerDobRead, func(c *Capabilities) *bool { return &c.CanReadDob }},
	{scope.CustomerDobWrite, func(c *Capabilities) *bool { return &c.CanWriteDob }},
	{scope.CustomerNotesRead, func(c *Capabilities) *bool { return &c.CanReadNotes }},
	{scope.CustomerNotesWrite, func(c *Capabilities) *bool { return &c.CanWriteNotes }},
	{scope.CustomerFinancialRead, func(c *Capabilities) *bool { return &c.CanReadTotalSpent }},
	{scope.CustomerFinancialRead, func(c *Capabilities) *bool { return &c.CanReadTotalPoints }},
	{scope.AppointmentView, func(c *Capabilities) *bool { return &c.CanViewAppointments }},
	{scope.AppointmentCreate, func(c *Capabilities) *bool { return &c.CanCreateAppointments }},
	{scope.AppointmentUpdate, func(c *Capabilities) *bool { return &c.CanUpdateAppointments }},
	{scope.AppointmentCancel, func(c *Capabilities) *bool { return &c.CanCancelAppointments }},
	{scope.InvoiceView, func(c *Capabilities) *bool { return &c.CanViewInvoices }},
	{scope.InvoiceCreate, func(c *Capabilities) *bool { return &c.CanCreateInvoices }},
	{scope.InvoiceUpdate, func(c *Capabilities) *bool { return &c.CanUpdateInvoices }},
	{scope.HistoryView, func(c *Capabilities) *bool { return &c.CanViewHistory }},
	{scope.HistoryExport, func(c *Capabilities) *bool { return &c.CanExportHistory }},
	{scope.CustomerDelete, func(c *Capabilities) *bool { return &c.CanDeleteCustomer }},
}

// CapabilitiesFromScopes sets every flag whose scope is in granted.
func CapabilitiesFromScopes(granted []scope.Scope) Capabilities {
	set := make(map[scope.Scope]bool, len(granted))
	for _, s := range granted {
		set[s] = true
	}

	var c Capabilities
	for _, cs := range capabilityScopes {
		if set[cs.scope] {
			*cs.flag(&c) = true
		}
	}
	return c
}

// Summarize resolves the staff member's valid grants applying to customerID
// once and derives every flag from that set.
func (s *SummarizerImpl) Summarize(ctx context.Context, staffID int64, customerID *int64) (*PermissionSummary, error) {
	staff, err := s.StaffDir.FindStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	result := &PermissionSummary{
		StaffID:        staffID,
		StaffName:      staff.FullName,
		CustomerID:     customerID,
		ReadableFields: []string{},
		WritableFields: []string{},
	}
	if customerID != nil {
		customer, err := s.CustomerDir.FindCustomer(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		result.CustomerName = customer.FullName
	}

	granted, err := s.Grants.GrantedScopes(ctx, staffID, customerID)
	if err != nil {
		return nil, err
	}

	result.Capabilities = CapabilitiesFromScopes(granted)
	for _, sc := range granted {
		switch {
		case sc.IsReadable():
			result.ReadableFields = append(result.ReadableFields, sc.String())
		case sc.IsWritable():
			result.WritableFields = append(result.WritableFields, sc.String())
		}
	}
	result.ReadableCount = len(result.ReadableFields)
	result.WritableCount = len(result.WritableFields)
	result.Score = Score(result.Capabilities)
	result.PermissionLevel = LabelForScore(result.Score)

	s.Logger.Debug("permission summary computed",
		zap.Int64("staffId", staffID),
		zap.Int("score", result.Score),
		zap.String("level", string(result.PermissionLevel)),
	)
	return result, nil
}
