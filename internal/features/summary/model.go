package summary

type Level string

const (
	LevelNone     Level = "NONE"
	LevelBasic    Level = "BASIC"
	LevelExtended Level = "EXTENDED"
	LevelFull     Level = "FULL"
	LevelAdmin    Level = "ADMIN"
)

// Capabilities are the boolean flags a summary is scored from.
type Capabilities struct {
	CanReadName     bool `json:"canReadName"`
	CanWriteName    bool `json:"canWriteName"`
	CanReadPhone    bool `json:"canReadPhone"`
	CanWritePhone   bool `json:"canWritePhone"`
	CanReadEmail    bool `json:"canReadEmail"`
	CanWriteEmail   bool `json:"canWriteEmail"`
	CanReadAddress  bool `json:"canReadAddress"`
	CanWriteAddress bool `json:"canWriteAddress"`
	CanReadDob      bool `json:"canReadDob"`
	CanWriteDob     bool `json:"canWriteDob"`
	CanReadNotes    bool `json:"canReadNotes"`
	CanWriteNotes   bool `json:"canWriteNotes"`

	CanReadTotalSpent  bool `json:"canReadTotalSpent"`
	CanReadTotalPoints bool `json:"canReadTotalPoints"`

	CanViewAppointments   bool `json:"canViewAppointments"`
	CanCreateAppointments bool `json:"canCreateAppointments"`
	CanUpdateAppointments bool `json:"canUpdateAppointments"`
	CanCancelAppointments bool `json:"canCancelAppointments"`

	CanViewInvoices   bool `json:"canViewInvoices"`
	CanCreateInvoices bool `json:"canCreateInvoices"`
	CanUpdateInvoices bool `json:"canUpdateInvoices"`

	CanViewHistory    bool `json:"canViewHistory"`
	CanExportHistory  bool `json:"canExportHistory"`
	CanDeleteCustomer bool `json:"canDeleteCustomer"`
}

func (c Capabilities) anyWrite() bool {
	return c.CanWriteName || c.CanWritePhone || c.CanWriteEmail ||
		c.CanWriteAddress || c.CanWriteDob || c.CanWriteNotes
}

// PermissionSummary is recomputed on every request and never stored.
type PermissionSummary struct {
	StaffID      int64  `json:"staffId"`
	StaffName    string `json:"staffName"`
	CustomerID   *int64 `json:"customerId"`
	CustomerName string `json:"customerName,omitempty"`

	Capabilities

	ReadableFields []string `json:"readableFields"`
	WritableFields []string `json:"writableFields"`
	ReadableCount  int      `json:"readableCount"`
	WritableCount  int      `json:"writableCount"`

	Score           int   `json:"score"`
	PermissionLevel Level `json:"permissionLevel"`
}
