package scope

// Scope identifies one granular permission: a resource or customer field paired with an action.
type Scope string

const (
	CustomerNameRead     Scope = "CUSTOMER_NAME_READ"
	CustomerNameWrite    Scope = "CUSTOMER_NAME_WRITE"
	CustomerPhoneRead    Scope = "CUSTOMER_PHONE_READ"
	CustomerPhoneWrite   Scope = "CUSTOMER_PHONE_WRITE"
	CustomerEmailRead    Scope = "CUSTOMER_EMAIL_READ"
	CustomerEmailWrite   Scope = "CUSTOMER_EMAIL_WRITE"
	CustomerAddressRead  Scope = "CUSTOMER_ADDRESS_READ"
	CustomerAddressWrite Scope = "CUSTOMER_ADDRESS_WRITE"
	CustomerDobRead      Scope = "CUSTOMER_DOB_READ"
	CustomerDobWrite     Scope = "CUSTOMER_DOB_WRITE"
	CustomerGenderRead   Scope = "CUSTOMER_GENDER_READ"
	CustomerGenderWrite  Scope = "CUSTOMER_GENDER_WRITE"
	CustomerNotesRead    Scope = "CUSTOMER_NOTES_READ"
	CustomerNotesWrite   Scope = "CUSTOMER_NOTES_WRITE"

	// CustomerFinancialRead covers total spent, total points and tier.
	CustomerFinancialRead Scope = "CUSTOMER_FINANCIAL_READ"
	CustomerVipRead       Scope = "CUSTOMER_VIP_READ"
	CustomerVipWrite      Scope = "CUSTOMER_VIP_WRITE"

	AppointmentView   Scope = "APPOINTMENT_VIEW"
	AppointmentCreate Scope = "APPOINTMENT_CREATE"
	AppointmentUpdate Scope = "APPOINTMENT_UPDATE"
	AppointmentCancel Scope = "APPOINTMENT_CANCEL"

	InvoiceView   Scope = "INVOICE_VIEW"
	InvoiceCreate Scope = "INVOICE_CREATE"
	InvoiceUpdate Scope = "INVOICE_UPDATE"

	HistoryView   Scope = "HISTORY_VIEW"
	HistoryExport Scope = "HISTORY_EXPORT"

	CustomerDelete Scope = "CUSTOMER_DELETE"
)

// Action is the category a scope belongs to.
type Action string

const (
	ActionRead   Action = "READ"
	ActionWrite  Action = "WRITE"
	ActionView   Action = "VIEW"
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionCancel Action = "CANCEL"
	ActionExport Action = "EXPORT"
	ActionDelete Action = "DELETE"
)

// Definition is one row of the catalog.
type Definition struct {
	Scope       Scope  `json:"scope"`
	Resource    string `json:"resource"`
	Action      Action `json:"action"`
	Description string `json:"description"`
}
