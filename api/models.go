package api

import "time"

// RFQ statuses as reported by the backend. Other terminal states may appear;
// the client only branches on these two.
const (
	RFQStatusOpen    = "OPEN"
	RFQStatusAwarded = "AWARDED"
)

// Quote statuses.
const (
	QuoteStatusSubmitted = "SUBMITTED"
	QuoteStatusAccepted  = "ACCEPTED"
)

// Order statuses follow the production flow on the supplier side.
const (
	OrderStatusPendingConfirmation = "PENDING_CONFIRMATION"
	OrderStatusInProduction        = "IN_PRODUCTION"
	OrderStatusShipped             = "SHIPPED"
	OrderStatusCompleted           = "COMPLETED"
)

// Payment statuses.
const (
	PaymentStatusUnpaid = "UNPAID"
	PaymentStatusPaid   = "PAID"
	PaymentStatusFailed = "FAILED"
)

// RFQ is a buyer-posted request for quotation. buyer_company_name and city
// come from a join on the backend side and may be empty.
type RFQ struct {
	ID               int       `json:"id"`
	BuyerCompanyID   int       `json:"buyer_company_id"`
	BuyerCompanyName string    `json:"buyer_company_name"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	City             string    `json:"city"`
	CreatedAt        time.Time `json:"created_at"`
}

// Attachment is a file uploaded alongside an RFQ.
type Attachment struct {
	ID               int    `json:"id"`
	RFQID            int    `json:"rfq_id"`
	OriginalFilename string `json:"original_filename"`
	StoredPath       string `json:"stored_path"`
}

// Quote is a supplier's priced response to an RFQ. Price is a decimal
// serialized as a string by the backend and is never computed on locally.
type Quote struct {
	ID                  int       `json:"id"`
	RFQID               int       `json:"rfq_id"`
	SupplierCompanyID   int       `json:"supplier_company_id"`
	SupplierCompanyName string    `json:"supplier_company_name"`
	Price               string    `json:"price"`
	LeadTimeDays        int       `json:"lead_time_days"`
	Notes               string    `json:"notes"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// Order is the purchase record created when a buyer accepts a quote.
type Order struct {
	ID                int       `json:"id"`
	RFQID             int       `json:"rfq_id"`
	RFQTitle          string    `json:"rfq_title"`
	BuyerCompanyID    int       `json:"buyer_company_id"`
	BuyerName         string    `json:"buyer_name"`
	SupplierCompanyID int       `json:"supplier_company_id"`
	SupplierName      string    `json:"supplier_name"`
	TotalAmount       string    `json:"total_amount"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	CreatedAt         time.Time `json:"created_at"`
}

// ChatMessage is a fully attributed historical chat record. Live messages
// pushed over the realtime channel carry only a pre-formatted text line and
// never take this shape.
type ChatMessage struct {
	ID           int       `json:"id"`
	RFQID        int       `json:"rfq_id"`
	UserID       int       `json:"user_id"`
	UserFullName string    `json:"user_full_name"`
	CompanyName  string    `json:"company_name"`
	MessageText  string    `json:"message_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Notification is a feed entry addressed to the current user.
type Notification struct {
	ID              int       `json:"id"`
	RecipientUserID int       `json:"recipient_user_id"`
	Message         string    `json:"message"`
	LinkURL         string    `json:"link_url"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}

// Company is a public company profile.
type Company struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	CompanyType string    `json:"company_type"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	IsVerified  bool      `json:"is_verified"`
}

// Capability is a production capability from the platform catalogue.
type Capability struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UserProfile is the admin-facing and self-facing user record.
type UserProfile struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	CompanyID   int    `json:"company_id"`
	CompanyName string `json:"company_name"`
	IsActive    bool   `json:"is_active"`
}

// BuyerStats aggregates the buyer dashboard numbers.
type BuyerStats struct {
	TotalOrders       int64  `json:"total_orders"`
	TotalSpent        string `json:"total_spent"`
	DistinctSuppliers int64  `json:"distinct_suppliers"`
}

// SupplierStats aggregates the supplier dashboard numbers.
type SupplierStats struct {
	TotalQuotesSubmitted int64  `json:"total_quotes_submitted"`
	AcceptedQuotes       int64  `json:"accepted_quotes"`
	TotalRevenue         string `json:"total_revenue"`
}

// SpendingBySupplier is one row of the buyer's per-supplier spend breakdown.
type SpendingBySupplier struct {
	SupplierName string `json:"supplier_name"`
	Total        string `json:"total"`
}

// CheckoutSession is returned when initiating a payment; the client only
// forwards the id into the hosted checkout redirect.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
}
