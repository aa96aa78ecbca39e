// Package web serves the platform's screens locally. Every page follows the
// same shape: fetch on GET, render, and answer mutations with a redirect back
// to the GET so the next render reflects server truth.
package web

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sccp/api"
	"sccp/realtime"
	"sccp/session"
)

// PlatformClient is everything the pages call on the platform API.
// *api.Client satisfies it; tests substitute a fake.
type PlatformClient interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, email, password string) (string, error)
	MyProfile(ctx context.Context) (api.UserProfile, error)
	ChangePassword(ctx context.Context, current, next string) error

	RFQs(ctx context.Context, filters api.RFQFilters) ([]api.RFQ, error)
	RFQ(ctx context.Context, id int) (api.RFQ, error)
	RFQAttachments(ctx context.Context, id int) ([]api.Attachment, error)
	CreateRFQ(ctx context.Context, params api.CreateRFQParams) error
	ChatHistory(ctx context.Context, rfqID int) ([]api.ChatMessage, error)

	QuotesForRFQ(ctx context.Context, rfqID int) ([]api.Quote, error)
	CreateQuote(ctx context.Context, rfqID int, params api.CreateQuoteParams) error
	AcceptQuote(ctx context.Context, quoteID int) error

	Orders(ctx context.Context) ([]api.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
	CreateCheckoutSession(ctx context.Context, orderID int) (api.CheckoutSession, error)

	Company(ctx context.Context, id int) (api.Company, error)
	UpdateCompanyDescription(ctx context.Context, id int, description string) error
	Capabilities(ctx context.Context) ([]api.Capability, error)
	CompanyCapabilities(ctx context.Context, companyID int) ([]api.Capability, error)
	AddCapability(ctx context.Context, capabilityID int) error
	RemoveCapability(ctx context.Context, capabilityID int) error

	AdminCompanies(ctx context.Context) ([]api.Company, error)
	VerifyCompany(ctx context.Context, id int) error
	AdminUsers(ctx context.Context) ([]api.UserProfile, error)
	UpdateUserStatus(ctx context.Context, userID int, active bool) error

	BuyerStats(ctx context.Context) (api.BuyerStats, error)
	SupplierStats(ctx context.Context) (api.SupplierStats, error)
	SpendingBySupplier(ctx context.Context) ([]api.SpendingBySupplier, error)
}

// Realtime is the channel consumer surface the pages use. *realtime.Channel
// satisfies it.
type Realtime interface {
	Start(ctx context.Context)
	Stop()
	State() realtime.ReadyState
	JoinRoom(rfqID int)
	LeaveRoom(rfqID int)
	SendChat(rfqID int, text string)
	LiveMessages(rfqID int) []realtime.LiveMessage
	Notifications() []api.Notification
	UnreadCount() int
	MarkOneRead(id int)
	MarkAllRead()
}

// Server renders the UI and translates form posts into API calls.
type Server struct {
	sessions    *session.Store
	platform    PlatformClient
	channel     Realtime
	checkoutURL string
	logf        func(format string, args ...any)
}

// NewServer wires the page handlers. checkoutURLTemplate must contain one %s
// verb for the checkout session id.
func NewServer(sessions *session.Store, platform PlatformClient, channel Realtime, checkoutURLTemplate string) *Server {
	return &Server{
		sessions:    sessions,
		platform:    platform,
		channel:     channel,
		checkoutURL: checkoutURLTemplate,
		logf:        log.Printf,
	}
}

// Router builds the route table. Authenticated screens sit behind the session
// guard, the admin screen additionally behind the admin guard.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterPage)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/dashboard", s.handleDashboard)
		r.Post("/rfqs", s.handleCreateRFQ)
		r.Get("/rfqs/{rfqID}", s.handleRFQDetail)
		r.Post("/rfqs/{rfqID}/quotes", s.handleCreateQuote)
		r.Post("/quotes/{quoteID}/accept", s.handleAcceptQuote)
		r.Get("/rfqs/{rfqID}/chat/messages", s.handleChatMessages)
		r.Post("/rfqs/{rfqID}/chat", s.handleSendChat)
		r.Post("/rfqs/{rfqID}/chat/leave", s.handleLeaveChat)

		r.Get("/orders", s.handleOrders)
		r.Post("/orders/{orderID}/status", s.handleOrderStatus)
		r.Post("/orders/{orderID}/pay", s.handlePayOrder)
		r.Get("/payment/success", s.handlePaymentSuccess)
		r.Get("/payment/failed", s.handlePaymentFailed)

		r.Get("/profile", s.handleMyProfile)
		r.Post("/profile/password", s.handleChangePassword)
		r.Get("/companies/{companyID}", s.handleCompanyProfile)
		r.Post("/companies/{companyID}/description", s.handleUpdateDescription)
		r.Post("/companies/{companyID}/capabilities", s.handleUpdateCapabilities)

		r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
		r.Post("/notifications/read-all", s.handleMarkAllNotificationsRead)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Get("/admin", s.handleAdmin)
		r.Post("/admin/companies/{companyID}/verify", s.handleVerifyCompany)
		r.Post("/admin/users/{userID}/status", s.handleUserStatus)
	})

	return r
}
