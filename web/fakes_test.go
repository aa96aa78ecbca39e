package web

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sccp/api"
	"sccp/realtime"
	"sccp/session"
)

// fakePlatform satisfies PlatformClient. Each method delegates to its function
// field when set and otherwise returns zero values, so a test only wires the
// calls it cares about. Mutation calls are recorded for exact-count asserts.
type fakePlatform struct {
	registerFn func(api.RegisterRequest) error
	loginFn    func(email, password string) (string, error)
	profileFn  func() (api.UserProfile, error)

	rfqsFn        func(api.RFQFilters) ([]api.RFQ, error)
	rfqFn         func(id int) (api.RFQ, error)
	attachmentsFn func(id int) ([]api.Attachment, error)
	historyFn     func(rfqID int) ([]api.ChatMessage, error)
	quotesFn      func(rfqID int) ([]api.Quote, error)

	ordersFn   func() ([]api.Order, error)
	checkoutFn func(orderID int) (api.CheckoutSession, error)

	companyFn      func(id int) (api.Company, error)
	catalogueFn    func() ([]api.Capability, error)
	capabilitiesFn func(companyID int) ([]api.Capability, error)

	adminCompaniesFn func() ([]api.Company, error)
	adminUsersFn     func() ([]api.UserProfile, error)

	buyerStatsFn    func() (api.BuyerStats, error)
	supplierStatsFn func() (api.SupplierStats, error)
	spendingFn      func() ([]api.SpendingBySupplier, error)

	createRFQCalls       []api.CreateRFQParams
	createQuoteCalls     []createQuoteCall
	acceptQuoteCalls     []int
	acceptQuoteErr       error
	orderStatusCalls     []orderStatusCall
	orderStatusErr       error
	passwordCalls        []passwordCall
	passwordErr          error
	descriptionCalls     []descriptionCall
	addCapabilityCalls   []int
	dropCapabilityCalls  []int
	verifyCompanyCalls   []int
	userStatusCalls      []userStatusCall
	markReadCalls        []int
	markAllReadCallCount int
}

type createQuoteCall struct {
	rfqID  int
	params api.CreateQuoteParams
}

type orderStatusCall struct {
	orderID int
	status  string
}

type passwordCall struct {
	current, next string
}

type descriptionCall struct {
	companyID   int
	description string
}

type userStatusCall struct {
	userID int
	active bool
}

func (f *fakePlatform) Register(ctx context.Context, req api.RegisterRequest) error {
	if f.registerFn != nil {
		return f.registerFn(req)
	}
	return nil
}

func (f *fakePlatform) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginFn != nil {
		return f.loginFn(email, password)
	}
	return "", nil
}

func (f *fakePlatform) MyProfile(ctx context.Context) (api.UserProfile, error) {
	if f.profileFn != nil {
		return f.profileFn()
	}
	return api.UserProfile{}, nil
}

func (f *fakePlatform) ChangePassword(ctx context.Context, current, next string) error {
	f.passwordCalls = append(f.passwordCalls, passwordCall{current, next})
	return f.passwordErr
}

func (f *fakePlatform) RFQs(ctx context.Context, filters api.RFQFilters) ([]api.RFQ, error) {
	if f.rfqsFn != nil {
		return f.rfqsFn(filters)
	}
	return nil, nil
}

func (f *fakePlatform) RFQ(ctx context.Context, id int) (api.RFQ, error) {
	if f.rfqFn != nil {
		return f.rfqFn(id)
	}
	return api.RFQ{}, nil
}

func (f *fakePlatform) RFQAttachments(ctx context.Context, id int) ([]api.Attachment, error) {
	if f.attachmentsFn != nil {
		return f.attachmentsFn(id)
	}
	return nil, nil
}

func (f *fakePlatform) CreateRFQ(ctx context.Context, params api.CreateRFQParams) error {
	f.createRFQCalls = append(f.createRFQCalls, params)
	return nil
}

func (f *fakePlatform) ChatHistory(ctx context.Context, rfqID int) ([]api.ChatMessage, error) {
	if f.historyFn != nil {
		return f.historyFn(rfqID)
	}
	return nil, nil
}

func (f *fakePlatform) QuotesForRFQ(ctx context.Context, rfqID int) ([]api.Quote, error) {
	if f.quotesFn != nil {
		return f.quotesFn(rfqID)
	}
	return nil, nil
}

func (f *fakePlatform) CreateQuote(ctx context.Context, rfqID int, params api.CreateQuoteParams) error {
	f.createQuoteCalls = append(f.createQuoteCalls, createQuoteCall{rfqID, params})
	return nil
}

func (f *fakePlatform) AcceptQuote(ctx context.Context, quoteID int) error {
	f.acceptQuoteCalls = append(f.acceptQuoteCalls, quoteID)
	return f.acceptQuoteErr
}

func (f *fakePlatform) Orders(ctx context.Context) ([]api.Order, error) {
	if f.ordersFn != nil {
		return f.ordersFn()
	}
	return nil, nil
}

func (f *fakePlatform) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	f.orderStatusCalls = append(f.orderStatusCalls, orderStatusCall{orderID, status})
	return f.orderStatusErr
}

func (f *fakePlatform) CreateCheckoutSession(ctx context.Context, orderID int) (api.CheckoutSession, error) {
	if f.checkoutFn != nil {
		return f.checkoutFn(orderID)
	}
	return api.CheckoutSession{}, nil
}

func (f *fakePlatform) Company(ctx context.Context, id int) (api.Company, error) {
	if f.companyFn != nil {
		return f.companyFn(id)
	}
	return api.Company{}, nil
}

func (f *fakePlatform) UpdateCompanyDescription(ctx context.Context, id int, description string) error {
	f.descriptionCalls = append(f.descriptionCalls, descriptionCall{id, description})
	return nil
}

func (f *fakePlatform) Capabilities(ctx context.Context) ([]api.Capability, error) {
	if f.catalogueFn != nil {
		return f.catalogueFn()
	}
	return nil, nil
}

func (f *fakePlatform) CompanyCapabilities(ctx context.Context, companyID int) ([]api.Capability, error) {
	if f.capabilitiesFn != nil {
		return f.capabilitiesFn(companyID)
	}
	return nil, nil
}

func (f *fakePlatform) AddCapability(ctx context.Context, capabilityID int) error {
	f.addCapabilityCalls = append(f.addCapabilityCalls, capabilityID)
	return nil
}

func (f *fakePlatform) RemoveCapability(ctx context.Context, capabilityID int) error {
	f.dropCapabilityCalls = append(f.dropCapabilityCalls, capabilityID)
	return nil
}

func (f *fakePlatform) AdminCompanies(ctx context.Context) ([]api.Company, error) {
	if f.adminCompaniesFn != nil {
		return f.adminCompaniesFn()
	}
	return nil, nil
}

func (f *fakePlatform) VerifyCompany(ctx context.Context, id int) error {
	f.verifyCompanyCalls = append(f.verifyCompanyCalls, id)
	return nil
}

func (f *fakePlatform) AdminUsers(ctx context.Context) ([]api.UserProfile, error) {
	if f.adminUsersFn != nil {
		return f.adminUsersFn()
	}
	return nil, nil
}

func (f *fakePlatform) UpdateUserStatus(ctx context.Context, userID int, active bool) error {
	f.userStatusCalls = append(f.userStatusCalls, userStatusCall{userID, active})
	return nil
}

func (f *fakePlatform) BuyerStats(ctx context.Context) (api.BuyerStats, error) {
	if f.buyerStatsFn != nil {
		return f.buyerStatsFn()
	}
	return api.BuyerStats{}, nil
}

func (f *fakePlatform) SupplierStats(ctx context.Context) (api.SupplierStats, error) {
	if f.supplierStatsFn != nil {
		return f.supplierStatsFn()
	}
	return api.SupplierStats{}, nil
}

func (f *fakePlatform) SpendingBySupplier(ctx context.Context) ([]api.SpendingBySupplier, error) {
	if f.spendingFn != nil {
		return f.spendingFn()
	}
	return nil, nil
}

// fakeRealtime satisfies Realtime with canned state and call recording.
type fakeRealtime struct {
	state         realtime.ReadyState
	live          map[int][]realtime.LiveMessage
	notifications []api.Notification

	started, stopped int
	joined, left     []int
	chats            []chatCall
	markedOne        []int
	markedAll        int
}

type chatCall struct {
	rfqID int
	text  string
}

func (f *fakeRealtime) Start(ctx context.Context)  { f.started++ }
func (f *fakeRealtime) Stop()                      { f.stopped++ }
func (f *fakeRealtime) State() realtime.ReadyState { return f.state }
func (f *fakeRealtime) JoinRoom(rfqID int)         { f.joined = append(f.joined, rfqID) }
func (f *fakeRealtime) LeaveRoom(rfqID int)        { f.left = append(f.left, rfqID) }

func (f *fakeRealtime) SendChat(rfqID int, text string) {
	f.chats = append(f.chats, chatCall{rfqID, text})
}

func (f *fakeRealtime) LiveMessages(rfqID int) []realtime.LiveMessage { return f.live[rfqID] }
func (f *fakeRealtime) Notifications() []api.Notification             { return f.notifications }
func (f *fakeRealtime) UnreadCount() int {
	count := 0
	for _, n := range f.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}
func (f *fakeRealtime) MarkOneRead(id int) { f.markedOne = append(f.markedOne, id) }
func (f *fakeRealtime) MarkAllRead()       { f.markedAll++ }

type memoryStorage struct {
	token string
}

func (m *memoryStorage) Load() (string, error)   { return m.token, nil }
func (m *memoryStorage) Save(token string) error { m.token = token; return nil }
func (m *memoryStorage) Clear() error            { m.token = ""; return nil }

func mintToken(t *testing.T, companyType string, admin bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          float64(7),
		"full_name":    "Dana Weber",
		"company_id":   float64(10),
		"company_type": companyType,
		"is_admin":     admin,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

// loggedInStore builds a session store that has already adopted a token for
// the given role.
func loggedInStore(t *testing.T, companyType string, admin bool) *session.Store {
	t.Helper()
	store := session.NewStore(&memoryStorage{token: mintToken(t, companyType, admin)})
	if err := store.Initialize(); err != nil {
		t.Fatalf("initialize store: %v", err)
	}
	if store.Current() == nil {
		t.Fatal("store did not adopt the minted token")
	}
	return store
}

func emptyStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(&memoryStorage{})
	if err := store.Initialize(); err != nil {
		t.Fatalf("initialize store: %v", err)
	}
	return store
}

func newTestServer(store *session.Store, platform *fakePlatform, channel *fakeRealtime) *Server {
	s := NewServer(store, platform, channel, "https://pay.example/c/%s")
	s.logf = func(format string, args ...any) {}
	return s
}
