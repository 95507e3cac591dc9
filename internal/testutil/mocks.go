package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/domain/user"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*user.User),
		NextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if token != "" && u.VerificationToken == token {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Users[id]; !ok {
		return errors.NotFound("User")
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var users []*user.User
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, int64(len(users)), nil
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mu       sync.Mutex
	ByUser   map[int64]*subscription.Subscription
	NextID   int64
	GetError error
	Writes   int
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		ByUser: make(map[int64]*subscription.Subscription),
		NextID: 1,
	}
}

func (m *MockSubscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	sub, ok := m.ByUser[userID]
	if !ok {
		return nil, errors.NotFound("Subscription")
	}
	cp := *sub
	return &cp, nil
}

func (m *MockSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, id string) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if sub := m.findByStripe(id); sub != nil {
		cp := *sub
		return &cp, nil
	}
	return nil, errors.NotFound("Subscription")
}

func (m *MockSubscriptionRepository) findByStripe(id string) *subscription.Subscription {
	for _, sub := range m.ByUser {
		if sub.StripeSubscriptionID != nil && *sub.StripeSubscriptionID == id {
			return sub
		}
	}
	return nil
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ByUser[sub.UserID]; ok {
		return errors.Conflict("Subscription already exists for this account")
	}
	sub.ID = m.NextID
	m.NextID++
	sub.CreatedAt = time.Now().UTC()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	m.ByUser[sub.UserID] = &cp
	m.Writes++
	return nil
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.ByUser[sub.UserID]; ok {
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
	} else {
		sub.ID = m.NextID
		m.NextID++
		sub.CreatedAt = time.Now().UTC()
	}
	sub.UpdatedAt = time.Now().UTC()
	cp := *sub
	m.ByUser[sub.UserID] = &cp
	m.Writes++
	return nil
}

func (m *MockSubscriptionRepository) UpdateFromProvider(ctx context.Context, id string, status subscription.Status, planID string, start, end *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := m.findByStripe(id)
	if sub == nil || sub.Status == subscription.StatusCanceled {
		return errors.NotFound("Subscription")
	}
	sub.Status = status
	if planID != "" {
		sub.PlanID = planID
	}
	if start != nil {
		sub.CurrentPeriodStart = start
	}
	if end != nil {
		sub.CurrentPeriodEnd = end
	}
	sub.UpdatedAt = time.Now().UTC()
	m.Writes++
	return nil
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id string, status subscription.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := m.findByStripe(id)
	if sub == nil {
		return errors.NotFound("Subscription")
	}
	sub.Status = status
	sub.UpdatedAt = time.Now().UTC()
	m.Writes++
	return nil
}

// Put stores a subscription directly
func (m *MockSubscriptionRepository) Put(sub *subscription.Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	m.ByUser[sub.UserID] = &cp
}

// MockUsageCounter is a mock implementation of entitlement.UsageCounter.
// Calls counts every read so tests can assert the store was not consulted.
type MockUsageCounter struct {
	mu          sync.Mutex
	Interviews  map[int64][]time.Time
	TeamMembers map[int64]int
	Candidates  map[int64]int
	Jobs        map[int64]int
	Err         error
	Calls       int
}

func NewMockUsageCounter() *MockUsageCounter {
	return &MockUsageCounter{
		Interviews:  make(map[int64][]time.Time),
		TeamMembers: make(map[int64]int),
		Candidates:  make(map[int64]int),
		Jobs:        make(map[int64]int),
	}
}

// AddInterviews records n interviews created at t
func (m *MockUsageCounter) AddInterviews(tenantID int64, t time.Time, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.Interviews[tenantID] = append(m.Interviews[tenantID], t)
	}
}

func (m *MockUsageCounter) CountInterviewsBetween(ctx context.Context, tenantID int64, from, to time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	n := 0
	for _, t := range m.Interviews[tenantID] {
		if !t.Before(from) && t.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *MockUsageCounter) CountActiveTeamMembers(ctx context.Context, tenantID int64) (int, error) {
	return m.read(m.TeamMembers, tenantID)
}

func (m *MockUsageCounter) CountCandidates(ctx context.Context, tenantID int64) (int, error) {
	return m.read(m.Candidates, tenantID)
}

func (m *MockUsageCounter) CountJobs(ctx context.Context, tenantID int64) (int, error) {
	return m.read(m.Jobs, tenantID)
}

func (m *MockUsageCounter) read(src map[int64]int, tenantID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	return src[tenantID], nil
}

// MockGateway is a mock implementation of subscription.Gateway
type MockGateway struct {
	mu            sync.Mutex
	Subscriptions map[string]*subscription.ProviderSubscription
	Checkouts     []subscription.CheckoutRequest
	GetError      error
	CheckoutError error
	// Delay makes GetSubscription block until the context is done when
	// it exceeds the caller's deadline.
	Delay time.Duration
}

func NewMockGateway() *MockGateway {
	return &MockGateway{Subscriptions: make(map[string]*subscription.ProviderSubscription)}
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckoutError != nil {
		return nil, m.CheckoutError
	}
	m.Checkouts = append(m.Checkouts, req)
	return &subscription.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example.com/cs_test_1"}, nil
}

func (m *MockGateway) GetSubscription(ctx context.Context, id string) (*subscription.ProviderSubscription, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	sub, ok := m.Subscriptions[id]
	if !ok {
		return nil, errors.NotFound("Provider subscription")
	}
	cp := *sub
	return &cp, nil
}

func (m *MockGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	return "https://billing.example.com/p/" + customerID, nil
}

// MockWebhookEventRepository is a mock implementation of subscription.WebhookEventRepository
type MockWebhookEventRepository struct {
	mu     sync.Mutex
	Events map[string]*subscription.WebhookEvent
}

func NewMockWebhookEventRepository() *MockWebhookEventRepository {
	return &MockWebhookEventRepository{Events: make(map[string]*subscription.WebhookEvent)}
}

func (m *MockWebhookEventRepository) Record(ctx context.Context, provider, id, eventType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Events[id]; !ok {
		m.Events[id] = &subscription.WebhookEvent{Provider: provider, ProviderEventID: id, EventType: eventType}
	}
	return nil
}

func (m *MockWebhookEventRepository) MarkProcessed(ctx context.Context, provider, id, processingErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev, ok := m.Events[id]; ok {
		now := time.Now().UTC()
		ev.ProcessedAt = &now
		ev.ProcessingError = processingErr
	}
	return nil
}

func (m *MockWebhookEventRepository) ListFailed(ctx context.Context, limit int) ([]*subscription.WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*subscription.WebhookEvent
	for _, ev := range m.Events {
		if ev.ProcessingError != "" {
			out = append(out, ev)
		}
	}
	return out, nil
}

// MockTeamRepository is a mock implementation of team.Repository
type MockTeamRepository struct {
	mu      sync.Mutex
	Members map[string]*team.Member
}

func NewMockTeamRepository() *MockTeamRepository {
	return &MockTeamRepository{Members: make(map[string]*team.Member)}
}

func (m *MockTeamRepository) Create(ctx context.Context, mem *team.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mem.ID == "" {
		mem.ID = "inv-" + strings.ToLower(mem.Email)
	}
	if mem.Status == "" {
		mem.Status = team.StatusPending
	}
	if mem.InvitedAt.IsZero() {
		mem.InvitedAt = time.Now().UTC()
	}
	cp := *mem
	m.Members[mem.ID] = &cp
	return nil
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id string) (*team.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.Members[id]
	if !ok {
		return nil, errors.NotFound("Invitation")
	}
	cp := *mem
	return &cp, nil
}

func (m *MockTeamRepository) FindOpenByEmail(ctx context.Context, tenantID int64, email string) (*team.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.Members {
		if mem.UserID == tenantID && strings.EqualFold(mem.Email, email) &&
			(mem.Status == team.StatusPending || mem.Status == team.StatusActive) {
			cp := *mem
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Team member")
}

func (m *MockTeamRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*team.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*team.Member
	for _, mem := range m.Members {
		if mem.UserID == tenantID {
			cp := *mem
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTeamRepository) Activate(ctx context.Context, id string, memberUserID int64, joinedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.Members[id]
	if !ok || mem.Status != team.StatusPending {
		return false, nil
	}
	mem.Status = team.StatusActive
	mem.MemberUserID = &memberUserID
	mem.JoinedAt = &joinedAt
	return true, nil
}

func (m *MockTeamRepository) Expire(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.Members[id]
	if !ok || mem.Status != team.StatusPending {
		return false, nil
	}
	mem.Status = team.StatusExpired
	return true, nil
}

func (m *MockTeamRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, mem := range m.Members {
		if mem.Status == team.StatusPending && mem.InvitedAt.Before(cutoff) {
			mem.Status = team.StatusExpired
			n++
		}
	}
	return n, nil
}
