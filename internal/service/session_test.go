package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parqueo-gt/parqueo/internal/domain"
	"github.com/parqueo-gt/parqueo/internal/repository"
)

type mockTicketStore struct{ mock.Mock }

func (m *mockTicketStore) Create(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTicketStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) GetByFolio(ctx context.Context, folio string) (*domain.Ticket, error) {
	args := m.Called(ctx, folio)
	if t := args.Get(0); t != nil {
		return t.(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) FindByPlate(ctx context.Context, plate string) ([]domain.Ticket, error) {
	args := m.Called(ctx, plate)
	if t := args.Get(0); t != nil {
		return t.([]domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketStore) CountOpenByBranch(ctx context.Context, branchID uuid.UUID, vehicleType string) (int, error) {
	args := m.Called(ctx, branchID, vehicleType)
	return args.Int(0), args.Error(1)
}

func (m *mockTicketStore) CloseWithCharge(ctx context.Context, ticketID uuid.UUID, exitTime time.Time, charge *domain.Charge, draw *repository.SubscriptionDraw) error {
	args := m.Called(ctx, ticketID, exitTime, charge, draw)
	return args.Error(0)
}

type mockBranchStore struct{ mock.Mock }

func (m *mockBranchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSubscriptionDirectory struct{ mock.Mock }

func (m *mockSubscriptionDirectory) GetActiveByPlate(ctx context.Context, plate string) (*domain.Subscription, error) {
	args := m.Called(ctx, plate)
	if s := args.Get(0); s != nil {
		return s.(*domain.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRateResolver struct{ mock.Mock }

func (m *mockRateResolver) ResolveAt(ctx context.Context, branchID uuid.UUID, at time.Time) (*domain.Rate, error) {
	args := m.Called(ctx, branchID, at)
	if r := args.Get(0); r != nil {
		return r.(*domain.Rate), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEntitlementSource struct{ mock.Mock }

func (m *mockEntitlementSource) Resolve(ctx context.Context, ticket *domain.Ticket, totalHours decimal.Decimal, now time.Time) (*domain.Entitlements, error) {
	args := m.Called(ctx, ticket, totalHours, now)
	if e := args.Get(0); e != nil {
		return e.(*domain.Entitlements), args.Error(1)
	}
	return nil, args.Error(1)
}

type sessionFixture struct {
	tickets  *mockTicketStore
	branches *mockBranchStore
	subs     *mockSubscriptionDirectory
	rates    *mockRateResolver
	ents     *mockEntitlementSource
	service  *SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		tickets:  &mockTicketStore{},
		branches: &mockBranchStore{},
		subs:     &mockSubscriptionDirectory{},
		rates:    &mockRateResolver{},
		ents:     &mockEntitlementSource{},
	}
	f.service = NewSessionService(
		f.tickets,
		f.branches,
		f.subs,
		f.rates,
		f.ents,
		NewChargeCalculator(60),
		slog.New(slog.DiscardHandler),
	)
	return f
}

func carBranch(capacity int) *domain.Branch {
	return &domain.Branch{
		ID:       uuid.New(),
		Name:     "Centro",
		Timezone: "America/Guatemala",
		Capacity: map[string]int{"CAR": capacity},
		IsActive: true,
	}
}

func TestRegisterEntry_NormalizesPlateAndStampsVisitor(t *testing.T) {
	f := newSessionFixture()
	branch := carBranch(100)

	f.branches.On("GetByID", mock.Anything, branch.ID).Return(branch, nil)
	f.tickets.On("CountOpenByBranch", mock.Anything, branch.ID, "CAR").Return(10, nil)
	f.subs.On("GetActiveByPlate", mock.Anything, "P123ABC").Return(nil, domain.ErrSubscriptionNotFound)
	f.tickets.On("Create", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.LicensePlate == "P123ABC" && tk.Status == domain.TicketOpen && !tk.IsSubscriber
	})).Return(nil)

	ticket, err := f.service.RegisterEntry(context.Background(), branch.ID, "p-123 abc", "CAR")
	require.NoError(t, err)

	assert.Equal(t, "P123ABC", ticket.LicensePlate)
	assert.False(t, ticket.IsSubscriber)
	f.tickets.AssertExpectations(t)
}

func TestRegisterEntry_StampsSubscriberAtEntry(t *testing.T) {
	f := newSessionFixture()
	branch := carBranch(100)
	sub := &domain.Subscription{ID: uuid.New(), LicensePlate: "P123ABC", PlanCode: domain.PlanA, IsActive: true}

	f.branches.On("GetByID", mock.Anything, branch.ID).Return(branch, nil)
	f.tickets.On("CountOpenByBranch", mock.Anything, branch.ID, "CAR").Return(0, nil)
	f.subs.On("GetActiveByPlate", mock.Anything, "P123ABC").Return(sub, nil)
	f.tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	ticket, err := f.service.RegisterEntry(context.Background(), branch.ID, "P123ABC", "CAR")
	require.NoError(t, err)

	assert.True(t, ticket.IsSubscriber)
	require.NotNil(t, ticket.SubscriptionID)
	assert.Equal(t, sub.ID, *ticket.SubscriptionID)
}

func TestRegisterEntry_RejectsInvalidPlate(t *testing.T) {
	f := newSessionFixture()

	_, err := f.service.RegisterEntry(context.Background(), uuid.New(), "!!", "CAR")
	require.ErrorIs(t, err, domain.ErrInvalidPlate)
}

func TestRegisterEntry_BranchAtCapacity(t *testing.T) {
	f := newSessionFixture()
	branch := carBranch(50)

	f.branches.On("GetByID", mock.Anything, branch.ID).Return(branch, nil)
	f.tickets.On("CountOpenByBranch", mock.Anything, branch.ID, "CAR").Return(50, nil)

	_, err := f.service.RegisterEntry(context.Background(), branch.ID, "P123ABC", "CAR")
	require.ErrorIs(t, err, domain.ErrBranchAtCapacity)
	f.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterEntry_UnknownVehicleType(t *testing.T) {
	f := newSessionFixture()
	branch := carBranch(50)

	f.branches.On("GetByID", mock.Anything, branch.ID).Return(branch, nil)

	_, err := f.service.RegisterEntry(context.Background(), branch.ID, "P123ABC", "TRUCK")
	require.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestRegisterExit_ClosesWithChargeAndDraw(t *testing.T) {
	f := newSessionFixture()
	subID := uuid.New()
	entry := time.Now().Add(-3 * time.Hour).UTC()
	ticket := &domain.Ticket{
		ID:             uuid.New(),
		BranchID:       uuid.New(),
		LicensePlate:   "P123ABC",
		EntryTime:      entry,
		Status:         domain.TicketOpen,
		SubscriptionID: &subID,
		IsSubscriber:   true,
	}
	rate := &domain.Rate{ID: uuid.New(), AmountPerHour: dec("5.00")}
	ent := &domain.Entitlements{
		SubscriptionID:            &subID,
		FreeHoursGranted:          dec("3"),
		SubscriptionHoursConsumed: dec("3"),
	}

	f.tickets.On("GetByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.rates.On("ResolveAt", mock.Anything, ticket.BranchID, entry).Return(rate, nil)
	f.ents.On("Resolve", mock.Anything, ticket, mock.Anything, mock.Anything).Return(ent, nil)
	f.tickets.On("CloseWithCharge", mock.Anything, ticket.ID, mock.Anything,
		mock.MatchedBy(func(c *domain.Charge) bool { return c.TotalAmount.IsZero() }),
		mock.MatchedBy(func(d *repository.SubscriptionDraw) bool {
			return d != nil && d.SubscriptionID == subID && d.Hours.Equal(dec("3"))
		}),
	).Return(nil)

	closed, charge, err := f.service.RegisterExit(context.Background(), ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketClosed, closed.Status)
	require.NotNil(t, closed.ExitTime)
	assert.True(t, charge.TotalAmount.IsZero())
	f.tickets.AssertExpectations(t)
}

func TestRegisterExit_AlreadyClosed(t *testing.T) {
	f := newSessionFixture()
	exit := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:           uuid.New(),
		LicensePlate: "P123ABC",
		Status:       domain.TicketClosed,
		ExitTime:     &exit,
	}

	f.tickets.On("GetByID", mock.Anything, ticket.ID).Return(ticket, nil)

	_, _, err := f.service.RegisterExit(context.Background(), ticket.ID)
	require.ErrorIs(t, err, domain.ErrTicketAlreadyClosed)
	f.tickets.AssertNotCalled(t, "CloseWithCharge", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterExit_RateResolvedAtEntryTime(t *testing.T) {
	f := newSessionFixture()
	entry := time.Now().Add(-90 * time.Minute).UTC()
	ticket := &domain.Ticket{
		ID:           uuid.New(),
		BranchID:     uuid.New(),
		LicensePlate: "P123ABC",
		EntryTime:    entry,
		Status:       domain.TicketOpen,
	}
	rate := &domain.Rate{ID: uuid.New(), AmountPerHour: dec("5.00")}

	f.tickets.On("GetByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.rates.On("ResolveAt", mock.Anything, ticket.BranchID, entry).Return(rate, nil)
	f.ents.On("Resolve", mock.Anything, ticket, mock.Anything, mock.Anything).Return(&domain.Entitlements{}, nil)
	f.tickets.On("CloseWithCharge", mock.Anything, ticket.ID, mock.Anything, mock.Anything, (*repository.SubscriptionDraw)(nil)).Return(nil)

	_, charge, err := f.service.RegisterExit(context.Background(), ticket.ID)
	require.NoError(t, err)

	// 90 minutes rounds up to 2 billable hours
	assert.True(t, charge.TotalHours.Equal(dec("2")))
	assert.True(t, charge.TotalAmount.Equal(dec("10.00")), "total %s", charge.TotalAmount)
	f.rates.AssertExpectations(t)
}

func TestChargePreview_DoesNotClose(t *testing.T) {
	f := newSessionFixture()
	ticket := &domain.Ticket{
		ID:           uuid.New(),
		BranchID:     uuid.New(),
		LicensePlate: "P123ABC",
		EntryTime:    time.Now().Add(-time.Hour).UTC(),
		Status:       domain.TicketOpen,
	}
	rate := &domain.Rate{ID: uuid.New(), AmountPerHour: dec("5.00")}

	f.tickets.On("GetByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.rates.On("ResolveAt", mock.Anything, ticket.BranchID, ticket.EntryTime).Return(rate, nil)
	f.ents.On("Resolve", mock.Anything, ticket, mock.Anything, mock.Anything).Return(&domain.Entitlements{}, nil)

	charge, err := f.service.ChargePreview(context.Background(), ticket.ID)
	require.NoError(t, err)

	assert.True(t, charge.TotalAmount.Equal(dec("5.00")))
	f.tickets.AssertNotCalled(t, "CloseWithCharge", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargePreview_ClosedTicket(t *testing.T) {
	f := newSessionFixture()
	ticket := &domain.Ticket{ID: uuid.New(), LicensePlate: "P123ABC", Status: domain.TicketClosed}

	f.tickets.On("GetByID", mock.Anything, ticket.ID).Return(ticket, nil)

	_, err := f.service.ChargePreview(context.Background(), ticket.ID)
	require.ErrorIs(t, err, domain.ErrTicketAlreadyClosed)
}

func TestFindByPlate_Normalizes(t *testing.T) {
	f := newSessionFixture()

	f.tickets.On("FindByPlate", mock.Anything, "P123ABC").Return([]domain.Ticket{{Folio: "ABC1234567"}}, nil)

	tickets, err := f.service.FindByPlate(context.Background(), " p-123-abc ")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}
