package exchange

import (
	"context"
	"testing"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExchangeRepository is a mock implementation of exchange.Repository
type MockExchangeRepository struct {
	mock.Mock
}

func (m *MockExchangeRepository) Create(ctx context.Context, ex *exchange.Exchange) error {
	args := m.Called(ctx, ex)
	return args.Error(0)
}

func (m *MockExchangeRepository) Save(ctx context.Context, ex *exchange.Exchange) error {
	args := m.Called(ctx, ex)
	return args.Error(0)
}

func (m *MockExchangeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*exchange.Exchange, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exchange.Exchange), args.Error(1)
}

func (m *MockExchangeRepository) FindAll(ctx context.Context, filter exchange.Filter) ([]*exchange.Exchange, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exchange.Exchange), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, skip, limit int) ([]*identity.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockBookRepository is a mock implementation of catalog.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *catalog.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *catalog.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindAll(ctx context.Context, filter catalog.BookFilter) ([]*catalog.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Book), args.Error(1)
}

type serviceFixture struct {
	service   *Service
	exchanges *MockExchangeRepository
	users     *MockUserRepository
	books     *MockBookRepository
	alice     *identity.User
	bob       *identity.User
	book      *catalog.Book
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	exchanges := new(MockExchangeRepository)
	users := new(MockUserRepository)
	books := new(MockBookRepository)

	alice, err := identity.NewUser("alice", "password123")
	require.NoError(t, err)
	bob, err := identity.NewUser("bob", "password123")
	require.NoError(t, err)
	book, err := catalog.NewBook(alice.ID, "The Go Programming Language", "Donovan", "programming", 2015)
	require.NoError(t, err)

	return &serviceFixture{
		service:   NewService(exchanges, users, books, zap.NewNop()),
		exchanges: exchanges,
		users:     users,
		books:     books,
		alice:     alice,
		bob:       bob,
		book:      book,
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestService_Propose(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending exchange", func(t *testing.T) {
		f := newServiceFixture(t)
		f.users.On("FindByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.users.On("FindByID", ctx, f.bob.ID).Return(f.bob, nil)
		f.books.On("FindByID", ctx, f.book.ID).Return(f.book, nil)
		f.exchanges.On("Create", ctx, mock.AnythingOfType("*exchange.Exchange")).Return(nil)

		ex, err := f.service.Propose(ctx, ProposeInput{
			FromUserID: f.alice.ID,
			ToUserID:   f.bob.ID,
			BookID:     f.book.ID,
			Place:      "Library",
		})

		require.NoError(t, err)
		assert.Equal(t, exchange.StatusPending, ex.Status)
		f.exchanges.AssertExpectations(t)
	})

	t.Run("unknown party fails before touching the ledger", func(t *testing.T) {
		f := newServiceFixture(t)
		f.users.On("FindByID", ctx, f.alice.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Propose(ctx, ProposeInput{
			FromUserID: f.alice.ID,
			ToUserID:   f.bob.ID,
			BookID:     f.book.ID,
			Place:      "Library",
		})

		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
		f.exchanges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("same party on both sides is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		f.users.On("FindByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.books.On("FindByID", ctx, f.book.ID).Return(f.book, nil)

		_, err := f.service.Propose(ctx, ProposeInput{
			FromUserID: f.alice.ID,
			ToUserID:   f.alice.ID,
			BookID:     f.book.ID,
			Place:      "Library",
		})

		assert.Equal(t, "INVALID_PARTIES", domainCode(t, err))
		f.exchanges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves parties and book for display", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)
		f.users.On("FindByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.users.On("FindByID", ctx, f.bob.ID).Return(f.bob, nil)
		f.books.On("FindByID", ctx, f.book.ID).Return(f.book, nil)

		detail, err := f.service.Get(ctx, ex.ID)

		require.NoError(t, err)
		assert.Equal(t, "alice", detail.FromUser.Username)
		assert.Equal(t, "bob", detail.ToUser.Username)
		assert.Equal(t, f.book.Title, detail.Book.Title)
	})

	t.Run("deleted references leave nil slots instead of failing", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)
		f.users.On("FindByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.users.On("FindByID", ctx, f.bob.ID).Return(nil, shared.ErrNotFound)
		f.books.On("FindByID", ctx, f.book.ID).Return(nil, shared.ErrNotFound)

		detail, err := f.service.Get(ctx, ex.ID)

		require.NoError(t, err)
		assert.NotNil(t, detail.FromUser)
		assert.Nil(t, detail.ToUser)
		assert.Nil(t, detail.Book)
	})

	t.Run("missing exchange fails with NOT_FOUND", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()
		f.exchanges.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Get(ctx, id)

		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("denormalizes book titles", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindAll", ctx, mock.AnythingOfType("exchange.Filter")).
			Return([]*exchange.Exchange{ex}, nil)
		f.books.On("FindByID", ctx, f.book.ID).Return(f.book, nil)

		items, err := f.service.List(ctx, ListInput{})

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, f.book.Title, items[0].BookTitle)
	})

	t.Run("exclude_completed maps to an exclude-status filter", func(t *testing.T) {
		f := newServiceFixture(t)
		f.exchanges.On("FindAll", ctx, mock.MatchedBy(func(filter exchange.Filter) bool {
			return filter.ExcludeStatus != nil && *filter.ExcludeStatus == exchange.StatusCompleted
		})).Return([]*exchange.Exchange{}, nil)

		_, err := f.service.List(ctx, ListInput{ExcludeCompleted: true})

		require.NoError(t, err)
		f.exchanges.AssertExpectations(t)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("no field given fails with MISSING_FIELD", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Update(ctx, uuid.New(), UpdateInput{})

		assert.Equal(t, "MISSING_FIELD", domainCode(t, err))
		f.exchanges.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("updates place and status together", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)
		f.exchanges.On("Save", ctx, ex).Return(nil)

		status := exchange.StatusAccepted
		place := "Central Park"
		got, err := f.service.Update(ctx, ex.ID, UpdateInput{Status: &status, Place: &place})

		require.NoError(t, err)
		assert.Equal(t, exchange.StatusAccepted, got.Status)
		assert.Equal(t, "Central Park", got.Place)
	})

	t.Run("illegal transition is rejected before persisting", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", exchange.StatusCompleted)
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)

		status := exchange.StatusCanceled
		_, err = f.service.Update(ctx, ex.ID, UpdateInput{Status: &status})

		assert.ErrorIs(t, err, exchange.ErrInvalidTransition)
		f.exchanges.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances along the lifecycle", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)
		f.exchanges.On("Save", ctx, ex).Return(nil)

		got, err := f.service.ChangeStatus(ctx, ex.ID, exchange.StatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, exchange.StatusInProgress, got.Status)
	})

	t.Run("concurrent writer surfaces as CONCURRENCY_CONFLICT", func(t *testing.T) {
		f := newServiceFixture(t)
		ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
		require.NoError(t, err)

		f.exchanges.On("FindByID", ctx, ex.ID).Return(ex, nil)
		f.exchanges.On("Save", ctx, ex).Return(shared.ErrConcurrencyConflict)

		_, err = f.service.ChangeStatus(ctx, ex.ID, exchange.StatusAccepted)

		assert.Equal(t, "CONCURRENCY_CONFLICT", domainCode(t, err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing exchange", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()
		f.exchanges.On("Delete", ctx, id).Return(nil)

		require.NoError(t, f.service.Delete(ctx, id))
	})

	t.Run("missing exchange fails with NOT_FOUND", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()
		f.exchanges.On("Delete", ctx, id).Return(shared.ErrNotFound)

		err := f.service.Delete(ctx, id)

		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})
}
