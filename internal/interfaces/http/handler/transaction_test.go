package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	appexchange "github.com/bookswap/backend/internal/application/exchange"
	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/bookswap/backend/internal/domain/identity"
	"github.com/bookswap/backend/internal/domain/shared"
	"github.com/bookswap/backend/internal/infrastructure/auth"
	"github.com/bookswap/backend/internal/infrastructure/config"
	"github.com/bookswap/backend/internal/interfaces/http/dto"
	"github.com/bookswap/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeExchangeRepo is an in-memory exchange.Repository that counts how
// often it is reached
type fakeExchangeRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*exchange.Exchange
	calls int
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{items: make(map[uuid.UUID]*exchange.Exchange)}
}

func (r *fakeExchangeRepo) touch() {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
}

func (r *fakeExchangeRepo) Create(_ context.Context, ex *exchange.Exchange) error {
	r.touch()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[ex.ID] = ex
	return nil
}

func (r *fakeExchangeRepo) Save(_ context.Context, ex *exchange.Exchange) error {
	r.touch()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[ex.ID]; !ok {
		return shared.ErrNotFound
	}
	r.items[ex.ID] = ex
	return nil
}

func (r *fakeExchangeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.touch()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeExchangeRepo) FindByID(_ context.Context, id uuid.UUID) (*exchange.Exchange, error) {
	r.touch()
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ex, nil
}

func (r *fakeExchangeRepo) FindAll(_ context.Context, filter exchange.Filter) ([]*exchange.Exchange, error) {
	r.touch()
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*exchange.Exchange
	for _, ex := range r.items {
		if filter.Status != nil && ex.Status != *filter.Status {
			continue
		}
		if filter.ExcludeStatus != nil && ex.Status == *filter.ExcludeStatus {
			continue
		}
		if filter.UserID != nil && !ex.InvolvesUser(*filter.UserID) {
			continue
		}
		if filter.BookID != nil && ex.BookID != *filter.BookID {
			continue
		}
		result = append(result, ex)
	}
	return result, nil
}

// fakeUserRepo is an in-memory identity.UserRepository
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo(users ...*identity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context, _, _ int) ([]*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*identity.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	return result, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

// fakeBookRepo is an in-memory catalog.BookRepository
type fakeBookRepo struct {
	mu    sync.Mutex
	books map[uuid.UUID]*catalog.Book
}

func newFakeBookRepo(books ...*catalog.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uuid.UUID]*catalog.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, book *catalog.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *catalog.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return shared.ErrNotFound
	}
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) FindAll(_ context.Context, _ catalog.BookFilter) ([]*catalog.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*catalog.Book, 0, len(r.books))
	for _, book := range r.books {
		result = append(result, book)
	}
	return result, nil
}

type transactionFixture struct {
	engine    *gin.Engine
	exchanges *fakeExchangeRepo
	alice     *identity.User
	bob       *identity.User
	admin     *identity.User
	book      *catalog.Book
}

// newTransactionFixture wires the transaction routes over in-memory
// repositories, with the authenticated identity selected per request via
// the X-Test-Actor header
func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidators())

	alice, err := identity.NewUser("alice", "password123")
	require.NoError(t, err)
	bob, err := identity.NewUser("bob", "password123")
	require.NoError(t, err)
	admin, err := identity.NewUserWithRole("root", "password123", identity.RoleAdmin)
	require.NoError(t, err)
	book, err := catalog.NewBook(alice.ID, "The Dispossessed", "Le Guin", "fiction", 1974)
	require.NoError(t, err)

	exchanges := newFakeExchangeRepo()
	users := newFakeUserRepo(alice, bob, admin)
	books := newFakeBookRepo(book)
	service := appexchange.NewService(exchanges, users, books, zap.NewNop())

	actors := map[string]*identity.User{
		"alice": alice,
		"bob":   bob,
		"admin": admin,
	}

	engine := gin.New()
	authed := engine.Group("")
	authed.Use(func(c *gin.Context) {
		if actor, ok := actors[c.GetHeader("X-Test-Actor")]; ok {
			c.Set(middleware.IdentityKey, actor)
		}
		c.Next()
	})
	NewTransactionHandler(service).RegisterRoutes(nil, authed, nil)

	return &transactionFixture{
		engine:    engine,
		exchanges: exchanges,
		alice:     alice,
		bob:       bob,
		admin:     admin,
		book:      book,
	}
}

func (f *transactionFixture) do(method, path, actor string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Test-Actor", actor)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTransactionLifecycle(t *testing.T) {
	f := newTransactionFixture(t)

	// Propose
	w := f.do(http.MethodPost, "/transactions", "alice", gin.H{
		"from_user_id": f.alice.ID.String(),
		"to_user_id":   f.bob.ID.String(),
		"book_id":      f.book.ID.String(),
		"place":        "Library",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, "created", created["status"])
	tx := created["transaction"].(map[string]any)
	assert.Equal(t, "pending", tx["status"])
	id := created["id"].(string)

	// Accept, then complete
	w = f.do(http.MethodPut, "/transactions/"+id+"/status", "bob", gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decodeBody(t, w)["new_status"])

	w = f.do(http.MethodPut, "/transactions/"+id+"/status", "bob", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "status_updated", body["status"])
	assert.Equal(t, "completed", body["new_status"])

	// Completed is terminal
	w = f.do(http.MethodPut, "/transactions/"+id+"/status", "bob", gin.H{"status": "canceled"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w)["error"], "not allowed")
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newTransactionFixture(t)

	t.Run("missing place", func(t *testing.T) {
		w := f.do(http.MethodPost, "/transactions", "alice", gin.H{
			"from_user_id": f.alice.ID.String(),
			"to_user_id":   f.bob.ID.String(),
			"book_id":      f.book.ID.String(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("same user on both sides", func(t *testing.T) {
		w := f.do(http.MethodPost, "/transactions", "alice", gin.H{
			"from_user_id": f.alice.ID.String(),
			"to_user_id":   f.alice.ID.String(),
			"book_id":      f.book.ID.String(),
			"place":        "Library",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := f.do(http.MethodPost, "/transactions", "alice", gin.H{
			"from_user_id": f.alice.ID.String(),
			"to_user_id":   f.bob.ID.String(),
			"book_id":      f.book.ID.String(),
			"place":        "Library",
			"status":       "misplaced",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("explicit status override", func(t *testing.T) {
		w := f.do(http.MethodPost, "/transactions", "alice", gin.H{
			"from_user_id": f.alice.ID.String(),
			"to_user_id":   f.bob.ID.String(),
			"book_id":      f.book.ID.String(),
			"place":        "Library",
			"status":       "accepted",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		tx := decodeBody(t, w)["transaction"].(map[string]any)
		assert.Equal(t, "accepted", tx["status"])
	})
}

func TestGetTransactionDetail(t *testing.T) {
	f := newTransactionFixture(t)

	ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
	require.NoError(t, err)
	require.NoError(t, f.exchanges.Create(context.Background(), ex))

	w := f.do(http.MethodGet, "/transactions/"+ex.ID.String(), "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	fromUser := body["from_user"].(map[string]any)
	book := body["book"].(map[string]any)
	assert.Equal(t, "alice", fromUser["username"])
	assert.Equal(t, "The Dispossessed", book["title"])
	assert.Equal(t, "Le Guin", book["author"])

	t.Run("unknown id", func(t *testing.T) {
		w := f.do(http.MethodGet, "/transactions/"+uuid.NewString(), "alice", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListTransactions(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	open, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
	require.NoError(t, err)
	done, err := exchange.NewExchange(f.bob.ID, f.alice.ID, f.book.ID, "Park", exchange.StatusCompleted)
	require.NoError(t, err)
	require.NoError(t, f.exchanges.Create(ctx, open))
	require.NoError(t, f.exchanges.Create(ctx, done))

	t.Run("lists everything with book titles", func(t *testing.T) {
		w := f.do(http.MethodGet, "/transactions", "alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, "The Dispossessed", item["book_title"])
		}
	})

	t.Run("exclude_completed hides the terminal row", func(t *testing.T) {
		w := f.do(http.MethodGet, "/transactions?exclude_completed=true", "alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, open.ID.String(), items[0]["id"])
	})

	t.Run("status filter", func(t *testing.T) {
		w := f.do(http.MethodGet, "/transactions?status=completed", "alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, done.ID.String(), items[0]["id"])
	})
}

func TestDeleteTransactionRequiresAdmin(t *testing.T) {
	f := newTransactionFixture(t)

	ex, err := exchange.NewExchange(f.alice.ID, f.bob.ID, f.book.ID, "Library", "")
	require.NoError(t, err)
	require.NoError(t, f.exchanges.Create(context.Background(), ex))

	path := fmt.Sprintf("/transactions/%s", ex.ID)

	w := f.do(http.MethodDelete, path, "alice", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodDelete, path, "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "deleted", body["status"])
	assert.Equal(t, ex.ID.String(), body["id"])

	w = f.do(http.MethodDelete, path, "admin", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A request without credentials must be rejected by the guard before any
// repository is reached.
func TestGuardedRouteNeverReachesLedger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidators())

	exchanges := newFakeExchangeRepo()
	users := newFakeUserRepo()
	books := newFakeBookRepo()
	service := appexchange.NewService(exchanges, users, books, zap.NewNop())

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-123",
		AccessTokenExpiration: time.Minute,
		Issuer:                "bookswap-test",
	})

	engine := gin.New()
	authed := engine.Group("")
	authed.Use(middleware.Authenticate(middleware.AuthConfig{
		JWTService: jwtService,
		Users:      users,
	}))
	NewTransactionHandler(service).RegisterRoutes(nil, authed, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, exchanges.calls)
}
