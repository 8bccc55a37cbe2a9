package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/auth"
	"jewelry-store/internal/entity"
	"jewelry-store/internal/service"
)

// In-memory stores backing the handler tests.

type memUserStore struct {
	users  map[int]*entity.User
	nextID int
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, entity.ErrNotFound)
}

func (m *memUserStore) GetByID(_ context.Context, id int) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}
	copy := *u
	return &copy, nil
}

func (m *memUserStore) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		copy := *u
		out = append(out, &copy)
	}
	return out, nil
}

func (m *memUserStore) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("username %q: %w", user.Username, entity.ErrConflict)
		}
	}
	copy := *user
	copy.ID = m.nextID
	m.nextID++
	m.users[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (m *memUserStore) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return nil, fmt.Errorf("user %d: %w", user.ID, entity.ErrNotFound)
	}
	copy := *user
	m.users[user.ID] = &copy
	out := copy
	return &out, nil
}

func (m *memUserStore) Delete(_ context.Context, id int) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

type memProductStore struct {
	products map[int]*entity.Product
	nextID   int
}

func (m *memProductStore) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		copy := *p
		out = append(out, &copy)
	}
	return out, nil
}

func (m *memProductStore) GetByID(_ context.Context, id int) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, entity.ErrNotFound)
	}
	copy := *p
	return &copy, nil
}

func (m *memProductStore) Create(_ context.Context, product *entity.Product) (*entity.Product, error) {
	copy := *product
	copy.ID = m.nextID
	m.nextID++
	m.products[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (m *memProductStore) CreateCustom(ctx context.Context, product *entity.Product, necklace *entity.Necklace, ring *entity.Ring) (*entity.Product, error) {
	geomID := 100 + m.nextID
	if necklace != nil {
		product.NecklaceID = &geomID
	} else {
		product.RingID = &geomID
	}
	return m.Create(ctx, product)
}

func (m *memProductStore) Update(_ context.Context, product *entity.Product) (*entity.Product, error) {
	if _, ok := m.products[product.ID]; !ok {
		return nil, fmt.Errorf("product %d: %w", product.ID, entity.ErrNotFound)
	}
	copy := *product
	m.products[product.ID] = &copy
	out := copy
	return &out, nil
}

func (m *memProductStore) Delete(_ context.Context, id int) error {
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, entity.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

type memCatalogStore struct{}

func (memCatalogStore) ListMetals(_ context.Context) ([]*entity.Metal, error) {
	return []*entity.Metal{{ID: 1, Name: "Testium", Purity: "999", Density: 2.5, CostPerGram: 60}}, nil
}

func (memCatalogStore) GetMetal(_ context.Context, id int) (*entity.Metal, error) {
	if id != 1 {
		return nil, fmt.Errorf("metal %d: %w", id, entity.ErrNotFound)
	}
	return &entity.Metal{ID: 1, Name: "Testium", Purity: "999", Density: 2.5, CostPerGram: 60}, nil
}

func (memCatalogStore) ListGems(_ context.Context) ([]*entity.Gem, error) {
	return []*entity.Gem{{ID: 1, Name: "Diamond", Shape: "Round", Carat: 1, Price: 100}}, nil
}

func (memCatalogStore) GetGem(_ context.Context, id int) (*entity.Gem, error) {
	if id != 1 {
		return nil, fmt.Errorf("gem %d: %w", id, entity.ErrNotFound)
	}
	return &entity.Gem{ID: 1, Name: "Diamond", Shape: "Round", Carat: 1, Price: 100}, nil
}

func (memCatalogStore) ListLinks(_ context.Context) ([]*entity.Link, error) {
	return []*entity.Link{{ID: 1, Name: "Cable", Size: 3, Volume: 1}}, nil
}

func (memCatalogStore) GetLink(_ context.Context, id int) (*entity.Link, error) {
	if id != 1 {
		return nil, fmt.Errorf("link %d: %w", id, entity.ErrNotFound)
	}
	return &entity.Link{ID: 1, Name: "Cable", Size: 3, Volume: 1}, nil
}

func (memCatalogStore) ListRings(_ context.Context) ([]*entity.Ring, error) {
	return []*entity.Ring{}, nil
}

func (memCatalogStore) CreateRing(_ context.Context, ring *entity.Ring) (*entity.Ring, error) {
	ring.ID = 1
	return ring, nil
}

func (memCatalogStore) CreateNecklace(_ context.Context, necklace *entity.Necklace) (*entity.Necklace, error) {
	necklace.ID = 1
	return necklace, nil
}

// testServer wires the handlers into an echo instance with the same routes
// and middleware as main.
type testServer struct {
	e      *echo.Echo
	signer *auth.Signer
	users  *memUserStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	signer := auth.NewSigner([]byte("test-secret"), time.Hour)

	hash := func(pw string) string {
		h, err := auth.HashPassword(pw)
		if err != nil {
			t.Fatalf("HashPassword error: %v", err)
		}
		return h
	}

	users := &memUserStore{users: map[int]*entity.User{
		1: {ID: 1, Username: "root", Password: hash("rootpw"), Type: entity.RoleAdmin, Status: entity.StatusActivated},
		2: {ID: 2, Username: "shopper", Password: hash("shopperpw"), Type: entity.RoleCustomer, Status: entity.StatusActivated},
		3: {ID: 3, Username: "gone", Password: hash("gonepw"), Type: entity.RoleCustomer, Status: entity.StatusDeactivated},
	}, nextID: 4}

	necklaceID := 7
	products := &memProductStore{products: map[int]*entity.Product{
		1: {ID: 1, Name: "Stock Necklace", Mass: 60, Price: 3000, MetalID: 1, GemID: 1, NecklaceID: &necklaceID, CreatorID: 1},
	}, nextID: 2}

	userService := service.NewUserService(users, signer, nil)
	productService := service.NewProductService(products, nil, nil)
	catalogService := service.NewCatalogService(memCatalogStore{})
	quoteService := service.NewQuoteService(memCatalogStore{}, nil)

	userHandler := NewUserHandler(userService)
	productHandler := NewProductHandler(productService, quoteService)
	catalogHandler := NewCatalogHandler(catalogService)
	quoteHandler := NewQuoteHandler(quoteService)

	e := echo.New()
	authed := Auth(signer)

	e.POST("/api/login", userHandler.Login)
	e.POST("/api/register", userHandler.Register)
	e.GET("/api/products", productHandler.List)
	e.GET("/api/metals", catalogHandler.ListMetals)
	e.GET("/api/gems", catalogHandler.ListGems)
	e.GET("/api/links", catalogHandler.ListLinks)
	e.GET("/api/rings", catalogHandler.ListRings)
	e.POST("/api/necklaces", catalogHandler.CreateNecklace)
	e.POST("/api/rings", catalogHandler.CreateRing)
	e.POST("/api/quotes", quoteHandler.Quote)
	e.PUT("/api/users", userHandler.Update, authed)
	e.GET("/api/users", userHandler.List, authed, RequireAdmin)
	e.DELETE("/api/users/:id", userHandler.Delete, authed, RequireAdmin)
	e.POST("/api/products", productHandler.Create, authed, RequireAdmin)
	e.PUT("/api/products", productHandler.Update, authed, RequireAdmin)
	e.DELETE("/api/products", productHandler.Delete, authed, RequireAdmin)
	e.POST("/api/products/custom", productHandler.CreateCustom, authed, RequireAdmin)

	return &testServer{e: e, signer: signer, users: users}
}

// tokenFor issues a token for one of the seeded accounts.
func (ts *testServer) tokenFor(t *testing.T, id int) string {
	t.Helper()
	user, ok := ts.users.users[id]
	if !ok {
		t.Fatalf("no seeded user %d", id)
	}
	token, err := ts.signer.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return token
}

// do runs one request through the router and returns the recorder.
func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return body
}
