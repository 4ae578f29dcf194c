package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	domproduct "example.com/catalog-admin/app/internal/domain/product"
	domuser "example.com/catalog-admin/app/internal/domain/user"
	"example.com/catalog-admin/app/internal/infra/security"
	"example.com/catalog-admin/app/internal/infra/storage"
	authuc "example.com/catalog-admin/app/internal/usecase/auth"
	productuc "example.com/catalog-admin/app/internal/usecase/product"
)

// Mock product repository. Backed by a slice so listing preserves
// insertion order the way the real table does.
type mockProductRepository struct {
	products  []*domproduct.Product
	nextID    int64
	createErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{nextID: 1}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	cloned := *p
	m.products = append(m.products, &cloned)
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	for i, existing := range m.products {
		if existing.ID == p.ID {
			cloned := *p
			m.products[i] = &cloned
			return p, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	for i, existing := range m.products {
		if existing.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return domproduct.ErrProductNotFound
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	for _, existing := range m.products {
		if existing.ID == id {
			cloned := *existing
			return &cloned, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = domproduct.DefaultPageSize
	}

	start := (page - 1) * perPage
	if start >= len(m.products) {
		return nil, nil
	}
	end := start + perPage
	if end > len(m.products) {
		end = len(m.products)
	}

	var result []*domproduct.Product
	for _, p := range m.products[start:end] {
		cloned := *p
		result = append(result, &cloned)
	}
	return result, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepository) seed(name string, price float64) *domproduct.Product {
	p := &domproduct.Product{Name: name, Price: price}
	created, _ := m.Create(context.Background(), p)
	return created
}

// Mock user repository.
type mockUserRepository struct {
	users map[int64]*domuser.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*domuser.User)}
}

func (m *mockUserRepository) add(u *domuser.User) {
	m.users[u.ID] = u
}

func (m *mockUserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	if u, ok := m.users[id]; ok {
		cloned := *u
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

// plainPassword treats the stored hash as the plaintext password, keeping
// the fixtures readable without hashing in every test.
type plainPassword struct{}

func (plainPassword) Compare(hash string, password string) error {
	if hash == password {
		return nil
	}
	return errors.New("password mismatch")
}

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass"
	userEmail     = "user@example.com"
	userPassword  = "user-pass"
)

type testEnv struct {
	ts       *httptest.Server
	products *mockProductRepository
	store    *storage.DiskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	productRepo := newMockProductRepository()
	userRepo := newMockUserRepository()
	userRepo.add(&domuser.User{
		ID:           1,
		Name:         "Site Admin",
		Email:        adminEmail,
		PasswordHash: adminPassword,
		IsAdmin:      true,
	})
	userRepo.add(&domuser.User{
		ID:           2,
		Name:         "Regular User",
		Email:        userEmail,
		PasswordHash: userPassword,
	})

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	tokenSvc := security.NewJWTService("test-secret", time.Hour)
	authSvc := authuc.NewService(userRepo, plainPassword{}, tokenSvc)
	productSvc := productuc.NewService(productRepo, store)

	sessionStore := sessions.NewCookieStore([]byte("test-session-key"))

	srv := NewServer(Dependencies{
		AuthService:    authSvc,
		ProductService: productSvc,
		SessionStore:   sessionStore,
		Uploads:        http.Dir(store.Root()),
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, products: productRepo, store: store}
}

// newClient returns a cookie-carrying client that does not follow
// redirects, so tests can assert on Location headers.
func (e *testEnv) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) login(t *testing.T, client *http.Client, email, password string) {
	t.Helper()
	resp := e.postForm(t, client, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/products", resp.Header.Get("Location"))
}

func (e *testEnv) get(t *testing.T, client *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(e.ts.URL + path)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postForm(t *testing.T, client *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	return e.sendForm(t, client, http.MethodPost, path, form)
}

func (e *testEnv) sendForm(t *testing.T, client *http.Client, method, path string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
