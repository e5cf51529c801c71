package ez

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JuanAndresGH-hub/marketplace/internal/core/auth"
	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	mdw "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/middleware"
)

type fakeUsers struct {
	users map[string]*domain.User
}

func (r *fakeUsers) Create(_ context.Context, _ *domain.User) error { return nil }
func (r *fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}
func (r *fakeUsers) List(_ context.Context, _ string, _, _ int) ([]domain.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUsers) SetEnabled(_ context.Context, _ uint64, _ bool) error { return nil }

// The handler never touches the DB in these tests, so a bare *gorm.DB with
// an empty Config and Statement is enough for the WithContext call on the
// success path (Session clones db.Statement, so it must be non-nil).
func testActionEngine(t *testing.T, users map[string]*domain.User, called *bool) (*gin.Engine, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwter := &auth.JWTer{Secret: []byte("0123456789abcdef0123456789abcdef"), TTL: time.Hour}
	resolver := service.NewIdentityResolver(jwter, &fakeUsers{users: users})

	r := gin.New()
	g := r.Group("/admin/v1")
	g.Use(mdw.Identity(resolver))

	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
	RegisterAction[struct{}, gin.H](New(g), db, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/ping",
		Binder: BindNone,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			*called = true
			return gin.H{"pong": 1}, nil
		},
	})
	return r, jwter
}

func do(t *testing.T, r *gin.Engine, bearer string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRegisterAction_AuthRejectsAnonymous(t *testing.T) {
	var called bool
	r, _ := testActionEngine(t, nil, &called)
	if body := do(t, r, ""); body["code"].(float64) != 401 {
		t.Fatalf("anonymous: expected code 401, got %v", body)
	}
	if called {
		t.Fatalf("handler ran for an anonymous request")
	}
}

func TestRegisterAction_RolesRejectNonAdmin(t *testing.T) {
	var called bool
	users := map[string]*domain.User{
		"carol": {Username: "carol", Role: domain.RoleUser, Enabled: true},
	}
	r, jwter := testActionEngine(t, users, &called)
	tok, _ := jwter.Issue("carol", domain.RoleUser)
	if body := do(t, r, tok); body["code"].(float64) != 403 {
		t.Fatalf("USER role: expected code 403, got %v", body)
	}
	if called {
		t.Fatalf("handler ran for a non-admin request")
	}
}

func TestRegisterAction_AdminPasses(t *testing.T) {
	var called bool
	users := map[string]*domain.User{
		"root": {Username: "root", Role: domain.RoleAdmin, Enabled: true},
	}
	r, jwter := testActionEngine(t, users, &called)
	tok, _ := jwter.Issue("root", domain.RoleAdmin)
	body := do(t, r, tok)
	if body["code"].(float64) != 0 {
		t.Fatalf("admin: expected code 0, got %v", body)
	}
	if !called {
		t.Fatalf("handler did not run for an admin request")
	}
}
