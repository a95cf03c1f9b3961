package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsphere/internal/models"

	gorilla "github.com/gorilla/sessions"
)

type fakeUserLoader struct {
	users map[int]*models.User
}

func (f *fakeUserLoader) GetUserByID(id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func okHandler(got **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadUser_Anonymous(t *testing.T) {
	store := gorilla.NewCookieStore([]byte("test-secret"))
	m := NewAuthMiddleware(&fakeUserLoader{users: map[int]*models.User{}}, store)

	var got *models.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.LoadUser(okHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got != nil {
		t.Error("anonymous request should carry no user")
	}
}

func TestLoadUser_SessionUser(t *testing.T) {
	store := gorilla.NewCookieStore([]byte("test-secret"))
	loader := &fakeUserLoader{users: map[int]*models.User{
		7: {ID: 7, Email: "jane@example.com", Role: models.RoleAttendee, IsActive: true},
	}}
	m := NewAuthMiddleware(loader, store)

	// Establish the session cookie
	setupReq := httptest.NewRequest(http.MethodGet, "/", nil)
	setupRec := httptest.NewRecorder()
	session, err := store.Get(setupReq, sessionName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.Values[userIDValueKey] = 7
	if err := session.Save(setupReq, setupRec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got *models.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range setupRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	m.LoadUser(okHandler(&got)).ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != 7 {
		t.Errorf("user id = %d, want 7", got.ID)
	}
}

func TestLoadUser_InactiveUser(t *testing.T) {
	store := gorilla.NewCookieStore([]byte("test-secret"))
	loader := &fakeUserLoader{users: map[int]*models.User{
		7: {ID: 7, Email: "jane@example.com", Role: models.RoleAttendee, IsActive: false},
	}}
	m := NewAuthMiddleware(loader, store)

	setupReq := httptest.NewRequest(http.MethodGet, "/", nil)
	setupRec := httptest.NewRecorder()
	session, _ := store.Get(setupReq, sessionName)
	session.Values[userIDValueKey] = 7
	if err := session.Save(setupReq, setupRec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got *models.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range setupRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	m.LoadUser(okHandler(&got)).ServeHTTP(rec, req)

	if got != nil {
		t.Error("deactivated user should not be loaded")
	}
}

func TestRequireAuth(t *testing.T) {
	var got *models.User

	// Without a user
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequireAuth(okHandler(&got)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	// With a user
	user := &models.User{ID: 1, Role: models.RoleAttendee}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), user))
	rec = httptest.NewRecorder()
	RequireAuth(okHandler(&got)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		allowed  []models.UserRole
		wantCode int
	}{
		{
			name:     "no user",
			user:     nil,
			allowed:  []models.UserRole{models.RoleAdmin},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong role",
			user:     &models.User{ID: 1, Role: models.RoleAttendee},
			allowed:  []models.UserRole{models.RoleAdmin},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "matching role",
			user:     &models.User{ID: 1, Role: models.RoleOrganizer},
			allowed:  []models.UserRole{models.RoleOrganizer, models.RoleAdmin},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.User
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			RequireRole(tt.allowed...)(okHandler(&got)).ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
