package rest

import (
	"net/http"
	"real-estate-system/internal/core/domain"
	"testing"
)

func register(t *testing.T, env *testEnv, username, email string) AuthResponse {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: username, Email: email, Password: "secret1", FirstName: "Ann", LastName: "Lee",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body)
	}
	return decode[AuthResponse](t, rec)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	registered := register(t, env, "ann", "ann@example.com")
	if registered.Token == "" || registered.User.Username != "ann" {
		t.Fatalf("unexpected register response %+v", registered)
	}
	if registered.User.Preferences != (PreferencesResponse{Theme: "light", Notifications: true, Language: "en"}) {
		t.Errorf("unexpected default preferences %+v", registered.User.Preferences)
	}

	rec := env.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "ann", Password: "secret1"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := decode[AuthResponse](t, rec); got.User.LastLogin == nil {
		t.Errorf("login must set lastLogin")
	}

	if rec := env.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "ann", Password: "wrong"}, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", rec.Code)
	}
}

func TestRegisterConflictsAndValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	register(t, env, "ann", "ann@example.com")

	cases := map[string]struct {
		req  RegisterRequest
		code int
	}{
		"duplicate username": {RegisterRequest{Username: "ann", Email: "x@example.com", Password: "secret1", FirstName: "A", LastName: "B"}, http.StatusConflict},
		"duplicate email":    {RegisterRequest{Username: "bob", Email: "ann@example.com", Password: "secret1", FirstName: "A", LastName: "B"}, http.StatusConflict},
		"short password":     {RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "123", FirstName: "A", LastName: "B"}, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := env.do(t, http.MethodPost, "/api/auth/register", tc.req, ""); rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, nil)

	if rec := env.do(t, http.MethodGet, "/api/auth/profile", nil, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/auth/profile", nil, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", rec.Code)
	}
}

func TestProfileAndPreferences(t *testing.T) {
	env := newTestEnv(t, nil)
	token := register(t, env, "ann", "ann@example.com").Token

	rec := env.do(t, http.MethodPut, "/api/auth/preferences", map[string]interface{}{"theme": "dark"}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("preferences status = %d", rec.Code)
	}

	profile := decode[UserResponse](t, env.do(t, http.MethodGet, "/api/auth/profile", nil, token))
	if profile.Preferences != (PreferencesResponse{Theme: "dark", Notifications: true, Language: "en"}) {
		t.Fatalf("unexpected preferences %+v", profile.Preferences)
	}

	if rec := env.do(t, http.MethodPut, "/api/auth/profile/update", UpdateProfileRequest{FirstName: "", LastName: "Lee"}, token); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank first name status = %d", rec.Code)
	}

	avatar := "http://img/a.png"
	rec = env.do(t, http.MethodPut, "/api/auth/profile/update", UpdateProfileRequest{FirstName: " Anna ", LastName: "Lee", Avatar: &avatar}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile status = %d, body = %s", rec.Code, rec.Body)
	}
	updated := decode[UserResponse](t, rec)
	if updated.FirstName != "Anna" || updated.Avatar == nil || *updated.Avatar != avatar {
		t.Fatalf("unexpected profile %+v", updated)
	}
}

func TestFavorites(t *testing.T) {
	env := newTestEnv(t, nil,
		domain.Property{IDProperty: "p1", Name: "One", Address: "a", Price: 1, IDOwner: "o1"},
		domain.Property{IDProperty: "p2", Name: "Two", Address: "b", Price: 2, IDOwner: "o2"},
	)
	token := register(t, env, "ann", "ann@example.com").Token

	for _, id := range []string{"p2", "gone", "p1", "p2"} {
		if rec := env.do(t, http.MethodPost, "/api/auth/favorites/"+id, nil, token); rec.Code != http.StatusOK {
			t.Fatalf("add %s status = %d", id, rec.Code)
		}
	}

	favorites := decode[[]PropertyWithOwnerResponse](t, env.do(t, http.MethodGet, "/api/auth/favorites", nil, token))
	if len(favorites) != 2 || favorites[0].IDProperty != "p2" || favorites[1].IDProperty != "p1" {
		t.Fatalf("favorites must keep insertion order and skip missing ids, got %+v", favorites)
	}
	if favorites[0].Owner == nil || favorites[0].Owner.Name != "Bob" {
		t.Errorf("favorites must be enriched with owners")
	}

	if rec := env.do(t, http.MethodDelete, "/api/auth/favorites/p2", nil, token); rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d", rec.Code)
	}
	favorites = decode[[]PropertyWithOwnerResponse](t, env.do(t, http.MethodGet, "/api/auth/favorites", nil, token))
	if len(favorites) != 1 || favorites[0].IDProperty != "p1" {
		t.Fatalf("unexpected favorites after removal %+v", favorites)
	}
}
