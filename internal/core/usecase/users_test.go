package usecase

import (
	"context"
	"errors"
	"real-estate-system/internal/adapters/memory"
	"real-estate-system/internal/core/domain"
	"testing"

	"github.com/google/uuid"
)

func registerData(username, email string) domain.RegisterData {
	return domain.RegisterData{Username: username, Email: email, Password: "secret1", FirstName: "Ann", LastName: "Lee"}
}

func TestRegisterUser(t *testing.T) {
	users := memory.NewUserRepository()
	uc := NewRegisterUserUseCase(users, stubTokens{})

	result, err := uc.Execute(context.Background(), registerData("ann", "ann@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Token != "token-ann" || result.User.PasswordHash == "secret1" || result.User.Role != domain.RoleUser {
		t.Fatalf("unexpected result %+v", result.User)
	}
	if result.User.Preferences != domain.DefaultPreferences() {
		t.Fatalf("unexpected preferences %+v", result.User.Preferences)
	}

	cases := map[string]struct {
		data domain.RegisterData
		want error
	}{
		"same username": {registerData("ann", "other@example.com"), domain.ErrUsernameInUse},
		"same email":    {registerData("bob", "ann@example.com"), domain.ErrEmailInUse},
		"invalid email": {registerData("bob", "bob"), domain.ErrValidation},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), tc.data); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	users := memory.NewUserRepository()
	if _, err := NewRegisterUserUseCase(users, stubTokens{}).Execute(context.Background(), registerData("ann", "ann@example.com")); err != nil {
		t.Fatal(err)
	}

	inactive, _ := domain.NewUser(registerData("ghost", "ghost@example.com"))
	inactive.IsActive = false
	if err := users.Create(context.Background(), inactive); err != nil {
		t.Fatal(err)
	}

	uc := NewLoginUserUseCase(users, stubTokens{})

	result, err := uc.Execute(context.Background(), "ann", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if result.User.LastLogin == nil {
		t.Fatal("login must set last login")
	}
	stored, _ := users.FindByID(context.Background(), result.User.ID)
	if stored.LastLogin == nil {
		t.Fatal("last login must be persisted")
	}

	for name, creds := range map[string][2]string{
		"wrong password": {"ann", "nope123"},
		"unknown user":   {"nobody", "secret1"},
		"inactive user":  {"ghost", "secret1"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), creds[0], creds[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestProfileUseCases(t *testing.T) {
	users := memory.NewUserRepository()
	registered, err := NewRegisterUserUseCase(users, stubTokens{}).Execute(context.Background(), registerData("ann", "ann@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	id := registered.User.ID

	if _, err := NewGetProfileUseCase(users).Execute(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	language := "ru"
	ok, err := NewUpdatePreferencesUseCase(users).Execute(context.Background(), id, domain.PreferencesUpdate{Language: &language})
	if err != nil || !ok {
		t.Fatalf("update preferences = (%v, %v)", ok, err)
	}
	profile, err := NewGetProfileUseCase(users).Execute(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Preferences != (domain.UserPreferences{Theme: domain.DefaultTheme, Notifications: true, Language: "ru"}) {
		t.Fatalf("unexpected preferences %+v", profile.Preferences)
	}

	updateUC := NewUpdateProfileUseCase(users)
	if _, err := updateUC.Execute(context.Background(), id, domain.ProfileUpdate{FirstName: "A"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := updateUC.Execute(context.Background(), uuid.New(), domain.ProfileUpdate{FirstName: "A", LastName: "B"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	empty := ""
	user, err := updateUC.Execute(context.Background(), id, domain.ProfileUpdate{FirstName: " Anna ", LastName: "Lee", Avatar: &empty})
	if err != nil {
		t.Fatal(err)
	}
	if user.FirstName != "Anna" || user.Avatar != nil {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestUserFavorites(t *testing.T) {
	users := memory.NewUserRepository()
	registered, _ := NewRegisterUserUseCase(users, stubTokens{}).Execute(context.Background(), registerData("ann", "ann@example.com"))
	id := registered.User.ID

	store := newCountingProperties(seededProperties()...)
	favoritesUC := NewGetUserFavoritesUseCase(users, store, NewPropertyEnricher(seededOwners()))

	empty, err := favoritesUC.Execute(context.Background(), id)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty favorites, got %v, %v", empty, err)
	}

	addUC := NewAddToFavoritesUseCase(users)
	for _, pid := range []string{"p3", "deleted", "p1", "p3"} {
		if ok, err := addUC.Execute(context.Background(), id, pid); err != nil || !ok {
			t.Fatalf("add %s = (%v, %v)", pid, ok, err)
		}
	}

	got, err := favoritesUC.Execute(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].IDProperty != "p3" || got[1].IDProperty != "p1" || got[0].Owner == nil {
		t.Fatalf("unexpected favorites %+v", got)
	}

	if ok, _ := NewRemoveFromFavoritesUseCase(users).Execute(context.Background(), id, "p3"); !ok {
		t.Fatal("remove must succeed for an existing user")
	}
	if ok, _ := addUC.Execute(context.Background(), uuid.New(), "p1"); ok {
		t.Fatal("add must report false for an unknown user")
	}
	if _, err := favoritesUC.Execute(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTraceUseCases(t *testing.T) {
	traces := memory.NewPropertyTraceRepository()
	createUC := NewCreateTraceUseCase(traces)

	if _, err := createUC.Execute(context.Background(), domain.PropertyTrace{Name: "Sale"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	created, err := createUC.Execute(context.Background(), domain.PropertyTrace{Name: "Sale", IDProperty: "p1", Value: 10})
	if err != nil {
		t.Fatal(err)
	}
	if created.IDPropertyTrace == "" || created.DateSale.IsZero() {
		t.Fatalf("id and sale date must be assigned, got %+v", created)
	}

	byProperty, _ := NewGetPropertyTracesUseCase(traces).Execute(context.Background(), "p1")
	all, _ := NewGetAllTracesUseCase(traces).Execute(context.Background())
	if len(byProperty) != 1 || len(all) != 1 {
		t.Fatalf("unexpected traces %v %v", byProperty, all)
	}

	deleteUC := NewDeleteTraceUseCase(traces)
	if ok, _ := deleteUC.Execute(context.Background(), created.IDPropertyTrace); !ok {
		t.Fatal("delete must succeed")
	}
	if ok, _ := deleteUC.Execute(context.Background(), created.IDPropertyTrace); ok {
		t.Fatal("second delete must report false")
	}
}

func TestOwnerUseCases(t *testing.T) {
	owners := memory.NewOwnerRepository()

	if _, err := NewCreateOwnerUseCase(owners).Execute(context.Background(), domain.Owner{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	created, err := NewCreateOwnerUseCase(owners).Execute(context.Background(), domain.Owner{Name: "Carol"})
	if err != nil || created.IDOwner == "" {
		t.Fatalf("create owner = (%+v, %v)", created, err)
	}

	got, err := NewGetOwnerUseCase(owners).Execute(context.Background(), created.IDOwner)
	if err != nil || got == nil || got.Name != "Carol" {
		t.Fatalf("get owner = (%+v, %v)", got, err)
	}
	missing, err := NewGetOwnerUseCase(owners).Execute(context.Background(), "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing owner must be (nil, nil), got (%+v, %v)", missing, err)
	}

	all, err := NewListOwnersUseCase(owners).Execute(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("list owners = (%v, %v)", all, err)
	}
}
