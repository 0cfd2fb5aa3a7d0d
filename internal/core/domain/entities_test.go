package domain

import (
	"errors"
	"testing"
)

func TestPropertyValidate(t *testing.T) {
	valid := Property{Name: "n", Address: "a", Price: 0}
	if err := valid.Validate(); err != nil {
		t.Fatalf("zero price is allowed: %v", err)
	}

	for name, p := range map[string]Property{
		"blank name":    {Name: "  ", Address: "a"},
		"blank address": {Name: "n"},
		"negative":      {Name: "n", Address: "a", Price: -0.01},
		"negative year": {Name: "n", Address: "a", Year: -1},
	} {
		t.Run(name, func(t *testing.T) {
			err := p.Validate()
			var vErr *ValidationError
			if !errors.Is(err, ErrValidation) || !errors.As(err, &vErr) || vErr.Field == "" {
				t.Fatalf("expected field validation error, got %v", err)
			}
		})
	}
}

func TestNewPropertyAssignsFreshID(t *testing.T) {
	a := NewProperty(Property{IDProperty: "client", Name: "n"})
	b := NewProperty(Property{Name: "n"})
	if a.IDProperty == "client" || a.IDProperty == "" || a.IDProperty == b.IDProperty {
		t.Fatalf("ids must be fresh and unique: %q %q", a.IDProperty, b.IDProperty)
	}
}

func TestDistinctOwnerIDs(t *testing.T) {
	got := DistinctOwnerIDs([]Property{{IDOwner: "b"}, {IDOwner: ""}, {IDOwner: "a"}, {IDOwner: "b"}})
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("got %v", got)
	}
}

func TestNewUserHashesPassword(t *testing.T) {
	u, err := NewUser(RegisterData{Username: " ann ", Email: "ann@example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "ann" || u.PasswordHash == "secret1" || !u.IsActive || u.FavoriteProperties == nil {
		t.Fatalf("unexpected user %+v", u)
	}
	if !u.CheckPassword("secret1") || u.CheckPassword("secret2") {
		t.Fatal("CheckPassword mismatch")
	}
}

func TestPreferencesResolveResetsMissingFields(t *testing.T) {
	theme := "dark"
	off := false
	got := PreferencesUpdate{Theme: &theme, Notifications: &off}.Resolve()
	if got != (UserPreferences{Theme: "dark", Notifications: false, Language: DefaultLanguage}) {
		t.Fatalf("got %+v", got)
	}
	if (PreferencesUpdate{}).Resolve() != DefaultPreferences() {
		t.Fatal("empty update must resolve to defaults")
	}
}

func TestProfileUpdateNormalize(t *testing.T) {
	avatar := "http://a"
	got, err := ProfileUpdate{FirstName: " A ", LastName: "B ", Avatar: &avatar}.Normalize()
	if err != nil || got.FirstName != "A" || got.LastName != "B" || got.Avatar == nil || *got.Avatar != avatar {
		t.Fatalf("got %+v, %v", got, err)
	}
	if _, err := (ProfileUpdate{FirstName: "A"}).Normalize(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewPropertyTrace(t *testing.T) {
	if _, err := NewPropertyTrace(PropertyTrace{IDProperty: "p"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	tr, err := NewPropertyTrace(PropertyTrace{Name: "Sale", IDProperty: "p"})
	if err != nil || tr.IDPropertyTrace == "" || tr.DateSale.IsZero() {
		t.Fatalf("got %+v, %v", tr, err)
	}
}
