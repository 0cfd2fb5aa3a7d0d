package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	token_adapter "real-estate-system/internal/adapters/jwt"
	"real-estate-system/internal/adapters/memory"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/usecase"
	"testing"
	"time"
)

type testLogger struct{}

func (testLogger) Info(string, port.Fields)         {}
func (testLogger) Warn(string, port.Fields)         {}
func (testLogger) Error(string, error, port.Fields) {}
func (testLogger) Debug(string, port.Fields)        {}
func (l testLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

// unavailableProperties имитирует недоступное хранилище
type unavailableProperties struct {
	port.PropertyRepositoryPort
}

func (unavailableProperties) FindAll(context.Context, domain.PropertyFilter) ([]domain.Property, error) {
	return nil, fmt.Errorf("failed to query properties: %w", domain.ErrStorageUnavailable)
}

func (unavailableProperties) Count(context.Context, domain.PropertyFilter) (int64, error) {
	return 0, fmt.Errorf("failed to count properties: %w", domain.ErrStorageUnavailable)
}

type testEnv struct {
	handler    http.Handler
	properties *memory.PropertyRepository
	users      *memory.UserRepository
}

func newTestEnv(t *testing.T, properties port.PropertyRepositoryPort, seed ...domain.Property) *testEnv {
	t.Helper()

	store := memory.NewPropertyRepository(seed...)
	if properties == nil {
		properties = store
	}
	owners := memory.NewOwnerRepository(
		domain.Owner{IDOwner: "o1", Name: "Alice", Address: "1 Elm St"},
		domain.Owner{IDOwner: "o2", Name: "Bob", Address: "2 Oak St"},
	)
	traces := memory.NewPropertyTraceRepository()
	users := memory.NewUserRepository()

	tokens, err := token_adapter.NewTokenService(token_adapter.Config{
		SigningKey: "test-secret", Issuer: "PropertyApi", Audience: "PropertyApiUsers", TTL: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	enricher := usecase.NewPropertyEnricher(owners)
	handlers := Handlers{
		Properties: NewPropertyHandler(
			usecase.NewListPropertiesUseCase(properties, enricher),
			usecase.NewListPropertiesPaginatedUseCase(properties, enricher),
			usecase.NewCountPropertiesUseCase(properties),
			usecase.NewGetPropertyUseCase(properties, enricher),
			usecase.NewCreatePropertyUseCase(properties, nil),
			usecase.NewUpdatePropertyUseCase(properties, nil),
			usecase.NewDeletePropertyUseCase(properties, nil),
			PaginationConfig{DefaultPageSize: 12, MaxPageSize: 50},
		),
		Owners: NewOwnerHandler(
			usecase.NewListOwnersUseCase(owners),
			usecase.NewGetOwnerUseCase(owners),
			usecase.NewCreateOwnerUseCase(owners),
		),
		Traces: NewTraceHandler(
			usecase.NewGetPropertyTracesUseCase(traces),
			usecase.NewGetAllTracesUseCase(traces),
			usecase.NewCreateTraceUseCase(traces),
			usecase.NewDeleteTraceUseCase(traces),
		),
		Auth: NewAuthHandler(AuthUseCases{
			Register:       usecase.NewRegisterUserUseCase(users, tokens),
			Login:          usecase.NewLoginUserUseCase(users, tokens),
			Profile:        usecase.NewGetProfileUseCase(users),
			Preferences:    usecase.NewUpdatePreferencesUseCase(users),
			UpdateProfile:  usecase.NewUpdateProfileUseCase(users),
			AddFavorite:    usecase.NewAddToFavoritesUseCase(users),
			RemoveFavorite: usecase.NewRemoveFromFavoritesUseCase(users),
			Favorites:      usecase.NewGetUserFavoritesUseCase(users, properties, enricher),
		}),
		Health: NewHealthHandler(),
	}

	return &testEnv{
		handler:    NewRouter(nil, handlers, usecase.NewValidateTokenUseCase(tokens), testLogger{}),
		properties: store,
		users:      users,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
