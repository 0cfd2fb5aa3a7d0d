package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// missingEnv - путь к несуществующему .env, чтобы тесты не зависели от рабочей директории
func missingEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadConfig(missingEnv(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AppName != "property-service" || cfg.Rest.PORT != "8080" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Auth.Issuer != "PropertyApi" || cfg.Auth.Audience != "PropertyApiUsers" || cfg.Auth.TTL != 7*24*time.Hour {
		t.Errorf("unexpected auth defaults %+v", cfg.Auth)
	}
	if cfg.Pagination.DefaultPageSize != 12 || cfg.Pagination.MaxPageSize != 0 {
		t.Errorf("unexpected pagination defaults %+v", cfg.Pagination)
	}
	if len(cfg.Cors.AllowedOrigins) != 1 || cfg.Cors.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected cors defaults %v", cfg.Cors.AllowedOrigins)
	}
	if cfg.RabbitMQ.Enabled || cfg.FluentBit.Enabled || cfg.OwnerCache.Enabled {
		t.Errorf("optional integrations must be disabled by default")
	}
	if cfg.RabbitMQ.ImportRetryTTL != 10*time.Second || cfg.RabbitMQ.ImportMaxRetries != 5 {
		t.Errorf("unexpected import retry defaults %+v", cfg.RabbitMQ)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "STORAGE_DRIVER=mongo\nMONGO_URI=mongodb://localhost:27017\nJWT_SECRET_KEY=from-file\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv не перезаписывает существующие переменные, t.Setenv восстановит их после теста
	for _, key := range []string{"STORAGE_DRIVER", "MONGO_URI", "JWT_SECRET_KEY", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage != StorageDriverMongo || cfg.Mongo.Database != "RealEstateDB" || cfg.Auth.SecretKey != "from-file" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Cors.AllowedOrigins) != 2 || cfg.Cors.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Cors.AllowedOrigins)
	}
}

func TestLoadConfigRequiredValues(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"STORAGE_DRIVER": "postgres", "DATABASE_URL": "", "JWT_SECRET_KEY": "s"},
		"mongo without uri":    {"STORAGE_DRIVER": "mongo", "MONGO_URI": "", "JWT_SECRET_KEY": "s"},
		"unknown driver":       {"STORAGE_DRIVER": "redis", "JWT_SECRET_KEY": "s"},
		"missing jwt secret":   {"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": ""},
		"rabbitmq without url": {"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": "s", "RABBITMQ_ENABLED": "true", "RABBITMQ_URL": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(missingEnv(t)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGetEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "maybe")

	if got := getEnvAsInt("SOME_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt = %d", got)
	}
	if got := getEnvAsBool("SOME_BOOL", true); !got {
		t.Errorf("getEnvAsBool = %v", got)
	}
}
