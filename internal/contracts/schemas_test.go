package contracts

import (
	"strings"
	"testing"
)

func TestGenerateKeyFromPath(t *testing.T) {
	cases := map[string]string{
		"schemas/events/property-imported/v1.json": "PropertyImportedEvent/1.0.0",
		"schemas/events/property-changed/v2.json":  "PropertyChangedEvent/2.0.0",
		"schemas/events/broken.json":               "",
	}
	for path, want := range cases {
		if got := generateKeyFromPath(path); got != want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestEmbeddedSchemasCompile(t *testing.T) {
	schemas, err := loadSchemas()
	if err != nil {
		t.Fatalf("loadSchemas: %v", err)
	}
	for _, key := range []string{"PropertyImportedEvent/1.0.0", "PropertyChangedEvent/1.0.0"} {
		if _, ok := schemas[key]; !ok {
			t.Errorf("schema %s is not registered", key)
		}
	}
}

func TestValidatePropertyImported(t *testing.T) {
	valid := `{
		"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70",
		"occurredAt": "2026-10-01T12:00:00Z",
		"property": {"name": "Loft", "address": "1 Main St", "price": 250000, "year": 2001}
	}`
	if err := ValidateEvent(PropertyImportedEventType, EventVersionV1, []byte(valid)); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	invalid := map[string]string{
		"missing address": `{"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70", "occurredAt": "2026-10-01T12:00:00Z",
			"property": {"name": "Loft", "price": 1}}`,
		"negative price": `{"eventId": "5f0c6a3e-8a4b-4c2e-9d1f-2b3c4d5e6f70", "occurredAt": "2026-10-01T12:00:00Z",
			"property": {"name": "Loft", "address": "x", "price": -1}}`,
		"bad uuid": `{"eventId": "nope", "occurredAt": "2026-10-01T12:00:00Z",
			"property": {"name": "Loft", "address": "x", "price": 1}}`,
		"not json": `{`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateEvent(PropertyImportedEventType, EventVersionV1, []byte(body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateUnknownEvent(t *testing.T) {
	err := ValidateEvent("UnknownEvent", EventVersionV1, []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestValidatePropertyRequest(t *testing.T) {
	if err := ValidateRequest(PropertyRequestSchema, []byte(`{"name": "Loft", "address": "1 Main St", "price": 10, "idOwner": null}`)); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	for name, body := range map[string]string{
		"price as string": `{"name": "Loft", "address": "x", "price": "10"}`,
		"missing name":    `{"address": "x", "price": 10}`,
		"array body":      `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			if err := ValidateRequest(PropertyRequestSchema, []byte(body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRequestKeyFromPath(t *testing.T) {
	if got := requestKeyFromPath("schemas/requests/property/v1.json"); got != "property/v1" {
		t.Fatalf("got %q", got)
	}
	if got := requestKeyFromPath("schemas/requests/property.json"); got != "" {
		t.Fatalf("got %q", got)
	}
}
