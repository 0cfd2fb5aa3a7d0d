package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

const (
	eventsRoot   = "schemas/events"
	requestsRoot = "schemas/requests"

	// PropertyRequestSchema - тело POST/PUT /api/properties
	PropertyRequestSchema = "property/v1"
)

var (
	compiledSchemas map[string]*jsonschema.Schema
	requestSchemas  map[string]*jsonschema.Schema
	compileErr      error
	compileOnce     sync.Once
)

// loadSchemas компилирует все схемы один раз за время жизни процесса.
func loadSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchemas, compileErr = compileAll(schemasFS, eventsRoot, generateKeyFromPath)
		if compileErr != nil {
			return
		}
		requestSchemas, compileErr = compileAll(schemasFS, requestsRoot, requestKeyFromPath)
	})
	return compiledSchemas, compileErr
}

func compileAll(fsys fs.FS, root string, keyFn func(string) string) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading schemas: %w", err)
	}

	result := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		key := keyFn(path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not match %s/<name>/v<N>.json", path, root)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		result[key] = schema
	}
	return result, nil
}

// generateKeyFromPath: "schemas/events/property-imported/v1.json" -> "PropertyImportedEvent/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, eventsRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Event")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// requestKeyFromPath: "schemas/requests/property/v1.json" -> "property/v1".
func requestKeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, requestsRoot+"/"), ".json")
	if parts := strings.Split(trimmed, "/"); len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}
	return trimmed
}

// ValidateEvent проверяет тело сообщения по схеме события eventType/eventVersion.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}

	key := eventType + "/" + eventVersion
	schema, ok := schemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateRequest проверяет тело HTTP-запроса по схеме name ("property/v1").
func ValidateRequest(name string, body []byte) error {
	if _, err := loadSchemas(); err != nil {
		return err
	}

	schema, ok := requestSchemas[name]
	if !ok {
		return fmt.Errorf("request schema '%s' not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("request body does not match schema: %w", err)
	}
	return nil
}
