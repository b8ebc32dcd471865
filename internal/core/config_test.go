package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jo-hoe/rokkastyle/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
store:
  type: redis
  connectionString: "redis://localhost:6379/0"
styles:
  - name: thumbnail
    label: Thumbnail (100x100)
    effects:
      - id: image_scale_and_crop
        weight: 1
        data:
          width: 100
          height: 100
          anchor: center-center
      - id: image_rotate
        weight: 2
        data:
          degrees: -90
          bgcolor: "#ffffff"
`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Port != 8080 {
		t.Errorf("Expected port to be 8080, got %d", config.Port)
	}
	if config.Store.Type != "redis" {
		t.Errorf("Expected store type redis, got '%s'", config.Store.Type)
	}
	if config.Store.ConnectionString != "redis://localhost:6379/0" {
		t.Errorf("Unexpected connection string '%s'", config.Store.ConnectionString)
	}
	if len(config.Styles) != 1 {
		t.Fatalf("Expected 1 style, got %d", len(config.Styles))
	}

	thumbnail := config.Styles[0]
	if thumbnail.Label != "Thumbnail (100x100)" {
		t.Errorf("Unexpected label '%s'", thumbnail.Label)
	}
	if len(thumbnail.Effects) != 2 {
		t.Fatalf("Expected 2 effects, got %d", len(thumbnail.Effects))
	}
	rotate := thumbnail.Effects[1]
	if rotate.ID != "image_rotate" || rotate.Weight != 2 {
		t.Errorf("Unexpected effect %+v", rotate)
	}
	if rotate.Data["degrees"] != -90 {
		t.Errorf("Expected degrees -90, got %v", rotate.Data["degrees"])
	}
	if rotate.Data["bgcolor"] != "#ffffff" {
		t.Errorf("Expected bgcolor #ffffff, got %v", rotate.Data["bgcolor"])
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "port: 9000\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Store.Type != store.TypeSQLite {
		t.Errorf("Expected default store type sqlite, got '%s'", config.Store.Type)
	}
	if config.Store.ConnectionString != ":memory:" {
		t.Errorf("Expected default connection string :memory:, got '%s'", config.Store.ConnectionString)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.yaml")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected config to be nil when file doesn't exist")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "port: [unclosed")); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}

func TestLoadConfig_InvalidStyles(t *testing.T) {
	tests := map[string]string{
		"empty name": `styles:
  - name: ""
`,
		"duplicate name": `styles:
  - name: hero
  - name: hero
`,
		"blank name": `styles:
  - name: "   "
`,
		"duplicate name after trimming": `styles:
  - name: hero
  - name: "hero "
`,
		"effect without id": `styles:
  - name: hero
    effects:
      - weight: 1
`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Fatal("Expected validation error")
			}
		})
	}
}
