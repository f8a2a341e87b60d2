package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" http://a.example , ,http://b.example ")
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeEnv(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"prod", "production"},
		{"Production", "production"},
		{"staging", "staging"},
		{"local", "local"},
		{"", "dev"},
		{"nonsense", "dev"},
	}
	for _, tt := range tests {
		if got := normalizeEnv(tt.in); got != tt.want {
			t.Errorf("normalizeEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStoreType(t *testing.T) {
	if got := normalizeStoreType("S3"); got != "s3" {
		t.Errorf("expected s3, got %q", got)
	}
	if got := normalizeStoreType("anything"); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
}

func TestLoadEnvFilesDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# comment\nWEBHOOK_URL=https://hooks.example/from-file\nEMPTY_LINE_OK=yes\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("WEBHOOK_URL", "https://hooks.example/from-env")
	t.Setenv("EMPTY_LINE_OK", "")

	loadEnvFiles(envFile)

	if got := os.Getenv("WEBHOOK_URL"); got != "https://hooks.example/from-env" {
		t.Errorf("existing env overwritten: %q", got)
	}
	if got := os.Getenv("EMPTY_LINE_OK"); got != "yes" {
		t.Errorf("expected file value for unset key, got %q", got)
	}
}

func TestLoadEnvFilesStripsQuotes(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(`S3_BUCKET="my-bucket"`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("S3_BUCKET", "")

	loadEnvFiles(envFile)

	if got := os.Getenv("S3_BUCKET"); got != "my-bucket" {
		t.Errorf("expected quotes stripped, got %q", got)
	}
}
