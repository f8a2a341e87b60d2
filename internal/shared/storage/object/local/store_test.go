package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, err := store.Save(context.Background(), "user-1", "report_2024-06-01.json", strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len(`{"ok":true}`)) {
		t.Errorf("unexpected size %d", size)
	}
	if key == "" || strings.Contains(key, "..") {
		t.Errorf("unexpected key %q", key)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content %q", data)
	}
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, err := store.Save(context.Background(), "user-1", "../escape.json", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for traversal file name")
	}
}

func TestOpenRejectsTraversalKey(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatal("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected error for absolute key")
	}
}

func TestSaveKeysDifferPerCall(t *testing.T) {
	store := New(t.TempDir())
	k1, _, err := store.Save(context.Background(), "user-1", "r.json", strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	k2, _, err := store.Save(context.Background(), "user-1", "r.json", strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Fatalf("expected distinct keys, got %q twice", k1)
	}
}
