package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLoginInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.yaml")
	body := "address: ap.example.net\nport: 38281\nslot: Alice\npassword: hunter2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := LoadLoginInfo(path)
	if err != nil {
		t.Fatalf("LoadLoginInfo: %v", err)
	}
	want := LoginInfo{Address: "ap.example.net", Port: 38281, Slot: "Alice", Password: "hunter2"}
	if info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestLoadLoginInfoDefaultsAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.yaml")
	if err := os.WriteFile(path, []byte("port: 12345\nslot: Bob\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := LoadLoginInfo(path)
	if err != nil {
		t.Fatalf("LoadLoginInfo: %v", err)
	}
	if info.Address != "archipelago.gg" {
		t.Errorf("address = %q, want archipelago.gg default", info.Address)
	}
}

func TestLoadLoginInfoErrors(t *testing.T) {
	if _, err := LoadLoginInfo(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should error")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte(":\t not yaml {"), 0o644)
	if _, err := LoadLoginInfo(path); err == nil {
		t.Error("malformed yaml should error")
	}
}
