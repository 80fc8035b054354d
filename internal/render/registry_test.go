package render

import "testing"

func TestRegistryRoundTrip(t *testing.T) {
	const name = "test-backend"
	Register(name, func() Backend { return NewSoftware(Options{Contexts: 3}) })
	t.Cleanup(func() { Unregister(name) })

	if !IsRegistered(name) {
		t.Fatalf("IsRegistered(%q) = false after Register", name)
	}
	found := false
	for _, n := range Available() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("Available() = %v, missing %q", Available(), name)
	}
	b := Get(name)
	if b == nil {
		t.Fatalf("Get(%q) = nil", name)
	}
	if b.Contexts() != 3 {
		t.Fatalf("factory options lost: Contexts = %d", b.Contexts())
	}

	Unregister(name)
	if Get(name) != nil {
		t.Fatalf("Get after Unregister returned a backend")
	}
}

func TestSoftwareAlwaysRegistered(t *testing.T) {
	if !IsRegistered(BackendSoftware) {
		t.Fatalf("software backend not registered on import")
	}
	if Get(BackendSoftware) == nil {
		t.Fatalf("Get(software) = nil with software registered")
	}
}
