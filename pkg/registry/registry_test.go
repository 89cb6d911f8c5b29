package registry

import "testing"

func TestRegisterAndFindRoundTrip(t *testing.T) {
	r := New()
	if err := r.Register("root", "", true, map[string]string{"brand_name": "Generic"}, ""); err != nil {
		t.Fatalf("unexpected error registering root: %v", err)
	}
	if err := r.Register("child", "Foo/1.0", false, map[string]string{"model_name": "Foo"}, "root"); err != nil {
		t.Fatalf("unexpected error registering child: %v", err)
	}

	dev, ok := r.Find("child")
	if !ok {
		t.Fatalf("expected child to be found")
	}
	if dev.ID != "child" || dev.UA != "Foo/1.0" {
		t.Fatalf("unexpected device record: %+v", dev)
	}
}

func TestRegisterWithUnregisteredParentFails(t *testing.T) {
	r := New()
	err := r.Register("orphan", "UA/1.0", false, nil, "nonexistent")
	if err == nil {
		t.Fatalf("expected error registering a device with an unregistered parent")
	}
	var target *ErrUnregisteredParent
	if !errorsAs(err, &target) {
		t.Fatalf("expected ErrUnregisteredParent, got %T: %v", err, err)
	}
	if target.ID != "orphan" || target.Parent != "nonexistent" {
		t.Fatalf("unexpected error fields: %+v", target)
	}
}

func TestFindInheritsCapabilitiesFromParent(t *testing.T) {
	r := New()
	_ = r.Register("generic", "", true, map[string]string{
		"brand_name": "Generic",
		"model_name": "Generic",
	}, "")
	_ = r.Register("generic_mobile", "", false, map[string]string{
		"model_name":     "Generic Mobile",
		"is_wireless_device": "true",
	}, "generic")

	dev, ok := r.Find("generic_mobile")
	if !ok {
		t.Fatalf("expected generic_mobile to be found")
	}
	if dev.Capabilities["brand_name"] != "Generic" {
		t.Fatalf("expected brand_name inherited from parent, got %q", dev.Capabilities["brand_name"])
	}
	if dev.Capabilities["model_name"] != "Generic Mobile" {
		t.Fatalf("expected model_name to be the child's own override, got %q", dev.Capabilities["model_name"])
	}
	if dev.Capabilities["is_wireless_device"] != "true" {
		t.Fatalf("expected child-only capability to survive, got %q", dev.Capabilities["is_wireless_device"])
	}
}

func TestFindDoesNotMutateStoredRecord(t *testing.T) {
	r := New()
	_ = r.Register("root", "", true, map[string]string{"brand_name": "Generic"}, "")
	_ = r.Register("child", "UA/1.0", false, map[string]string{"model_name": "Child"}, "root")

	first, _ := r.Find("child")
	first.Capabilities["brand_name"] = "Tampered"

	second, _ := r.Find("child")
	if second.Capabilities["brand_name"] == "Tampered" {
		t.Fatalf("Find must return a fresh merge, not a reference into stored state")
	}
}

func TestFindUnknownIDReportsNotFound(t *testing.T) {
	r := New()
	if _, ok := r.Find("nope"); ok {
		t.Fatalf("expected Find to report false for an unregistered id")
	}
}

func TestLenCountsRegisteredDevices(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry to have length 0")
	}
	_ = r.Register("a", "", true, nil, "")
	_ = r.Register("b", "", false, nil, "a")
	if r.Len() != 2 {
		t.Fatalf("expected length 2, got %d", r.Len())
	}
}

// errorsAs is a tiny local shim so this file doesn't need to import
// "errors" just for the one As call in TestRegisterWithUnregisteredParentFails.
func errorsAs(err error, target **ErrUnregisteredParent) bool {
	if e, ok := err.(*ErrUnregisteredParent); ok {
		*target = e
		return true
	}
	return false
}
