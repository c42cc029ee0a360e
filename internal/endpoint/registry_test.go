package endpoint

import (
	"errors"
	"testing"

	"github.com/nvara/traverse/internal/domain"
)

func validProfile(name string) domain.EndpointProfile {
	return domain.EndpointProfile{
		Name:       name,
		Host:       name + ".example.com",
		Port:       2022,
		Username:   "operator",
		Credential: "secret",
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(validProfile("lab")); err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := r.Lookup("lab")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if profile.Host != "lab.example.com" {
		t.Errorf("host = %q", profile.Host)
	}
}

func TestRegisterDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	original := validProfile("lab")
	r.Register(original)

	dup := validProfile("lab")
	dup.Host = "other.example.com"
	if err := r.Register(dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}

	// The existing profile is untouched
	profile, _ := r.Lookup("lab")
	if profile.Host != original.Host {
		t.Errorf("duplicate registration overwrote the original: %q", profile.Host)
	}
}

func TestRegisterInvalidProfile(t *testing.T) {
	r := NewRegistry()

	bad := validProfile("lab")
	bad.Port = 0
	if err := r.Register(bad); !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}

	bad = validProfile("")
	if err := r.Register(bad); !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("empty name err = %v, want ErrInvalidProfile", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Lookup("ghost"); !errors.Is(err, domain.ErrUnknownEndpoint) {
		t.Errorf("err = %v, want ErrUnknownEndpoint", err)
	}
	if _, err := r.Lookup(""); !errors.Is(err, domain.ErrUnknownEndpoint) {
		t.Errorf("empty name err = %v, want ErrUnknownEndpoint", err)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register(validProfile("lab"))

	r.Remove("lab")
	r.Remove("lab") // absent name is a no-op
	r.Remove("never-existed")

	if _, err := r.Lookup("lab"); !errors.Is(err, domain.ErrUnknownEndpoint) {
		t.Error("removed profile still resolvable")
	}
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(validProfile(name))
	}

	profiles := r.List()
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	if profiles[0].Name != "alpha" || profiles[2].Name != "zeta" {
		t.Errorf("list not sorted by name: %v", profiles)
	}
}

func TestReplaceAllDropsInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register(validProfile("old"))

	bad := validProfile("bad")
	bad.Host = ""
	r.ReplaceAll([]domain.EndpointProfile{validProfile("new"), bad})

	if _, err := r.Lookup("old"); err == nil {
		t.Error("replaced profile still resolvable")
	}
	if _, err := r.Lookup("new"); err != nil {
		t.Errorf("incoming profile missing: %v", err)
	}
	if _, err := r.Lookup("bad"); err == nil {
		t.Error("invalid incoming profile was kept")
	}
}

func TestSubscribeNotifiesOnReplace(t *testing.T) {
	r := NewRegistry()
	ch, cancel := r.Subscribe()
	defer cancel()

	r.ReplaceAll([]domain.EndpointProfile{validProfile("lab")})

	select {
	case <-ch:
	default:
		t.Fatal("no tick after ReplaceAll")
	}

	// Ticks coalesce rather than queue
	r.ReplaceAll(nil)
	r.ReplaceAll(nil)
	select {
	case <-ch:
	default:
		t.Fatal("no tick after further replaces")
	}
	select {
	case <-ch:
		t.Fatal("ticks queued instead of coalescing")
	default:
	}
}

func TestSubscribeCancel(t *testing.T) {
	r := NewRegistry()
	ch, cancel := r.Subscribe()
	cancel()

	r.ReplaceAll([]domain.EndpointProfile{validProfile("lab")})
	select {
	case <-ch:
		t.Fatal("cancelled subscription still received a tick")
	default:
	}
}
