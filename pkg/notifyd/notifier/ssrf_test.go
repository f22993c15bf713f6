package notifier

import "testing"

func TestSSRFGuardBlocksLoopback(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{})
	if err := g.Check("http://127.0.0.1:9999/webhook"); err == nil {
		t.Fatalf("expected loopback URL to be rejected")
	}
}

func TestSSRFGuardBlocksPrivateRange(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{})
	if err := g.Check("http://192.168.1.50/webhook"); err == nil {
		t.Fatalf("expected private-range URL to be rejected")
	}
}

func TestSSRFGuardBlocksLinkLocalMetadata(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{})
	if err := g.Check("http://169.254.169.254/latest/meta-data/"); err == nil {
		t.Fatalf("expected link-local metadata URL to be rejected")
	}
}

func TestSSRFGuardAllowsAllowlistedLoopback(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{AllowedHosts: []string{"127.0.0.1"}})
	if err := g.Check("http://127.0.0.1:9999/webhook"); err != nil {
		t.Fatalf("expected allow-listed host to pass, got %v", err)
	}
}

func TestSSRFGuardAllowsPublicAddress(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{})
	if err := g.Check("http://8.8.8.8/webhook"); err != nil {
		t.Fatalf("expected public address to pass, got %v", err)
	}
}

func TestSSRFGuardRejectsNonHTTPScheme(t *testing.T) {
	g := NewSSRFGuard(SSRFGuardConfig{})
	if err := g.Check("file:///etc/passwd"); err == nil {
		t.Fatalf("expected file scheme to be rejected")
	}
}
