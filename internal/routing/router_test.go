package routing

import (
	"testing"

	"github.com/Natnat0905/GeoChat/internal/provider/echo"
	"github.com/Natnat0905/GeoChat/internal/provider/openai"
)

func TestRouterProvider(t *testing.T) {
	r := New()
	e := echo.New()
	o := openai.New("sk-test")
	r.Register("echo", e)
	r.Register("openai", o)

	if p, name := r.ProviderFor("openai"); p != o || name != "openai" {
		t.Fatalf("expected openai provider, got %T %q", p, name)
	}
	if p, name := r.ProviderFor("missing"); p != e || name != "echo" {
		t.Fatalf("expected default echo provider, got %T %q", p, name)
	}
	if got := r.Names(); len(got) != 2 || got[0] != "echo" || got[1] != "openai" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestRouterEmpty(t *testing.T) {
	if p, name := New().ProviderFor("openai"); p != nil || name != "" {
		t.Fatalf("expected no provider, got %T %q", p, name)
	}
}
