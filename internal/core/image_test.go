package core

import (
	"slices"
	"testing"
)

func TestNewImageDefaults(t *testing.T) {
	t.Parallel()
	img := NewImage("redis:7-alpine")

	if got := img.Descriptor(); got != "redis:7-alpine" {
		t.Fatalf("Descriptor() = %q", got)
	}
	strategies := img.WaitStrategies()
	if len(strategies) != 1 {
		t.Fatalf("got %d default wait strategies, want 1", len(strategies))
	}
	if _, ok := strategies[0].(NothingStrategy); !ok {
		t.Fatalf("default wait strategy is %T, want NothingStrategy", strategies[0])
	}
}

func TestRunnableImageCopyOnWrite(t *testing.T) {
	t.Parallel()
	base := NewImage("postgres:16").WithEnv("POSTGRES_PASSWORD", "secret")

	derived := base.
		WithEnv("POSTGRES_DB", "app").
		WithExposedPort(5432).
		WithMount("/data", "/var/lib/postgresql/data").
		WithNetwork("test-net")

	// The base must be untouched by every derivation.
	if len(base.EnvVars()) != 1 {
		t.Errorf("base env grew to %v", base.EnvVars())
	}
	if len(base.ExposedPorts()) != 0 {
		t.Errorf("base exposed ports grew to %v", base.ExposedPorts())
	}
	if len(base.Mounts()) != 0 {
		t.Errorf("base mounts grew to %v", base.Mounts())
	}
	if base.Network() != "" {
		t.Errorf("base network became %q", base.Network())
	}

	if got := derived.EnvVars()["POSTGRES_DB"]; got != "app" {
		t.Errorf("derived env POSTGRES_DB = %q", got)
	}
	if !slices.Equal(derived.ExposedPorts(), []int{5432}) {
		t.Errorf("derived exposed ports = %v", derived.ExposedPorts())
	}
	if derived.Network() != "test-net" {
		t.Errorf("derived network = %q", derived.Network())
	}
}

func TestRunnableImageEnvList(t *testing.T) {
	t.Parallel()
	img := NewImage("alpine").
		WithEnv("ZED", "3").
		WithEnv("ALPHA", "1").
		WithEnv("MIKE", "2")

	want := []string{"ALPHA=1", "MIKE=2", "ZED=3"}
	if got := img.envList(); !slices.Equal(got, want) {
		t.Fatalf("envList() = %v, want %v", got, want)
	}
}

func TestRunnableImageEnvOverwrite(t *testing.T) {
	t.Parallel()
	img := NewImage("alpine").WithEnv("KEY", "old").WithEnv("KEY", "new")
	if got := img.EnvVars()["KEY"]; got != "new" {
		t.Fatalf("env KEY = %q, want new", got)
	}
	if got := len(img.EnvVars()); got != 1 {
		t.Fatalf("env has %d entries, want 1", got)
	}
}

func TestRunnableImageBinds(t *testing.T) {
	t.Parallel()
	img := NewImage("alpine").
		WithMount("/host/a", "/ctr/a").
		WithMount("/host/b", "/ctr/b")

	want := []string{"/host/a:/ctr/a", "/host/b:/ctr/b"}
	if got := img.binds(); !slices.Equal(got, want) {
		t.Fatalf("binds() = %v, want %v", got, want)
	}
}

func TestWithWaitForReplaces(t *testing.T) {
	t.Parallel()
	img := NewImage("alpine").
		WithWaitFor(ForLog("ready")).
		WithWaitFor(ForHealthcheck(), ForLog("listening"))

	strategies := img.WaitStrategies()
	if len(strategies) != 2 {
		t.Fatalf("got %d strategies, want 2 (WithWaitFor must replace, not append)", len(strategies))
	}
	if _, ok := strategies[0].(HealthStrategy); !ok {
		t.Fatalf("first strategy is %T, want HealthStrategy", strategies[0])
	}
}

func TestWithMappedPortOrder(t *testing.T) {
	t.Parallel()
	img := NewImage("alpine").WithMappedPort(8080, 80)

	mappings := img.PortMappings()
	if len(mappings) != 1 {
		t.Fatalf("got %d mappings, want 1", len(mappings))
	}
	if mappings[0].Host != 8080 || mappings[0].Internal != 80 {
		t.Fatalf("mapping = %+v, want host 8080 -> internal 80", mappings[0])
	}
}
