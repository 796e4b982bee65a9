package orgapi

import (
	"flag"
	"reflect"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("orgapi", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want localhost:8090", cfg.HTTPAddr)
	}
	if cfg.GRPCAddr != "localhost:8091" {
		t.Fatalf("GRPCAddr = %q, want localhost:8091", cfg.GRPCAddr)
	}
	if cfg.DBPath != "data/orgapi.db" {
		t.Fatalf("DBPath = %q, want data/orgapi.db", cfg.DBPath)
	}
	if cfg.SeedDemo {
		t.Fatal("SeedDemo = true, want false")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ORGDASH_ORGAPI_DEFAULT_USER", "user-1")
	t.Setenv("ORGDASH_ORGAPI_SEED_DEMO", "true")
	t.Setenv("ORGDASH_ORGAPI_HTTP_ADDR", "127.0.0.1:7000")

	fs := flag.NewFlagSet("orgapi", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:7001"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:7001" {
		t.Fatalf("HTTPAddr = %q, want flag override", cfg.HTTPAddr)
	}
	if cfg.DefaultUser != "user-1" || !cfg.SeedDemo {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: " http://a.test, ,http://b.test "}
	if got, want := cfg.Origins(), []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Origins() = %v, want %v", got, want)
	}
	if got := (Config{}).Origins(); got != nil {
		t.Fatalf("Origins() = %v, want nil", got)
	}
}
