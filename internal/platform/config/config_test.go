package config

import "testing"

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Config{MaxBodyBytes: 2048}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "postgres://localhost/hrms",
		Environment:  "production",
		MaxBodyBytes: 2048,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "secret"
	cfg.RunSeed = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default seed password in production")
	}

	cfg.RunSeed = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBodyLimit(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/hrms", MaxBodyBytes: 16}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny body limit")
	}
}
