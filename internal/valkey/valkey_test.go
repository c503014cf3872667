package valkey

import (
	"context"
	"os"
	"testing"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnect(t *testing.T) {
	client, err := Connect(context.Background(),
		envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379"), os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after Connect: %v", err)
	}
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect(context.Background(), "127.0.0.1", "1", "")
	if err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}
