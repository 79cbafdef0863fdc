package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"main/internal/model"
	"main/pkg/socket"
)

func writeArtifact(t *testing.T, dir, instrument string) string {
	t.Helper()
	path := filepath.Join(dir, instrument+"_slippage_model.json")
	artifact := model.NewArtifact(instrument, model.Linear{Intercept: 0.01, Coef: [2]float64{1, -1}})
	if err := model.SaveArtifact(path, artifact); err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}
	return path
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	btc := writeArtifact(t, dir, "BTC")
	eth := writeArtifact(t, dir, "ETH")

	path := writeConfig(t, dir, fmt.Sprintf(`{
		"listen": {"network": "tcp", "address": "127.0.0.1:9100"},
		"models": [
			{"instrument": "BTC", "path": %q},
			{"instrument": "ETH", "path": %q}
		],
		"idleTimeoutSeconds": 30
	}`, btc, eth))

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Listen.Address != "127.0.0.1:9100" {
		t.Fatalf("listen address: got %q", loaded.Listen.Address)
	}
	if loaded.IdleTimeout != 30*time.Second {
		t.Fatalf("idle timeout: got %v", loaded.IdleTimeout)
	}
	if loaded.Registry.Len() != 2 {
		t.Fatalf("registry: got %d models", loaded.Registry.Len())
	}
	if _, ok := loaded.Registry.Lookup("BTC"); !ok {
		t.Fatal("registry: BTC missing")
	}
}

func TestLoadAppliesListenDefaults(t *testing.T) {
	dir := t.TempDir()
	btc := writeArtifact(t, dir, "BTC")
	path := writeConfig(t, dir, fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q}]}`, btc))

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Listen.Network != socket.NetworkTCP || loaded.Listen.Address != "127.0.0.1:9000" {
		t.Fatalf("listen defaults: got %+v", loaded.Listen)
	}
}

func TestLoadFailsFast(t *testing.T) {
	dir := t.TempDir()
	btc := writeArtifact(t, dir, "BTC")
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"version":99}`), 0o644); err != nil {
		t.Fatalf("write broken artifact: %v", err)
	}

	cases := map[string]string{
		"missing artifact":          fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q},{"instrument":"ETH","path":"%s/absent.json"}]}`, btc, dir),
		"invalid artifact":          fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q},{"instrument":"ETH","path":%q}]}`, btc, broken),
		"instrument mismatch":       fmt.Sprintf(`{"models":[{"instrument":"ETH","path":%q}]}`, btc),
		"duplicate instrument":      fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q},{"instrument":"BTC","path":%q}]}`, btc, btc),
		"no models":                 `{"models":[]}`,
		"negative idle timeout":     fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q}],"idleTimeoutSeconds":-1}`, btc),
		"bad listen network":        fmt.Sprintf(`{"listen":{"network":"udp"},"models":[{"instrument":"BTC","path":%q}]}`, btc),
		"unix without address":      fmt.Sprintf(`{"listen":{"network":"unix"},"models":[{"instrument":"BTC","path":%q}]}`, btc),
		"profiling without address": fmt.Sprintf(`{"models":[{"instrument":"BTC","path":%q}],"profiling":{"enabled":true}}`, btc),
	}
	for name, content := range cases {
		path := writeConfig(t, t.TempDir(), content)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: Load accepted an invalid config", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}
