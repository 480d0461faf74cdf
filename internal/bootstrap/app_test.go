package bootstrap

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recommend-backend/internal/explain"
	"recommend-backend/internal/shared/config"
	"recommend-backend/internal/shared/telemetry"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	body := `[{"id":"t1","name":"Hostel Stay","category":"stay","price":400,"time_minutes":30,"comfort_score":0.6,"exploration_score":0.4,"tags":[]}]`
	if err := os.WriteFile(filepath.Join(dir, "travel.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	t.Cleanup(func() { telemetry.Init(telemetry.Options{}) })
	return config.Config{
		Env:              "dev",
		CatalogSource:    "object",
		ObjectStoreType:  "local",
		LocalStoreDir:    dir,
		CatalogCacheSize: 8,
		CatalogCacheTTL:  time.Minute,
		LLMProvider:      "none",
		TopN:             3,
		DiscoveryRatio:   0.5,
		RateLimitRPS:     100,
		RateLimitBurst:   100,
		LogLevel:         "error",
	}
}

func TestBuildServesLocalCatalog(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("object catalog source should not open a database")
	}
	if app.Pipeline.TopN != 3 || app.Pipeline.DiscoveryRatio != 0.5 {
		t.Fatalf("pipeline not configured: %+v", app.Pipeline)
	}
	if got := explainerName(app.Explainer); got != "template" {
		t.Fatalf("expected template-only explainer, got %q", got)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewBufferString(`{"domain":"travel"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"id":"t1"`) {
		t.Fatalf("expected item t1 in response: %s", resp.Body.String())
	}
}

func TestBuildExplainerWithOpenAI(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "openai"
	cfg.OpenAIAPIKey = "sk-test"

	g, err := buildExplainer(cfg)
	if err != nil {
		t.Fatalf("buildExplainer: %v", err)
	}
	chain, ok := g.(*explain.FallbackGenerator)
	if !ok {
		t.Fatalf("expected fallback chain, got %T", g)
	}
	if names := strings.Join(chain.Names(), ","); names != "llm,template" {
		t.Fatalf("unexpected chain %q", names)
	}
}

func TestBuildPostgresRequiresURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogSource = "postgres"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestIsDevLike(t *testing.T) {
	for env, want := range map[string]bool{"dev": true, " Local ": true, "production": false, "": false} {
		if got := isDevLike(env); got != want {
			t.Fatalf("isDevLike(%q) = %v, want %v", env, got, want)
		}
	}
}

func TestPoolOverrides(t *testing.T) {
	cfg := config.Config{DBMaxOpenConns: 3, DBPingTimeout: 2 * time.Second}
	got := PoolOverrides(cfg)
	if got.MaxOpenConns != 3 || got.PingTimeout != 2*time.Second || got.MaxIdleConns != 0 {
		t.Fatalf("unexpected overrides: %+v", got)
	}
}
