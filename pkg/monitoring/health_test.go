package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthChecker_Basic(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: "healthy"} })
	status := hc.CheckHealth()
	if status.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestHealthChecker_DegradedAndUnhealthy(t *testing.T) {
	hc := NewHealthChecker("svc", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: StatusHealthy} })
	hc.AddCheck("slow", func() CheckResult { return CheckResult{Status: StatusDegraded} })
	if got := hc.CheckHealth().Status; got != StatusDegraded {
		t.Fatalf("expected degraded, got %q", got)
	}

	hc.AddCheck("down", func() CheckResult { return CheckResult{Status: StatusUnhealthy} })
	if got := hc.CheckHealth().Status; got != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %q", got)
	}
}

func TestHTTPServiceHealthCheck(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }))
	defer s.Close()
	res := HTTPServiceHealthCheck("svc", s.URL)()
	if res.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
}

func TestRedisHealthCheck_NilClient(t *testing.T) {
	res := RedisHealthCheck(nil)()
	if res.Status != StatusDegraded {
		t.Fatalf("expected degraded for nil client, got %q", res.Status)
	}
	if res.Message != "Redis client not configured" {
		t.Errorf("unexpected message: %q", res.Message)
	}
}

func TestConfigurationHealthCheck(t *testing.T) {
	res := ConfigurationHealthCheck(map[string]string{"DATABASE_URL": "postgres://x"})()
	if res.Status != "healthy" {
		t.Fatalf("expected healthy")
	}
	res = ConfigurationHealthCheck(map[string]string{"DATABASE_URL": ""})()
	if res.Status != "unhealthy" {
		t.Fatalf("expected unhealthy for missing config")
	}
}
