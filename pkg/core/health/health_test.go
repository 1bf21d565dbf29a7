package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("history", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "store answers"}
	})

	if checker.Name() != "history" {
		t.Errorf("Name() = %v, want history", checker.Name())
	}
	result := checker.Check(context.Background())
	if result.Status != StatusHealthy || result.Message != "store answers" {
		t.Errorf("Check() = %+v", result)
	}
}

func TestCheckFunc(t *testing.T) {
	fn := CheckFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	if fn.Name() != "unknown" {
		t.Errorf("Name() = %v, want unknown", fn.Name())
	}
	if fn.Check(context.Background()).Status != StatusHealthy {
		t.Error("Status should be healthy")
	}
}

func TestRegistry_RegisterAndCheck(t *testing.T) {
	registry := NewRegistry("monkey", "0.1.0")
	registry.RegisterFunc("history", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	registry.Register(AlwaysHealthy("frontend"))

	report := registry.Check(context.Background())

	if report.Service != "monkey" || report.Version != "0.1.0" {
		t.Errorf("report = %v", report)
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("Checks count = %v, want 2", len(report.Checks))
	}
	if report.Checks[0].Name != "frontend" || report.Checks[1].Name != "history" {
		t.Errorf("checks should be sorted by name: %v, %v", report.Checks[0].Name, report.Checks[1].Name)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry("monkey", "0.1.0")
	registry.Register(AlwaysHealthy("temp"))
	registry.Unregister("temp")

	if report := registry.Check(context.Background()); len(report.Checks) != 0 {
		t.Errorf("After unregister: Checks count = %v, want 0", len(report.Checks))
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("monkey", "0.1.0")
			for i, st := range tt.statuses {
				st := st
				registry.RegisterFunc(string(rune('a'+i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: st}
				})
			}
			if got := registry.Check(context.Background()).Status; got != tt.want {
				t.Errorf("Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("monkey", "0.1.0")

	var counter int32
	for i := 0; i < 5; i++ {
		registry.RegisterFunc("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			atomic.AddInt32(&counter, 1)
			time.Sleep(10 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	report := registry.CheckWithTimeout(time.Second)
	duration := time.Since(start)

	if atomic.LoadInt32(&counter) != 5 {
		t.Errorf("Counter = %v, want 5", counter)
	}
	// Checks run concurrently
	if duration > 100*time.Millisecond {
		t.Errorf("Duration = %v, expected concurrent execution", duration)
	}
	if len(report.Checks) != 5 {
		t.Errorf("Checks count = %v, want 5", len(report.Checks))
	}
}

func TestErrorCheck(t *testing.T) {
	ok := ErrorCheck("history", func(ctx context.Context) error { return nil })
	if got := ok.Check(context.Background()); got.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", got.Status)
	}

	failing := ErrorCheck("history", func(ctx context.Context) error { return errors.New("database is locked") })
	got := failing.Check(context.Background())
	if got.Status != StatusUnhealthy || got.Message != "database is locked" {
		t.Errorf("Check() = %+v", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus Status
	}{
		{"healthy", nil, http.StatusOK, StatusHealthy},
		{"unhealthy", errors.New("down"), http.StatusServiceUnavailable, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("monkey", "0.1.0")
			registry.Register(ErrorCheck("history", func(ctx context.Context) error { return tt.err }))

			rec := httptest.NewRecorder()
			registry.Handler(time.Second)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var report Report
			if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
				t.Fatalf("body is not a report: %v", err)
			}
			if report.Status != tt.wantStatus || len(report.Checks) != 1 {
				t.Errorf("report = %+v", report)
			}
		})
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{Service: "monkey", Status: StatusHealthy, Uptime: time.Hour, Checks: []CheckResult{{}, {}}}

	if got, want := report.String(), "Service: monkey, Status: healthy, Uptime: 1h0m0s, Checks: 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
