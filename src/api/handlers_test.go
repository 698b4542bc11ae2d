package api_test

import (
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/entropy/src/api"
	"github.com/lost-woods/entropy/src/entropy"
)

var uuidV4Re = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func newTestHandlers(healthy bool) *api.Handlers {
	gin.SetMode(gin.TestMode)

	health := entropy.NewHealth()
	if healthy {
		health.Set(true, "")
	} else {
		health.Set(false, "simulated outage")
	}

	return api.NewHandlers(
		entropy.NewLocked(entropy.NewMock(42)),
		health,
		zap.NewNop().Sugar(),
		2048,
		1<<20,
	)
}

func doGet(h func(*gin.Context), target string, json bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	if json {
		c.Request.Header.Set("Accept", "application/json")
	}
	h(c)
	return w
}

func extractJSONField(body string, field string) string {
	// naive extractor for `"field":"value"`
	needle := `"` + field + `":"`
	i := strings.Index(body, needle)
	if i < 0 {
		return ""
	}
	start := i + len(needle)
	end := strings.Index(body[start:], `"`)
	if end < 0 {
		return ""
	}
	return body[start : start+end]
}

func TestAnalyze_JSONResponse(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Analyze, "/analyze?size=4096", true)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, field := range []string{"shannon_entropy", "min_entropy", "chi_square", "overall_score", "tests"} {
		if !strings.Contains(body, `"`+field+`"`) {
			t.Fatalf("response missing %q: %s", field, body)
		}
	}

	rid := extractJSONField(body, "request_id")
	if rid == "" || !uuidV4Re.MatchString(rid) {
		t.Fatalf("invalid request_id: %q", rid)
	}
}

func TestAnalyze_PlaintextResponse(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Analyze, "/analyze?size=4096", false)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Shannon entropy") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "request_id:") {
		t.Fatalf("text response missing request_id: %s", w.Body.String())
	}
}

func TestAnalyze_BadSize(t *testing.T) {
	h := newTestHandlers(true)

	for _, q := range []string{"size=0", "size=-5", "size=abc", "size=9999999999"} {
		w := doGet(h.Analyze, "/analyze?"+q, false)
		if w.Code != 400 {
			t.Fatalf("%s: expected 400 got %d", q, w.Code)
		}
	}
}

func TestAnalyze_UnhealthySource(t *testing.T) {
	h := newTestHandlers(false)

	w := doGet(h.Analyze, "/analyze", false)
	if w.Code != 503 {
		t.Fatalf("expected 503 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "simulated outage") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTests_ListsBatteryInOrder(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Tests, "/tests?size=2048", false)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	order := []string{"Frequency", "Runs", "LongestRun", "Serial", "ChiSquare"}
	last := -1
	for _, name := range order {
		i := strings.Index(body, name)
		if i < 0 {
			t.Fatalf("missing test %q in body: %s", name, body)
		}
		if i < last {
			t.Fatalf("test %q out of order: %s", name, body)
		}
		last = i
	}
}

func TestBytes(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Bytes, "/bytes?size=8", true)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	hexStr := extractJSONField(w.Body.String(), "bytes")
	if len(hexStr) != 16 {
		t.Fatalf("want 16 hex chars, got %q", hexStr)
	}

	if w := doGet(h.Bytes, "/bytes?size=5000", false); w.Code != 400 {
		t.Fatalf("oversize request: expected 400 got %d", w.Code)
	}
}

func TestEncrypt(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Encrypt, "/encrypt?data=hello", true)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if ct := extractJSONField(w.Body.String(), "ciphertext"); len(ct) != 10 {
		t.Fatalf("want 10 hex chars for 5 input bytes, got %q", ct)
	}

	if w := doGet(h.Encrypt, "/encrypt", false); w.Code != 400 {
		t.Fatalf("missing data: expected 400 got %d", w.Code)
	}
}

func TestBenchmark(t *testing.T) {
	h := newTestHandlers(true)

	w := doGet(h.Benchmark, "/benchmark?bytes=4096&iterations=2", false)
	if w.Code != 200 {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Throughput") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	if w := doGet(h.Benchmark, "/benchmark?iterations=100", false); w.Code != 400 {
		t.Fatalf("too many iterations: expected 400 got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	if w := doGet(newTestHandlers(true).Health, "/health", false); w.Code != 200 {
		t.Fatalf("healthy: expected 200 got %d", w.Code)
	}
	if w := doGet(newTestHandlers(false).Health, "/health", false); w.Code != 503 {
		t.Fatalf("unhealthy: expected 503 got %d", w.Code)
	}
}

func TestCheckHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(api.CheckHeader("X-API-KEY", "secret"))
	router.GET("/", func(c *gin.Context) { c.String(200, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)
	if w.Code != 403 {
		t.Fatalf("missing key: expected 403 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-API-KEY", "secret")
	router.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("valid key: expected 200 got %d", w.Code)
	}
}
