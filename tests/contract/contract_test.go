// Package contract provides contract tests that validate API responses against the OpenAPI spec.
package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// testConfig holds test configuration.
type testConfig struct {
	BaseURL  string
	SpecPath string
}

// getConfig returns test configuration from environment.
func getConfig(t *testing.T) *testConfig {
	t.Helper()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	specPath := os.Getenv("OPENAPI_SPEC_PATH")
	if specPath == "" {
		// Default: project root/docs/api/openapi.yaml
		wd, _ := os.Getwd()
		specPath = filepath.Join(wd, "..", "..", "docs", "api", "openapi.yaml")
	}

	return &testConfig{
		BaseURL:  baseURL,
		SpecPath: specPath,
	}
}

// loadSpec loads and validates the OpenAPI spec.
func loadSpec(t *testing.T, path string) (*openapi3.T, routers.Router) {
	t.Helper()

	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromFile(path)
	if err != nil {
		t.Fatalf("Failed to load OpenAPI spec from %s: %v", path, err)
	}

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	// Route by path only; the live server runs on API_BASE_URL.
	spec.Servers = nil

	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		t.Fatalf("Failed to create router from spec: %v", err)
	}

	return spec, router
}

// exchange sends req and validates the response against the spec.
// It skips the test when the server is not running.
func exchange(t *testing.T, router routers.Router, req *http.Request, body []byte) (*http.Response, []byte) {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Skipf("Server not available: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	// Restore the consumed request body for request validation.
	if body != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	route, pathParams, err := router.FindRoute(req)
	if err != nil {
		t.Fatalf("Could not find route in spec for %s %s: %v", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   io.NopCloser(bytes.NewReader(respBody)),
	}
	if err := openapi3filter.ValidateResponse(context.Background(), input); err != nil {
		t.Errorf("%s %s response validation failed: %v\nBody: %s", req.Method, req.URL.Path, err, respBody)
	}

	return resp, respBody
}

func newRequest(t *testing.T, cfg *testConfig, method, path, token string, body []byte) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, cfg.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// TestOpenAPISpecValid ensures the OpenAPI spec is valid.
func TestOpenAPISpecValid(t *testing.T) {
	cfg := getConfig(t)
	spec, _ := loadSpec(t, cfg.SpecPath)

	expectedPaths := []string{
		"/api/login",
		"/api/time",
		"/api/words",
		"/api/words/{id}",
		"/healthz",
		"/readyz",
	}
	for _, path := range expectedPaths {
		if spec.Paths.Find(path) == nil {
			t.Errorf("Expected path %s not found in spec", path)
		}
	}
}

// TestHealthResponses validates the health check bodies.
func TestHealthResponses(t *testing.T) {
	cfg := getConfig(t)
	_, router := loadSpec(t, cfg.SpecPath)

	for _, path := range []string{"/healthz", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			exchange(t, router, newRequest(t, cfg, http.MethodGet, path, "", nil), nil)
		})
	}
}

// TestUnauthorizedResponses validates the 401 body on protected routes.
func TestUnauthorizedResponses(t *testing.T) {
	cfg := getConfig(t)
	_, router := loadSpec(t, cfg.SpecPath)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/time"},
		{http.MethodGet, "/api/words"},
		{http.MethodDelete, "/api/words/1"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%s", tc.method, tc.path), func(t *testing.T) {
			resp, _ := exchange(t, router, newRequest(t, cfg, tc.method, tc.path, "", nil), nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", resp.StatusCode)
			}
		})
	}
}

// TestWordFlow validates every words endpoint on the happy path and the
// documented failures.
func TestWordFlow(t *testing.T) {
	cfg := getConfig(t)
	_, router := loadSpec(t, cfg.SpecPath)

	_, body := exchange(t, router, newRequest(t, cfg, http.MethodPost, "/api/login", "", nil), nil)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.AccessToken == "" {
		t.Fatalf("login returned no token: %s", body)
	}
	token := login.AccessToken

	exchange(t, router, newRequest(t, cfg, http.MethodGet, "/api/time", token, nil), nil)

	text := fmt.Sprintf("contract-%d", time.Now().UnixNano())
	payload := []byte(fmt.Sprintf(`{"text":%q}`, text))

	resp, _ := exchange(t, router, newRequest(t, cfg, http.MethodPost, "/api/words", token, payload), payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	resp, _ = exchange(t, router, newRequest(t, cfg, http.MethodPost, "/api/words", token, payload), payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate create status = %d, want 400", resp.StatusCode)
	}

	_, body = exchange(t, router, newRequest(t, cfg, http.MethodGet, "/api/words", token, nil), nil)
	var words []struct {
		ID   int64  `json:"id"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &words); err != nil {
		t.Fatalf("Failed to decode word list: %v", err)
	}

	var id int64
	for _, w := range words {
		if w.Text == text {
			id = w.ID
			break
		}
	}
	if id == 0 {
		t.Fatalf("created word %q not in list", text)
	}

	path := fmt.Sprintf("/api/words/%d", id)
	resp, _ = exchange(t, router, newRequest(t, cfg, http.MethodDelete, path, token, nil), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, _ = exchange(t, router, newRequest(t, cfg, http.MethodDelete, path, token, nil), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}
