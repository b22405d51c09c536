package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	skillsJSON       = `[{"title":"Java"},{"title":"Selenium"},{"title":"Java"},{"id":7}]`
	designationsJSON = `[{"designation":"QA Engineer"},{"designation":"Architect"}]`
)

// referenceServer serves both reference lists and points the environment
// at it. Caches go to a fresh temp dir, which is returned.
func referenceServer(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/skills", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(skillsJSON))
	})
	mux.HandleFunc("/designations", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(designationsJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cacheDir := t.TempDir()
	t.Setenv("SKILLS_URL", srv.URL+"/skills")
	t.Setenv("DESIGNATIONS_URL", srv.URL+"/designations")
	t.Setenv("REFERENCE_CACHE_DIR", cacheDir)
	t.Setenv("DESIGNATION_MAX_ATTEMPTS", "1")
	t.Setenv("DESIGNATION_POLL_INTERVAL", "10ms")
	t.Setenv("ALIASES_PATH", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	return cacheDir
}

// resetFlags clears the package-level flag values between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		configPath, logLevel = "", ""
		extractInputs, extractOutDir, extractDBURL = nil, "", ""
		extractValidate, extractAliases, extractConcurrency = false, "", 0
		extractVerbose = false
		validateInputs = nil
		servePort, serveValidate = 0, false
	}
	reset()
	t.Cleanup(reset)
}
