package commands

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// isolate points HOME, the config directory and the working directory at a
// temp dir, clears LETTA_* settings and restores package flags afterwards.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LETTA_MCP_CONFIG_DIR", dir)
	for _, key := range []string{"LETTA_API_KEY", "LETTA_BASE_URL", "LETTA_TIMEOUT", "LETTA_MAX_RETRIES", "LETTA_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)

	t.Cleanup(snapshotFlags())
	return dir
}

// snapshotFlags records the package flag variables and returns a function
// restoring them.
func snapshotFlags() func() {
	bools := []*bool{
		&quiet, &configureForce, &configureDryRun, &configurePrint, &configureShowSecrets,
		&configInitForce, &configShowSecrets, &toolsListJSON, &doctorJSON, &doctorQuiet, &doctorVerbose, &doctorFix,
		&runHTTP, &runTest, &configureNoBackup, &restoreList, &agentsCreateTemplate,
	}
	strs := []*string{
		&logFormat, &logFile, &configPath, &configureClient, &configureName, &configurePath,
		&toolsCallArgs, &runAddr, &restoreID,
	}
	savedBools := make([]bool, len(bools))
	for i, p := range bools {
		savedBools[i] = *p
	}
	savedStrs := make([]string, len(strs))
	for i, p := range strs {
		savedStrs[i] = *p
	}
	savedVerbosity := verbosity

	return func() {
		for i, p := range bools {
			*p = savedBools[i]
		}
		for i, p := range strs {
			*p = savedStrs[i]
		}
		verbosity = savedVerbosity
	}
}

// fakeLetta serves the upstream endpoints the commands touch.
func fakeLetta(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-let-test-0123456789" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case r.URL.Path == "/v1/health/":
			_, _ = w.Write([]byte(`{"status":"ok","version":"0.6.1"}`))
		case r.URL.Path == "/v1/agents/":
			_, _ = w.Write([]byte(`[
				{"id":"agent-1","name":"helper","description":"Answers questions"},
				{"id":"agent-2","name":"planner"},
				{"id":"agent-3","name":"writer"}
			]`))
		case strings.HasPrefix(r.URL.Path, "/v1/agents/missing"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Agent not found"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
