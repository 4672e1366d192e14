package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bigcalc/internal/bignum"
	"bigcalc/internal/cache"
)

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// writeConfig writes a bigcalc.toml whose cache lives in a fresh temp dir.
func writeConfig(t *testing.T, extra string) (cfgPath, cacheDir string) {
	t.Helper()
	dir := t.TempDir()
	cacheDir = filepath.Join(dir, "cache")
	cfgPath = filepath.Join(dir, "bigcalc.toml")
	data := fmt.Sprintf("[cache]\ndir = %q\n%s", cacheDir, extra)
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatalf("write bigcalc.toml: %v", err)
	}
	return cfgPath, cacheDir
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config=" + cfgPath, "--color=off"}, args...)
	code := execute(context.Background(), full, &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func run(t *testing.T, args ...string) cliResult {
	t.Helper()
	cfgPath, _ := writeConfig(t, "")
	return runWithConfig(t, cfgPath, args...)
}

func TestArithmeticCommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"add", "99999999999999999999", "1"}, "100000000000000000000"},
		{[]string{"sub", "--", "-7", "2"}, "-9"},
		{[]string{"mul", "123456789123456789", "987654321987654321"}, "121932631356500531347203169112635269"},
		{[]string{"div", "--", "-7", "2"}, "-3"},
		{[]string{"mod", "--", "-7", "2"}, "-1"},
		{[]string{"gcd", "462", "1071"}, "21"},
		{[]string{"neg", "5"}, "-5"},
		{[]string{"abs", "--", "-5"}, "5"},
		{[]string{"cmp", "2", "10"}, "-1"},
		{[]string{"cmp", "10", "10"}, "0"},
		{[]string{"prime", "97"}, "true"},
		{[]string{"prime", "100"}, "false"},
		{[]string{"add", "１２", "－２"}, "10"},
	}
	for _, tc := range cases {
		res := run(t, tc.args...)
		if res.code != 0 {
			t.Fatalf("bigcalc %s exited %d: %s", strings.Join(tc.args, " "), res.code, res.stderr)
		}
		if got := strings.TrimSpace(res.stdout); got != tc.want {
			t.Fatalf("bigcalc %s = %q, want %q", strings.Join(tc.args, " "), got, tc.want)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"div", "5", "0"}, "error: div: division by zero"},
		{[]string{"add", "12a", "1"}, "malformed integer"},
		{[]string{"fact", "--ui=off", "--", "-1"}, "invalid argument"},
		{[]string{"fact", "--ui=off", "--max-input=10", "11"}, "input too large"},
		{[]string{"fact", "--ui=off", "--fork-threshold=0", "5"}, "--fork-threshold must be positive"},
		{[]string{"fact", "--ui=bright", "5"}, "invalid --ui value"},
		{[]string{"--color=sometimes", "add", "1", "2"}, "invalid --color value"},
		{[]string{"version", "--format=xml"}, "unsupported format"},
	}
	for _, tc := range cases {
		res := run(t, tc.args...)
		if res.code != 1 {
			t.Fatalf("bigcalc %s exited %d, want 1", strings.Join(tc.args, " "), res.code)
		}
		if !strings.Contains(res.stderr, tc.want) {
			t.Fatalf("bigcalc %s stderr = %q, want %q", strings.Join(tc.args, " "), res.stderr, tc.want)
		}
		if res.stdout != "" {
			t.Fatalf("bigcalc %s wrote %q to stdout on failure", strings.Join(tc.args, " "), res.stdout)
		}
	}
}

func TestAllCommand(t *testing.T) {
	res := run(t, "all", "7", "100")
	if res.code != 0 {
		t.Fatalf("bigcalc all exited %d: %s", res.code, res.stderr)
	}
	want := "a + b = 107\nb - a = 93\na * b = 700\nb / a = 14\nb % a = 2\n"
	if res.stdout != want {
		t.Fatalf("bigcalc all 7 100 =\n%s\nwant\n%s", res.stdout, want)
	}

	res = run(t, "all", "0", "5")
	if res.code != 1 || !strings.Contains(res.stderr, "b / a: division by zero") {
		t.Fatalf("bigcalc all 0 5 = %d %q", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "a + b = 5\nb - a = 5\na * b = 0\n") {
		t.Fatalf("bigcalc all 0 5 stdout = %q", res.stdout)
	}
}

func TestFactUsesCache(t *testing.T) {
	cfgPath, cacheDir := writeConfig(t, "")

	res := runWithConfig(t, cfgPath, "fact", "--ui=off", "20")
	if res.code != 0 || strings.TrimSpace(res.stdout) != "2432902008176640000" {
		t.Fatalf("fact 20 = %d %q %q", res.code, res.stdout, res.stderr)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, "fact", "20.mp")); err != nil {
		t.Fatalf("fact 20 not cached: %v", err)
	}

	// A planted entry proves the second run reads the cache instead of computing.
	fc, err := cache.Open(cacheDir, 0)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	if err := fc.Put(5, bignum.FromInt64(999)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if res := runWithConfig(t, cfgPath, "fact", "--ui=off", "5"); strings.TrimSpace(res.stdout) != "999" {
		t.Fatalf("fact 5 with planted cache entry = %q", res.stdout)
	}
	if res := runWithConfig(t, cfgPath, "fact", "--ui=off", "--no-cache", "5"); strings.TrimSpace(res.stdout) != "120" {
		t.Fatalf("fact 5 --no-cache = %q", res.stdout)
	}

	if res := runWithConfig(t, cfgPath, "cache", "purge"); res.code != 0 {
		t.Fatalf("cache purge exited %d: %s", res.code, res.stderr)
	}
	if res := runWithConfig(t, cfgPath, "fact", "--ui=off", "5"); strings.TrimSpace(res.stdout) != "120" {
		t.Fatalf("fact 5 after purge = %q", res.stdout)
	}
}

func TestCacheCommands(t *testing.T) {
	cfgPath, cacheDir := writeConfig(t, "")
	res := runWithConfig(t, cfgPath, "cache", "dir")
	if res.code != 0 || strings.TrimSpace(res.stdout) != cacheDir {
		t.Fatalf("cache dir = %d %q, want %q", res.code, res.stdout, cacheDir)
	}

	disabled, _ := writeConfig(t, "enabled = false\n")
	res = runWithConfig(t, disabled, "cache", "purge")
	if res.code != 1 || !strings.Contains(res.stderr, "disabled") {
		t.Fatalf("cache purge with cache disabled = %d %q", res.code, res.stderr)
	}
}

func TestFactConfigAndFlags(t *testing.T) {
	cfgPath, _ := writeConfig(t, "[factorial]\nmax_input = 10\n")
	res := runWithConfig(t, cfgPath, "fact", "--ui=off", "11")
	if res.code != 1 || !strings.Contains(res.stderr, "input too large") {
		t.Fatalf("fact 11 with max_input 10 = %d %q", res.code, res.stderr)
	}
	res = runWithConfig(t, cfgPath, "fact", "--ui=off", "--max-input=0", "--jobs=2", "--fork-threshold=2", "30")
	if res.code != 0 || strings.TrimSpace(res.stdout) != "265252859812191058636308480000000" {
		t.Fatalf("fact 30 overriding the cap = %d %q %q", res.code, res.stdout, res.stderr)
	}
}

func TestBadConfig(t *testing.T) {
	cfgPath, _ := writeConfig(t, "[factorial]\nspeed = 9\n")
	res := runWithConfig(t, cfgPath, "add", "1", "2")
	if res.code != 1 || !strings.Contains(res.stderr, "unknown keys") {
		t.Fatalf("unknown key = %d %q", res.code, res.stderr)
	}
}

func TestPrimeTimeout(t *testing.T) {
	// 2^89-1 is prime, so trial division runs far beyond the timeout.
	res := run(t, "prime", "--timeout=1ms", "618970019642690137449562111")
	if res.code != 1 || !strings.Contains(res.stderr, "timed out") {
		t.Fatalf("prime with timeout = %d %q", res.code, res.stderr)
	}
}

func TestTraceOutput(t *testing.T) {
	res := run(t, "--trace=-", "--trace-level=detail", "fact", "--ui=off", "--no-cache", "--fork-threshold=4", "20")
	if res.code != 0 {
		t.Fatalf("traced fact exited %d: %s", res.code, res.stderr)
	}
	for _, want := range []string{"[command]", "→ fact", "[op]", "→ factorial", "[range]"} {
		if !strings.Contains(res.stderr, want) {
			t.Fatalf("trace output missing %q:\n%s", want, res.stderr)
		}
	}
	if strings.Contains(res.stderr, "[leaf]") {
		t.Fatalf("detail level emitted leaf spans:\n%s", res.stderr)
	}
}

func TestRingTraceDumpedOnFailure(t *testing.T) {
	res := run(t, "--trace-level=phase", "--trace-mode=ring", "div", "1", "0")
	if res.code != 1 {
		t.Fatalf("div 1 0 exited %d", res.code)
	}
	if !strings.Contains(res.stderr, "← div (division by zero)") {
		t.Fatalf("ring dump missing failed op:\n%s", res.stderr)
	}

	res = run(t, "--trace-level=phase", "--trace-mode=ring", "add", "1", "1")
	if res.code != 0 || strings.Contains(res.stderr, "[op]") {
		t.Fatalf("ring mode dumped on success = %d %q", res.code, res.stderr)
	}
}

func TestTimings(t *testing.T) {
	res := run(t, "--timings", "mul", "12", "12")
	if res.code != 0 || strings.TrimSpace(res.stdout) != "144" {
		t.Fatalf("mul with timings = %d %q", res.code, res.stdout)
	}
	for _, want := range []string{"timings:", "parse", "compute", "format", "total"} {
		if !strings.Contains(res.stderr, want) {
			t.Fatalf("timings missing %q:\n%s", want, res.stderr)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	res := run(t, "version", "--format=json", "--full")
	if res.code != 0 {
		t.Fatalf("version exited %d: %s", res.code, res.stderr)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("decode %q: %v", res.stdout, err)
	}
	if payload.Tool != "bigcalc" || payload.Version == "" || payload.GitCommit != "unknown" {
		t.Fatalf("version payload = %+v", payload)
	}
}

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	res := run(t, "--cpu-profile="+cpu, "--mem-profile="+mem, "add", "1", "2")
	if res.code != 0 {
		t.Fatalf("profiled add exited %d: %s", res.code, res.stderr)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("profile %s missing: %v", filepath.Base(path), err)
		}
	}
}

func TestParseTristate(t *testing.T) {
	for in, want := range map[string]tristate{"": auto, "AUTO": auto, "on": on, " off ": off} {
		got, err := parseTristate("ui", in)
		if err != nil || got != want {
			t.Fatalf("parseTristate(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := parseTristate("color", "always"); err == nil || !strings.Contains(err.Error(), "--color") {
		t.Fatalf("parseTristate(always) error = %v", err)
	}
	if off.enabled(os.Stderr) || !on.enabled(os.Stderr) {
		t.Fatalf("explicit modes ignored")
	}
}
