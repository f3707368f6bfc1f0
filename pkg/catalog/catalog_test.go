package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRequirementMatchedBy(t *testing.T) {
	attrs := map[string]string{"os": "linux", "access": "remote"}

	tests := []struct {
		name string
		req  Requirement
		want bool
	}{
		{"empty requirement", Requirement{}, true},
		{"nil requirement", nil, true},
		{"single key", Requirement{"os": "linux"}, true},
		{"all keys", Requirement{"os": "linux", "access": "remote"}, true},
		{"value differs", Requirement{"os": "windows"}, false},
		{"missing key", Requirement{"cve": "CVE-2014-6271"}, false},
		{"one of two missing", Requirement{"os": "linux", "privilege": "root"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.MatchedBy(attrs); got != tt.want {
				t.Errorf("MatchedBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModuleConflictsWithIsOneDirectional(t *testing.T) {
	a := &Module{Path: "a", Type: "vulnerability", Attributes: map[string]string{"name": "a"}}
	b := &Module{
		Path:       "b",
		Type:       "vulnerability",
		Attributes: map[string]string{"name": "b"},
		Conflicts:  []Requirement{{"name": "a"}},
	}

	if !b.ConflictsWith(a) {
		t.Error("expected b to declare a conflict with a")
	}
	if a.ConflictsWith(b) {
		t.Error("a declares no conflicts and must not report one")
	}
	if b.ConflictsWith(nil) {
		t.Error("nil module must never conflict")
	}
}

func TestPrintableNameFallsBackToPath(t *testing.T) {
	m := &Module{Path: "modules/services/unix/http/apache"}
	if m.PrintableName() != m.Path {
		t.Errorf("expected path fallback, got %q", m.PrintableName())
	}
	m.Name = "Apache HTTPD"
	if m.PrintableName() != "Apache HTTPD" {
		t.Errorf("expected display name, got %q", m.PrintableName())
	}
}

func TestNewRejectsInvalidModules(t *testing.T) {
	if _, err := New(&Module{Type: "service"}); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := New(&Module{Path: "x"}); err == nil {
		t.Error("expected error for missing type")
	}
	if _, err := New(&Module{Path: "x", Type: "service", Conflicts: []Requirement{{}}}); err == nil {
		t.Error("expected error for empty conflict declaration")
	}
	_, err := New(
		&Module{Path: "x", Type: "service"},
		&Module{Path: "x", Type: "vulnerability"},
	)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate path error, got %v", err)
	}
}

func TestCatalogAccessors(t *testing.T) {
	c, err := New(
		&Module{Path: "v1", Type: "vulnerability"},
		&Module{Path: "s1", Type: "service"},
		&Module{Path: "v2", Type: "vulnerability"},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("expected 3 modules, got %d", c.Len())
	}
	if got := c.Types(); len(got) != 2 || got[0] != "service" || got[1] != "vulnerability" {
		t.Errorf("unexpected types: %v", got)
	}
	vulns := c.OfType("vulnerability")
	if len(vulns) != 2 || vulns[0].Path != "v1" || vulns[1].Path != "v2" {
		t.Errorf("unexpected vulnerabilities: %+v", vulns)
	}
	if _, ok := c.Get("s1"); !ok {
		t.Error("expected s1 to be found")
	}

	mods := c.Modules()
	mods[0] = nil
	if c.Modules()[0] == nil {
		t.Error("Modules must return a copy")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "vulnerabilities", "unix", "shellshock.yaml"), `
name: Shellshock
type: vulnerability
attributes:
  os: linux
  cve: CVE-2014-6271
requires:
  - role: webserver
conflicts:
  - name: apache_cgi_off
`)
	writeFile(t, filepath.Join(dir, "services", "apache.yml"), `
path: services/http/apache
type: service
attributes:
  role: webserver
`)
	writeFile(t, filepath.Join(dir, "README.md"), "not a module")

	c, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 modules, got %d", c.Len())
	}

	shellshock, ok := c.Get("vulnerabilities/unix/shellshock")
	if !ok {
		t.Fatalf("expected derived path, have %+v", c.Modules())
	}
	if shellshock.PrintableName() != "Shellshock" {
		t.Errorf("unexpected name %q", shellshock.PrintableName())
	}
	if len(shellshock.Requires) != 1 || shellshock.Requires[0]["role"] != "webserver" {
		t.Errorf("unexpected requires: %+v", shellshock.Requires)
	}
	if len(shellshock.Conflicts) != 1 {
		t.Errorf("unexpected conflicts: %+v", shellshock.Conflicts)
	}

	if _, ok := c.Get("services/http/apache"); !ok {
		t.Error("expected explicit path to be kept")
	}
}

func TestLoadDirectoryReportsBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "type: [unclosed")

	if _, err := LoadDirectory(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	if _, err := LoadDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
