package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths_Unprivileged(t *testing.T) {
	home := t.TempDir()
	m := newTestManager(t, home)

	paths, provider, err := m.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths returned error: %v", err)
	}
	if want := filepath.Join(home, ".aapp-cli", "tmp"); paths.tempDir != want {
		t.Fatalf("expected temp dir %q, got %q", want, paths.tempDir)
	}
	if want := filepath.Join(home, ".apps"); paths.bundleDir != want {
		t.Fatalf("expected bundle dir %q, got %q", want, paths.bundleDir)
	}
	if provider != "apkg" {
		t.Fatalf("expected default provider apkg, got %q", provider)
	}
}

func TestResolvePaths_Elevated(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	m.isElevated = func() bool { return true }

	paths, _, err := m.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths returned error: %v", err)
	}
	if paths.tempDir != "/usr/share/aapp-cli/temp" {
		t.Fatalf("expected system temp dir, got %q", paths.tempDir)
	}
	if paths.bundleDir != "/usr/apps" {
		t.Fatalf("expected system bundle dir, got %q", paths.bundleDir)
	}
}

func TestResolvePaths_ConfigFileOverrides(t *testing.T) {
	home := t.TempDir()
	writeTree(t, home, map[string]string{
		".aapp-cli/config.yaml": "bundle_dir: ~/custom-apps\nprovider: mypkg\n",
	})
	m := newTestManager(t, home)

	paths, provider, err := m.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths returned error: %v", err)
	}
	if want := filepath.Join(home, "custom-apps"); paths.bundleDir != want {
		t.Fatalf("expected bundle dir %q, got %q", want, paths.bundleDir)
	}
	if want := filepath.Join(home, ".aapp-cli", "tmp"); paths.tempDir != want {
		t.Fatalf("expected temp dir to keep default %q, got %q", want, paths.tempDir)
	}
	if provider != "mypkg" {
		t.Fatalf("expected provider override, got %q", provider)
	}
}

func TestResolvePaths_EnvBeatsConfigFile(t *testing.T) {
	home := t.TempDir()
	writeTree(t, home, map[string]string{
		".aapp-cli/config.yaml": "bundle_dir: /from-config\n",
	})
	m := newTestManager(t, home)
	m.getenv = mapGetenv(map[string]string{
		"AAPP_CLI_BUNDLE_DIR": "/from-env",
		"AAPP_CLI_PROVIDER":   "envpkg",
	})

	paths, provider, err := m.resolvePaths()
	if err != nil {
		t.Fatalf("resolvePaths returned error: %v", err)
	}
	if paths.bundleDir != "/from-env" {
		t.Fatalf("expected env override to win, got %q", paths.bundleDir)
	}
	if provider != "envpkg" {
		t.Fatalf("expected env provider to win, got %q", provider)
	}
}

func TestResolvePaths_BadConfigFile(t *testing.T) {
	home := t.TempDir()
	writeTree(t, home, map[string]string{
		".aapp-cli/config.yaml": "bundle_dir: [not\n",
	})
	m := newTestManager(t, home)

	if _, _, err := m.resolvePaths(); err == nil {
		t.Fatalf("expected error for unparseable config file")
	}
}

func TestResolveConfiguredPath(t *testing.T) {
	home := filepath.Join(string(os.PathSeparator), "home", "user")
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "  ", want: ""},
		{name: "bare tilde", value: "~", want: home},
		{name: "tilde prefix", value: "~/apps", want: filepath.Join(home, "apps")},
		{name: "absolute", value: "/opt/apps/", want: "/opt/apps"},
		{name: "relative rooted under home", value: "apps", want: filepath.Join(home, "apps")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveConfiguredPath(home, tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
