package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	systemTempDir   = "/usr/share/aapp-cli/temp"
	systemBundleDir = "/usr/apps"

	userStateDirName  = ".aapp-cli"
	userTempDirName   = "tmp"
	userBundleDirName = ".apps"

	tempDirEnv   = "AAPP_CLI_TEMP_DIR"
	bundleDirEnv = "AAPP_CLI_BUNDLE_DIR"
	providerEnv  = "AAPP_CLI_PROVIDER"
)

// appPaths holds the two process-scoped root directories. Resolution is
// pure: nothing here creates directories, Bootstrap does that lazily.
type appPaths struct {
	tempDir   string
	bundleDir string
}

func defaultAppPaths(elevated bool, home string) appPaths {
	if elevated {
		return appPaths{tempDir: systemTempDir, bundleDir: systemBundleDir}
	}
	return appPaths{
		tempDir:   filepath.Join(home, userStateDirName, userTempDirName),
		bundleDir: filepath.Join(home, userBundleDirName),
	}
}

func configFilePath(elevated bool, home string) string {
	if elevated {
		return filepath.Join(filepath.Dir(systemTempDir), configFileName)
	}
	return filepath.Join(home, userStateDirName, configFileName)
}

// resolvePaths computes the root directories and effective provider
// command for this invocation. Precedence: environment variables, then
// the optional config file, then the privilege-derived defaults.
func (m *Manager) resolvePaths() (appPaths, string, error) {
	elevated := m.isElevated()

	home, err := m.homeDir()
	if err != nil {
		if !elevated {
			return appPaths{}, "", fmt.Errorf("determine home directory: %w", err)
		}
		home = ""
	}

	paths := defaultAppPaths(elevated, home)
	provider := defaultProviderCommand

	cfg, err := loadFileConfig(configFilePath(elevated, home))
	if err != nil {
		return appPaths{}, "", err
	}
	if override := resolveConfiguredPath(home, cfg.TempDir); override != "" {
		paths.tempDir = override
	}
	if override := resolveConfiguredPath(home, cfg.BundleDir); override != "" {
		paths.bundleDir = override
	}
	if trimmed := strings.TrimSpace(cfg.Provider); trimmed != "" {
		provider = trimmed
	}

	if override := resolveConfiguredPath(home, m.getenv(tempDirEnv)); override != "" {
		paths.tempDir = override
	}
	if override := resolveConfiguredPath(home, m.getenv(bundleDirEnv)); override != "" {
		paths.bundleDir = override
	}
	if trimmed := strings.TrimSpace(m.getenv(providerEnv)); trimmed != "" {
		provider = trimmed
	}

	return paths, provider, nil
}

// resolveConfiguredPath expands a user-supplied path override. A bare
// "~" or "~/" prefix resolves against the home directory; relative
// paths are rooted under home as well.
func resolveConfiguredPath(home, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if trimmed == "~" {
		return filepath.Clean(home)
	}
	if strings.HasPrefix(trimmed, "~"+string(os.PathSeparator)) || strings.HasPrefix(trimmed, "~/") {
		return filepath.Join(home, trimmed[2:])
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Join(home, trimmed)
}
