// FILE: lixenwraith/emaconfig/discovery.go
package emaconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions controls where DiscoverFile looks for an EmaConfig file.
type FileDiscoveryOptions struct {
	Name       string   // file name without extension
	Extensions []string // tried in order within each directory
	Paths      []string // searched before the working directory

	// EnvVar names a variable holding an explicit path.
	EnvVar string
	// CLIFlag is matched as "--flag path" or "--flag=path".
	CLIFlag string

	UseXDG        bool
	UseCurrentDir bool
}

// DefaultDiscoveryOptions looks for EmaConfig.{xml,toml,yaml,yml,json}.
func DefaultDiscoveryOptions() FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)),
		Extensions:    []string{".xml", ".toml", ".yaml", ".yml", ".json"},
		EnvVar:        "EMA_CONFIG",
		CLIFlag:       "--config",
		UseCurrentDir: true,
		UseXDG:        true,
	}
}

// DiscoverFile returns the configuration file to read, or "" when there is none.
// An explicit path from args or the environment is returned without checking
// that it exists; LoadFile reports a missing file as a diagnostic.
func DiscoverFile(opts FileDiscoveryOptions, args []string) string {
	if path, ok := flagValue(args, opts.CLIFlag); ok {
		return path
	}
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	for _, dir := range opts.searchDirs() {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

func flagValue(args []string, flag string) (string, bool) {
	if flag == "" {
		return "", false
	}
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v, true
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func (o FileDiscoveryOptions) searchDirs() []string {
	dirs := append([]string(nil), o.Paths...)
	if o.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if o.UseXDG {
		dirs = append(dirs, xdgDirs("ema")...)
	}
	return dirs
}

// xdgDirs lists $XDG_CONFIG_HOME/app (or ~/.config/app) followed by the
// system directories.
func xdgDirs(app string) []string {
	var dirs []string
	switch {
	case os.Getenv("XDG_CONFIG_HOME") != "":
		dirs = append(dirs, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), app))
	case os.Getenv("HOME") != "":
		dirs = append(dirs, filepath.Join(os.Getenv("HOME"), ".config", app))
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}
	for _, d := range system {
		dirs = append(dirs, filepath.Join(d, app))
	}
	return dirs
}
