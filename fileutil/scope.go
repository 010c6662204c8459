package fileutil

import (
	gap "github.com/muesli/go-app-paths"
)

// ScopeDirs are per-user directories for an application, following the
// platform conventions (XDG on Linux).
type ScopeDirs struct {
	Config string
	Data   string
	Cache  string
}

// UserScope returns the per-user config, data and cache directories for app.
func UserScope(app string) (ScopeDirs, error) {
	scope := gap.NewScope(gap.User, app)

	configDirs, err := scope.ConfigDirs()
	if err != nil {
		return ScopeDirs{}, err
	}

	dataDirs, err := scope.DataDirs()
	if err != nil {
		return ScopeDirs{}, err
	}

	cacheDir, err := scope.CacheDir()
	if err != nil {
		return ScopeDirs{}, err
	}

	dirs := ScopeDirs{Cache: cacheDir}

	if len(configDirs) > 0 {
		dirs.Config = configDirs[0]
	}

	if len(dataDirs) > 0 {
		dirs.Data = dataDirs[0]
	}

	return dirs, nil
}
