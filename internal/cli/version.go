package cli

import (
	"runtime/debug"
	"strings"
)

const (
	devVersion         = "dev"
	goDevelMainVersion = "(devel)"
	vcsRevisionKey     = "vcs.revision"
	vcsModifiedKey     = "vcs.modified"
	shortRevisionLen   = 12
)

var readBuildInfo = debug.ReadBuildInfo

// buildVersion is what `yemek --version` reports.
type buildVersion struct {
	Version   string
	Revision  string
	Dirty     bool
	GoVersion string
}

// resolveVersion prefers the release version injected at link time, then the
// module version, then the VCS revision stamped by the go tool.
func resolveVersion(injected string) buildVersion {
	v := buildVersion{Version: devVersion}
	if trimmed := strings.TrimSpace(injected); trimmed != "" {
		v.Version = trimmed
	}

	info, ok := readBuildInfo()
	if !ok || info == nil {
		return v
	}
	v.GoVersion = info.GoVersion
	v.Revision, v.Dirty = buildRevision(info.Settings)
	if v.Version == devVersion {
		if mainVersion := strings.TrimSpace(info.Main.Version); mainVersion != "" && mainVersion != goDevelMainVersion {
			v.Version = mainVersion
		}
	}
	return v
}

func (v buildVersion) String() string {
	label := v.Version
	if label == devVersion && v.Revision != "" {
		label = v.Revision
		if v.Dirty {
			label += "-dirty"
		}
	}
	if v.GoVersion != "" {
		label += " (" + v.GoVersion + ")"
	}
	return label
}

func buildRevision(settings []debug.BuildSetting) (string, bool) {
	var revision string
	dirty := false
	for _, setting := range settings {
		switch setting.Key {
		case vcsRevisionKey:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedKey:
			dirty = strings.EqualFold(strings.TrimSpace(setting.Value), "true")
		}
	}
	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	return revision, dirty
}
