// Package version отдает метаданные сборки, вшитые через ldflags:
//
//	-X .../internal/version.BuildDate=2026-08-28
//	-X .../internal/version.BuildCommit=<sha>
package version

import "fmt"

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// VersionInfo описывает метаданные сборки в структурном виде.
type VersionInfo struct {
	BuildDate string `json:"buildDate"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
}

// Info возвращает метаданные сборки. Безопасно вызывать всегда.
func Info() VersionInfo {
	return VersionInfo{
		BuildDate: coalesce(BuildDate, "unknown"),
		Commit:    coalesce(BuildCommit, "unknown"),
		Branch:    coalesce(BuildBranch, "unknown"),
	}
}

// String возвращает строку сборки для лога при старте.
func String() string {
	info := Info()
	return fmt.Sprintf("build %s commit[%s] branch[%s]",
		info.BuildDate, info.Commit, info.Branch)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
