package commands

import (
	"github.com/colonyops/waggle/internal/core/config"
	"github.com/colonyops/waggle/internal/core/kv"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// App carries the dependencies resolved in the root command's Before
// hook. Commands hold a pointer to it and read it after the hook ran.
type App struct {
	Config config.Config
	Store  kv.KV
	Build  BuildInfo
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}
