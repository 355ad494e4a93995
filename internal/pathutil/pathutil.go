// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// EnvName selects an alternate set of file names, e.g. for testing against a
// scratch database.
const EnvName = "MOMENTUM_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	boltFileName   string
	sqliteFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	boltFilePath   string
	sqliteFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

func defaults() *Paths {
	return &Paths{
		appDir:         "momentum",
		configFileName: "config.yml",
		boltFileName:   "momentum.db",
		sqliteFileName: "momentum.sqlite",
		logFileName:    "momentum.log",
	}
}

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		p := defaults()
		p.applyEnvironmentOverrides(os.Getenv(EnvName))

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().appDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

// DBFilePath returns the database file used by the named storage driver.
func DBFilePath(driver string) string {
	if driver == "sqlite" {
		return Must().sqliteFilePath
	}

	return Must().boltFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides(env string) {
	env = strings.TrimSpace(env)
	if env == "" {
		return
	}

	p.configFileName = fmt.Sprintf("config_%s.yml", env)
	p.boltFileName = fmt.Sprintf("momentum_%s.db", env)
	p.sqliteFileName = fmt.Sprintf("momentum_%s.sqlite", env)
	p.logFileName = fmt.Sprintf("momentum_%s.log", env)
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	p.boltFilePath, err = xdg.DataFile(filepath.Join(p.appDir, p.boltFileName))
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}

	dataDir := filepath.Dir(p.boltFilePath)

	p.sqliteFilePath = filepath.Join(dataDir, p.sqliteFileName)
	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}
