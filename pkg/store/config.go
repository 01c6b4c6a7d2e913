package store

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/permission"
	"tableflip.dev/ringo/pkg/timeutil"
)

// Config carries everything the store and the data surfaces read from the
// environment: where the layout database lives, the logical canvas, the
// paths of the contact book and call log, and the permission table.
type Config interface {
	BasePath() string
	Canvas() layout.Canvas
	ContactsPath() string
	CallLogPath() string
	Window() string
	Permissions() permission.Table
}

// LoadConfig reads the .ringo config file plus RINGO_* environment
// overrides. A missing config file is fine; the defaults stand.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.ringo.db")
	viper.SetDefault("canvas.width", layout.DefaultCanvas.Width)
	viper.SetDefault("canvas.height", layout.DefaultCanvas.Height)
	viper.SetDefault("window", timeutil.DefaultWindow)
	viper.SetDefault("permissions.contacts", "granted")
	viper.SetDefault("permissions.call-log", "granted")
	viper.SetConfigName(".ringo") // .yaml is implicit
	viper.SetEnvPrefix("RINGO")
	viper.AutomaticEnv()

	if override := os.Getenv("RINGO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	perms := permission.Table{}
	for _, c := range []permission.Capability{permission.Contacts, permission.CallLog} {
		status, err := permission.ParseStatus(viper.GetString("permissions." + string(c)))
		if err != nil {
			return nil, fmt.Errorf("store: config: %w", err)
		}
		perms[c] = status
	}

	return &fileConfig{
		Path:     viper.GetString("path"),
		Width:    viper.GetFloat64("canvas.width"),
		Height:   viper.GetFloat64("canvas.height"),
		Contacts: viper.GetString("contacts"),
		CallLog:  viper.GetString("calllog"),
		Look:     viper.GetString("window"),
		Perms:    perms,
	}, nil
}

type fileConfig struct {
	Path     string  `json:"path"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Contacts string  `json:"contacts"`
	CallLog  string  `json:"calllog"`
	Look     string  `json:"window"`
	Perms    permission.Table
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Canvas() layout.Canvas {
	if f.Width <= 0 || f.Height <= 0 {
		return layout.DefaultCanvas
	}
	return layout.Canvas{Width: f.Width, Height: f.Height}
}

func (f *fileConfig) ContactsPath() string {
	return f.Contacts
}

func (f *fileConfig) CallLogPath() string {
	return f.CallLog
}

func (f *fileConfig) Window() string {
	return f.Look
}

func (f *fileConfig) Permissions() permission.Table {
	return f.Perms
}
