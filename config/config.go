package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appname  string `yaml:"appname" json:"appname"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	AssetsDir string `yaml:"assets_dir" json:"assets_dir"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appname:  "AmberSpa",
		Location: "Europe/Berlin",
		Workdir:  "/var/amberspa",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1980,
		AssetsDir: "client/dist",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "amberspa",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/amberspa/amberspa.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

func setEnvIntValue(name string, f func(v int)) {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			f(i)
		}
	}
}

// LoadConfig reads the yaml config file when it exists and applies
// environment overrides on top. A missing file is not an error: the
// defaults plus environment are enough to boot.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_cfg := new(AppConfig)
			if err := yaml.Unmarshal(data, _cfg); err == nil {
				cfg = _cfg
			}
		}
	}

	setEnvValue("AMBERSPA_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("AMBERSPA_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvIntValue("PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("DB_PASS", func(v string) { cfg.Database.Passwd = v })

	return cfg
}
