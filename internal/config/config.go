package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Addr     string   `koanf:"addr"`
	Frontend Frontend `koanf:"frontend"`
	Ekasa    Ekasa    `koanf:"ekasa"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Ekasa struct {
	BaseURL string `koanf:"baseurl"`
}

type Google struct {
	ClientId      string `koanf:"clientid"`
	ClientSecret  string `koanf:"clientsecret"`
	SpreadsheetId string `koanf:"spreadsheetid"`
}

type Database struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// Path is the sqlite database file, used when Driver is "sqlite".
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Addr: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Ekasa: Ekasa{
			BaseURL: "https://ekasa.financnasprava.sk/mdu/api/v1/opd",
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "finbook.db",
			Host:   "localhost",
			Port:   5432,
			User:   "finbook",
			Pass:   "",
			Name:   "finbook",
			Schema: "finbook",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FINBOOK_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FINBOOK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
