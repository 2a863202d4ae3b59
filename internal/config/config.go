package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "TALLY_"

type Application struct {
	Host   string `koanf:"host"`
	Listen string `koanf:"listen"`
	// Timezone is the IANA zone transactions are grouped into days with.
	Timezone string `koanf:"timezone"`
	Api      Api    `koanf:"api"`
	Cache    Cache  `koanf:"cache"`
}

// Api points at the budgeting REST API every request is forwarded to.
type Api struct {
	BaseUrl string        `koanf:"baseurl"`
	Timeout time.Duration `koanf:"timeout"`
}

type Cache struct {
	Size int `koanf:"size"`
	// TTL bounds how long a dashboard may lag behind writes made by other clients.
	TTL time.Duration `koanf:"ttl"`
	// SessionTTL is how long a resolved bearer token is trusted without asking the API again.
	SessionTTL time.Duration `koanf:"sessionttl"`
}

func (a Application) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

func Defaults() Application {
	return Application{
		Host:     "http://localhost:8181",
		Listen:   ":8181",
		Timezone: "",
		Api: Api{
			BaseUrl: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			Size:       256,
			TTL:        5 * time.Minute,
			SessionTTL: 30 * time.Second,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
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

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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
