package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type agentJSONConfig struct {
	App struct {
		APIBase       string `json:"api_base"`
		PushToken     string `json:"push_token"`
		SentryEnabled bool   `json:"sentry_enabled"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Listener struct {
		Address string `json:"address"`
	} `json:"listener,omitempty"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		TokenRefreshInterval Duration `json:"token_refresh_interval"`
		UploadStagger        Duration `json:"upload_stagger"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*AgentConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg agentJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &AgentConfig{
		App: App{
			APIBase:       jsonCfg.App.APIBase,
			PushToken:     jsonCfg.App.PushToken,
			SentryEnabled: jsonCfg.App.SentryEnabled,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Listener: Listener{
			Address: jsonCfg.Listener.Address,
		},
		Workers: Workers{
			SyncInterval:         time.Duration(jsonCfg.Workers.SyncInterval),
			TokenRefreshInterval: time.Duration(jsonCfg.Workers.TokenRefreshInterval),
			UploadStagger:        time.Duration(jsonCfg.Workers.UploadStagger),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
