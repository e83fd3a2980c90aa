package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/resumebook/internal/flagx"
	"github.com/dmitrijs2005/resumebook/internal/timex"
)

// ConfigEnv names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnv = "RESUMEBOOK_CONFIG"

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "zero".
type JsonConfig struct {
	APIBase        *string         `json:"api_base"`
	DownloadDir    *string         `json:"download_dir"`
	SessionDB      *string         `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ResizeInterval *timex.Duration `json:"resize_interval"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. It panics
// on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(ConfigEnv)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBase != nil {
		cfg.APIBase = *jc.APIBase
	}
	if jc.DownloadDir != nil {
		cfg.DownloadDir = *jc.DownloadDir
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResizeInterval != nil {
		cfg.ResizeInterval = jc.ResizeInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
