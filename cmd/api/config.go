package main

import (
	"encoding/json"
	"os"

	"github.com/smsinvite/invite-service/internal/domain"
)

type Config struct {
	HttpPort        int    `json:"http_port"`
	DbConnString    string `json:"db_conn_string"`
	RedisAddr       string `json:"redis_addr"`
	CarrierUrl      string `json:"carrier_url"`
	CarrierMaxRetry int    `json:"carrier_max_retry"`
	DailySendLimit  int    `json:"daily_send_limit"`
}

// ReadConfigJson reads json formatted configuration from the given file
func ReadConfigJson(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)

	if err = json.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	if cfg.DailySendLimit == 0 {
		cfg.DailySendLimit = domain.DefaultDailySendLimit
	}

	return cfg, nil
}
