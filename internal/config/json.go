package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] wrapper so operators can write "15m" instead
// of nanosecond integers.
type StructuredJSONConfig struct {
	Auth struct {
		AccessTokenSecret  string   `json:"access_token_secret"`
		RefreshTokenSecret string   `json:"refresh_token_secret"`
		TokenIssuer        string   `json:"token_issuer"`
		AccessTokenTTL     Duration `json:"access_token_ttl"`
		RefreshTokenTTL    Duration `json:"refresh_token_ttl"`
		OTPLength          int      `json:"otp_length"`
		OTPTTL             Duration `json:"otp_ttl"`
		OTPMaxAttempts     int      `json:"otp_max_attempts"`
		LogoutAllSessions  bool     `json:"logout_all_sessions"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Notifier struct {
		MailgunDomain string `json:"mailgun_domain"`
		MailgunAPIKey string `json:"mailgun_api_key"`
		Sender        string `json:"sender"`
	} `json:"notifier,omitempty"`

	RateLimit struct {
		Window Duration `json:"window"`
		Limit  int      `json:"limit"`
	} `json:"rate_limit,omitempty"`

	Workers struct {
		SweepInterval   Duration `json:"sweep_interval"`
		LedgerRetention Duration `json:"ledger_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			AccessTokenSecret:  jsonCfg.Auth.AccessTokenSecret,
			RefreshTokenSecret: jsonCfg.Auth.RefreshTokenSecret,
			TokenIssuer:        jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:     time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL:    time.Duration(jsonCfg.Auth.RefreshTokenTTL),
			OTPLength:          jsonCfg.Auth.OTPLength,
			OTPTTL:             time.Duration(jsonCfg.Auth.OTPTTL),
			OTPMaxAttempts:     jsonCfg.Auth.OTPMaxAttempts,
			LogoutAllSessions:  jsonCfg.Auth.LogoutAllSessions,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Notifier: Notifier{
			MailgunDomain: jsonCfg.Notifier.MailgunDomain,
			MailgunAPIKey: jsonCfg.Notifier.MailgunAPIKey,
			Sender:        jsonCfg.Notifier.Sender,
		},
		RateLimit: RateLimit{
			Window: time.Duration(jsonCfg.RateLimit.Window),
			Limit:  jsonCfg.RateLimit.Limit,
		},
		Workers: Workers{
			SweepInterval:   time.Duration(jsonCfg.Workers.SweepInterval),
			LedgerRetention: time.Duration(jsonCfg.Workers.LedgerRetention),
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
