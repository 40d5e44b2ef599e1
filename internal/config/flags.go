package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-access-secret access token signing secret
//	-refresh-secret refresh token signing secret
//	-access-ttl access token lifetime (e.g., "15m")
//	-refresh-ttl refresh token lifetime (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sweep-interval background sweep interval (e.g., "1h")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var accessSecret string
	var refreshSecret string
	var accessTTL time.Duration
	var refreshTTL time.Duration
	var requestTimeout time.Duration
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessSecret, "access-secret", "", "Access token signing secret")
	flag.StringVar(&refreshSecret, "refresh-secret", "", "Refresh token signing secret")
	flag.DurationVar(&accessTTL, "access-ttl", 0, "Access token lifetime (e.g., 15m)")
	flag.DurationVar(&refreshTTL, "refresh-ttl", 0, "Refresh token lifetime (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Background sweep interval (e.g., 1h)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			AccessTokenSecret:  accessSecret,
			RefreshTokenSecret: refreshSecret,
			AccessTokenTTL:     accessTTL,
			RefreshTokenTTL:    refreshTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
