package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/voidshard/secretary/pkg/crypto"

	"github.com/joho/godotenv"
)

const (
	KeyPlaidClientID  = "PLAID_CLIENT_ID"
	KeyPlaidSecret    = "PLAID_SECRET"
	KeyPlaidBaseURL   = "PLAID_BASE_URL"
	KeyWeatherAPIKey  = "OPENWEATHERMAP_API_KEY"
	KeyWeatherBaseURL = "OPENWEATHERMAP_BASE_URL"

	// EnvSealKey holds the key used to open sealed values.
	EnvSealKey = "SECRETARY_SEAL_KEY"

	sealedPrefix = "sealed:"
)

// Properties is a set of key=value credentials read from a local file.
type Properties struct {
	values  map[string]string
	sealKey string
}

// Load reads a properties file. Keys and values are split by '=', ':' or
// whitespace; lines starting with # or ! are comments.
func Load(path string) (*Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f, os.Getenv(EnvSealKey))
}

// Parse reads properties from r. sealKey may be empty if nothing is sealed.
func Parse(r io.Reader, sealKey string) (*Properties, error) {
	normal, err := normalise(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	values, err := godotenv.Parse(normal)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &Properties{values: values, sealKey: sealKey}, nil
}

// Get returns the value for key, opening it if sealed. Missing keys return "".
func (p *Properties) Get(key string) (string, error) {
	v := strings.TrimSpace(p.values[key])
	if !strings.HasPrefix(v, sealedPrefix) {
		return v, nil
	}
	if p.sealKey == "" {
		return "", fmt.Errorf("config key %s is sealed but %s is not set", key, EnvSealKey)
	}
	plain, err := crypto.Open(strings.TrimPrefix(v, sealedPrefix), p.sealKey)
	if err != nil {
		return "", fmt.Errorf("open sealed config key %s: %w", key, err)
	}
	return string(plain), nil
}

// Require is Get, but a missing or empty value is an error.
func (p *Properties) Require(key string) (string, error) {
	v, err := p.Get(key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("config key %s not found", key)
	}
	return v, nil
}

// GetDefault is Get with a fallback for missing values.
func (p *Properties) GetDefault(key, def string) (string, error) {
	v, err := p.Get(key)
	if err != nil || v != "" {
		return v, err
	}
	return def, nil
}

// SealValue produces a config value that Get will transparently open.
func SealValue(plain, key string) (string, error) {
	sealed, err := crypto.Seal([]byte(plain), key)
	if err != nil {
		return "", err
	}
	return sealedPrefix + sealed, nil
}

// normalise rewrites "key: value" and "key value" lines as key=value, which is
// all godotenv understands.
func normalise(r io.Reader) (io.Reader, error) {
	out := &strings.Builder{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}

		end := strings.IndexFunc(line, func(c rune) bool {
			return c == '=' || c == ':' || c == ' ' || c == '\t'
		})
		if end < 0 {
			out.WriteString(line + "=\n")
			continue
		}

		key := line[:end]
		value := strings.TrimSpace(line[end:])
		if strings.HasPrefix(value, "=") || strings.HasPrefix(value, ":") {
			value = strings.TrimSpace(value[1:])
		}
		out.WriteString(key + "=" + value + "\n")
	}
	return strings.NewReader(out.String()), scanner.Err()
}
