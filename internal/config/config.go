// Package config carrega as configurações do askchat a partir de flags,
// variáveis de ambiente ASKCHAT_* e de um arquivo .env opcional.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "ASKCHAT"

// Chaves usadas no viper. As flags são ligadas com os mesmos nomes.
const (
	KeyEndpoint    = "endpoint"
	KeyPath        = "path"
	KeyLogLevel    = "log-level"
	KeyLogFile     = "log-file"
	KeyInFlight    = "in-flight"
	KeyMockAddr    = "mock.addr"
	KeyMockAnswer  = "mock.answer"
	KeyMockLatency = "mock.latency"
)

const (
	DefaultEndpoint = "http://localhost:5000"
	DefaultPath     = "/ask"
	DefaultLogLevel = "info"
	DefaultInFlight = "reject"
	DefaultMockAddr = ":5000"
)

type Config struct {
	// Cliente
	Endpoint string
	Path     string
	InFlight string

	// Log
	LogLevel string
	LogFile  string

	// Backend mock
	Mock MockConfig
}

type MockConfig struct {
	Addr    string
	Answer  string
	Latency time.Duration
}

// New retorna uma instância do viper com os defaults e as variáveis de ambiente.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyEndpoint, DefaultEndpoint)
	v.SetDefault(KeyPath, DefaultPath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyInFlight, DefaultInFlight)
	v.SetDefault(KeyMockAddr, DefaultMockAddr)
	v.SetDefault(KeyMockAnswer, "")
	v.SetDefault(KeyMockLatency, time.Duration(0))

	return v
}

// LoadDotEnv carrega as variáveis dos arquivos .env no ambiente do processo.
// Variáveis já definidas prevalecem. Arquivos ausentes são ignorados.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Load lê as configurações resolvidas de v.
func Load(v *viper.Viper) *Config {
	return &Config{
		Endpoint: strings.TrimSpace(v.GetString(KeyEndpoint)),
		Path:     strings.TrimSpace(v.GetString(KeyPath)),
		InFlight: strings.ToLower(strings.TrimSpace(v.GetString(KeyInFlight))),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:  strings.TrimSpace(v.GetString(KeyLogFile)),
		Mock: MockConfig{
			Addr:    v.GetString(KeyMockAddr),
			Answer:  v.GetString(KeyMockAnswer),
			Latency: v.GetDuration(KeyMockLatency),
		},
	}
}
