// Package config builds the immutable runtime configuration from a .env
// file, an optional TOML config file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/reviewbot/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/reviewbot"
	envPrefix  = "REVIEWBOT"

	// PathEnv overrides the config file location.
	PathEnv = "REVIEWBOT_CONFIG"

	DefaultEndpoint            = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultTelegramAPIEndpoint = "https://api.telegram.org/bot%s/%s"
	DefaultRetryPeriod         = 600 * time.Second
	DefaultRequestTimeout      = 30 * time.Second
	DefaultLogFile             = "program.log"
	DefaultLogLevel            = "debug"
	DefaultConsoleLevel        = "info"
)

const (
	keyVersion             = "version"
	keyPracticumToken      = "practicum_token"
	keyTelegramToken       = "telegram_token"
	keyTelegramChatID      = "telegram_chat_id"
	keyEndpoint            = "endpoint"
	keyTelegramAPIEndpoint = "telegram_api_endpoint"
	keyRetryPeriod         = "retry_period"
	keyRequestTimeout      = "request_timeout"
	keyLogFile             = "log.file"
	keyLogLevel            = "log.level"
	keyLogConsoleLevel     = "log.console_level"
	keySecretsDir          = "secrets.dir"
	keySecretsBackends     = "secrets.backends"
)

// DefaultSecretBackends is the lookup order of the credential fallback chain.
var DefaultSecretBackends = []string{"keyring", "pass", "file"}

var ErrConfigExists = errors.New("config file already exists")

type LogConfig struct {
	File         string
	Level        slog.Level
	ConsoleLevel slog.Level
}

// Config is built once by Load and passed by value.
type Config struct {
	PracticumToken      string
	TelegramToken       string
	TelegramChatID      string
	Endpoint            string
	TelegramAPIEndpoint string
	RetryPeriod         time.Duration
	RequestTimeout      time.Duration
	Log                 LogConfig
	SecretsDir          string
	SecretBackends      []string
	// File is the config file that was read, empty when none was found.
	File string
}

type Options struct {
	Viper *viper.Viper
	// EnvFiles are loaded with godotenv before reading the environment;
	// missing files are ignored. Defaults to ".env".
	EnvFiles []string
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string
	HomeDir    string
}

func Load(opts Options) (Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Config{}, err
	}

	homeDir, err := resolveHome(opts.HomeDir)
	if err != nil {
		return Config{}, err
	}

	v := opts.Viper
	if v == nil {
		v = viper.New()
	}
	setDefaults(v, homeDir)
	if err := bindEnv(v); err != nil {
		return Config{}, err
	}

	configFile := strings.TrimSpace(opts.ConfigFile)
	if configFile == "" {
		configFile = strings.TrimSpace(os.Getenv(PathEnv))
	}
	v.SetConfigType(configType)
	if configFile != "" {
		v.SetConfigFile(expandHome(configFile, homeDir))
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if version := v.GetInt(keyVersion); version > currentSchemaVersion {
		return Config{}, fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}

	retryPeriod, err := durationSetting(v, keyRetryPeriod)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := durationSetting(v, keyRequestTimeout)
	if err != nil {
		return Config{}, err
	}

	return Config{
		PracticumToken:      strings.TrimSpace(v.GetString(keyPracticumToken)),
		TelegramToken:       strings.TrimSpace(v.GetString(keyTelegramToken)),
		TelegramChatID:      strings.TrimSpace(v.GetString(keyTelegramChatID)),
		Endpoint:            strings.TrimSpace(v.GetString(keyEndpoint)),
		TelegramAPIEndpoint: strings.TrimSpace(v.GetString(keyTelegramAPIEndpoint)),
		RetryPeriod:         retryPeriod,
		RequestTimeout:      requestTimeout,
		Log: LogConfig{
			File:         expandHome(v.GetString(keyLogFile), homeDir),
			Level:        logging.ParseLevel(v.GetString(keyLogLevel)),
			ConsoleLevel: logging.ParseLevel(v.GetString(keyLogConsoleLevel)),
		},
		SecretsDir:     expandHome(v.GetString(keySecretsDir), homeDir),
		SecretBackends: normalizeNames(v.GetStringSlice(keySecretsBackends)),
		File:           v.ConfigFileUsed(),
	}, nil
}

// DefaultPath is where `config init` writes when no path is given.
func DefaultPath(homeDir string) (string, error) {
	if path := strings.TrimSpace(os.Getenv(PathEnv)); path != "" {
		return path, nil
	}

	homeDir, err := resolveHome(homeDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, configDir, configName+"."+configType), nil
}

func DefaultSecretsDir(homeDir string) string {
	return filepath.Join(homeDir, configDir, "secrets")
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(keyEndpoint, DefaultEndpoint)
	v.SetDefault(keyTelegramAPIEndpoint, DefaultTelegramAPIEndpoint)
	v.SetDefault(keyRetryPeriod, DefaultRetryPeriod.String())
	v.SetDefault(keyRequestTimeout, DefaultRequestTimeout.String())
	v.SetDefault(keyLogFile, DefaultLogFile)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyLogConsoleLevel, DefaultConsoleLevel)
	v.SetDefault(keySecretsDir, DefaultSecretsDir(homeDir))
	v.SetDefault(keySecretsBackends, DefaultSecretBackends)
}

// bindEnv maps the credentials to their historical unprefixed names; every
// other key is reachable as REVIEWBOT_<KEY> with dots turned into underscores.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		keyPracticumToken: "PRACTICUM_TOKEN",
		keyTelegramToken:  "TELEGRAM_TOKEN",
		keyTelegramChatID: "TELEGRAM_CHAT_ID",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	return nil
}

// durationSetting accepts Go duration strings ("10m") and bare numbers,
// which are read as seconds.
func durationSetting(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.Get(key)
	if text, ok := raw.(string); ok {
		text = strings.TrimSpace(text)
		if d, err := time.ParseDuration(text); err == nil {
			return positiveDuration(key, d)
		}
		raw = text
	}

	seconds, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: invalid duration %v", key, raw)
	}

	return positiveDuration(key, time.Duration(seconds)*time.Second)
}

func positiveDuration(key string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("parse %s: duration must be positive, got %s", key, d)
	}

	return d, nil
}

// normalizeNames accepts both TOML arrays and comma or space separated env values.
func normalizeNames(raw []string) []string {
	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, name := range strings.FieldsFunc(entry, func(r rune) bool { return r == ',' || r == ' ' }) {
			names = append(names, strings.ToLower(name))
		}
	}

	return names
}

func resolveHome(homeDir string) (string, error) {
	if homeDir != "" {
		return homeDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return homeDir, nil
}

func expandHome(path string, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
