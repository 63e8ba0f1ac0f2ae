package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	currentSchemaVersion = 1
	configFileMode       = 0o600
	configDirMode        = 0o700
	tempFilePattern      = ".config-*.toml.tmp"
)

type fileSchema struct {
	Version             int           `toml:"version"`
	Endpoint            string        `toml:"endpoint"`
	TelegramAPIEndpoint string        `toml:"telegram_api_endpoint"`
	TelegramChatID      string        `toml:"telegram_chat_id,omitempty"`
	RetryPeriod         string        `toml:"retry_period"`
	RequestTimeout      string        `toml:"request_timeout"`
	Log                 logSchema     `toml:"log"`
	Secrets             secretsSchema `toml:"secrets"`
}

type logSchema struct {
	File         string `toml:"file"`
	Level        string `toml:"level"`
	ConsoleLevel string `toml:"console_level"`
}

type secretsSchema struct {
	Dir      string   `toml:"dir"`
	Backends []string `toml:"backends"`
}

// Tokens are never written; they belong in the environment or the secret store.
func defaultSchema(homeDir string) fileSchema {
	return fileSchema{
		Version:             currentSchemaVersion,
		Endpoint:            DefaultEndpoint,
		TelegramAPIEndpoint: DefaultTelegramAPIEndpoint,
		RetryPeriod:         DefaultRetryPeriod.String(),
		RequestTimeout:      DefaultRequestTimeout.String(),
		Log: logSchema{
			File:         DefaultLogFile,
			Level:        DefaultLogLevel,
			ConsoleLevel: DefaultConsoleLevel,
		},
		Secrets: secretsSchema{
			Dir:      DefaultSecretsDir(homeDir),
			Backends: append([]string(nil), DefaultSecretBackends...),
		},
	}
}

// WriteDefault writes a default config file to path through a temp file
// and rename. An existing file is kept unless force is set.
func WriteDefault(path string, homeDir string, force bool) error {
	homeDir, err := resolveHome(homeDir)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	return writeSchema(path, defaultSchema(homeDir))
}

func writeSchema(path string, file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
}
