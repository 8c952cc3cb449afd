package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrNoEnvFile возвращается LoadDotEnv, если ни один из путей не содержит .env.
var ErrNoEnvFile = errors.New("no .env file found")

// ConfigFile - путь к .env файлу и указатель на структуру с тегами envconfig.
type ConfigFile struct {
	// Пустой путь означает только переменные окружения.
	Path string
	// Отсутствующий необязательный файл пропускается.
	Optional bool
	Config   interface{}
}

// LoadConfigFiles загружает .env файлы по порядку и анмаршалит окружение в структуры.
func LoadConfigFiles(configFiles ...*ConfigFile) error {
	for _, f := range configFiles {
		if f.Path != "" {
			err := godotenv.Load(f.Path)
			if err != nil && !(f.Optional && errors.Is(err, os.ErrNotExist)) {
				return err
			}
		}
		if err := LoadConfigs(f.Config); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfigs анмаршалит переменные окружения в переданные структуры.
func LoadConfigs(config ...interface{}) error {
	for _, cfg := range config {
		if err := envconfig.Process("", cfg); err != nil {
			return err
		}
	}
	return nil
}

// LoadDotEnv ищет .env в рабочей директории и двух родительских и загружает первый найденный.
// Уже заданные переменные окружения не перезаписываются.
// Возвращает абсолютный путь загруженного файла.
func LoadDotEnv(extraPaths ...string) (string, error) {
	paths := append([]string{}, extraPaths...)
	if workDir, err := os.Getwd(); err == nil {
		parent := filepath.Dir(workDir)
		paths = append(paths,
			filepath.Join(workDir, ".env"),
			filepath.Join(parent, ".env"),
			filepath.Join(filepath.Dir(parent), ".env"),
		)
	} else {
		paths = append(paths, ".env")
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p, nil
		}
		return abs, nil
	}
	return "", ErrNoEnvFile
}
