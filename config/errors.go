package config

import "errors"

var (
	ErrEmptyModelDir    = errors.New("models.dir must not be empty")
	ErrInvalidPort      = errors.New("http.port must be between 1 and 65535")
	ErrInvalidCacheSize = errors.New("cache.size must not be negative")
	ErrInvalidLogLevel  = errors.New("log.level must be one of debug, info, warn, error")
	ErrEmptyHistoryPath = errors.New("history.path must be set when history is enabled")
)
