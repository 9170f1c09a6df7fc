// Package config reads process configuration from environment variables.
package config

import (
	"os"

	"github.com/YaCodeDev/GoYaTgBotKit/valueparser"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
)

// GetEnv retrieves the value of an environment variable, parses it to the specified type T,
// and returns it. If the variable is not set or fails to parse, it returns fallback.
// If the variable is required and not usable, it logs a fatal error and exits the program.
//
// Example usage:
//
//	addr := config.GetEnv("BOT_LISTEN_ADDR", ":8080", false, log)
func GetEnv[T valueparser.ParsableType](
	key string,
	fallback T,
	required bool,
	log yalogger.Logger,
) T {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		parsed, err := valueparser.ParseValue[T](value)
		if err == nil {
			return parsed
		}

		log.Errorf("Failed to parse environment variable %s: %v", key, err)
	}

	if required {
		log.Fatalf("Environment variable %s is required", key)
	}

	log.Debugf("Environment variable %s is not set, using default value %v", key, fallback)

	return fallback
}

// GetEnvArray is GetEnv for separator-delimited lists. A nil separator means ",".
//
// Example usage:
//
//	admins := config.GetEnvArray[int64]("BOT_ADMIN_IDS", nil, nil, false, log)
func GetEnvArray[T valueparser.ParsableType](
	key string,
	fallback []T,
	separator *string,
	required bool,
	log yalogger.Logger,
) []T {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		parsed, err := valueparser.ParseArray[T](value, separator)
		if err == nil {
			return parsed
		}

		log.Errorf("Failed to parse environment variable %s: %v", key, err)
	}

	if required {
		log.Fatalf("Environment variable %s is required", key)
	}

	log.Debugf("Environment variable %s is not set, using default value %v", key, fallback)

	return fallback
}

func safetyCheck(log *yalogger.Logger) {
	if *log == nil {
		*log = yalogger.NewBaseLogger(nil).NewLogger()
	}
}
