package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	cache  = make(map[reflect.Type]any)
	dotenv sync.Once
)

// Load populates cfg from environment variables using `env` struct tags.
// Each configuration type is loaded once per process and cached; later
// calls for the same type return the cached value. A .env file in the
// working directory is loaded before the first parse, if present.
func Load[T any](cfg *T) error {
	dotenv.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*cfg)
	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}
	cache[t] = *cfg
	return nil
}

// MustLoad is Load panicking on failure, for use at startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
