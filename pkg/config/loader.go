package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")

	mu       sync.RWMutex
	loaded   = make(map[string]any)
	dotenvDo sync.Once
)

// Load parses environment variables into cfg based on its `env` field
// tags. The first call loads a .env file when one exists; each distinct
// config type is parsed once and cached, so repeated loads across the
// application see identical values.
func Load[T any](cfg *T) error {
	dotenvDo.Do(func() {
		// A missing .env file is normal outside development.
		_ = godotenv.Load()
	})
	if cfg == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	mu.RLock()
	if cached, ok := loaded[key]; ok {
		*cfg = cached.(T)
		mu.RUnlock()
		return nil
	}
	mu.RUnlock()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	mu.Lock()
	loaded[key] = *cfg
	mu.Unlock()
	return nil
}

// MustLoad is Load for wiring code where a bad configuration should
// stop startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

func typeKey[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
