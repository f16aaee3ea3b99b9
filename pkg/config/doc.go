// Package config loads typed configuration structs from environment
// variables (with optional .env support for development). Each config
// type is parsed once per process and cached.
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil { ... }
package config
