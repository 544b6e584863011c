package config

import (
	"github.com/redis/go-redis/v9"
)

// cachingConf configures the redis server used for shared state
type cachingConf struct {
	RedisAddr string `yaml:"redis_addr"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	RedisDB   int    `yaml:"redis_db"`
}

// RedisOptions returns the redis.Options for the configured server; nil if
// redis is not configured
func (c cachingConf) RedisOptions() *redis.Options {
	if c.RedisAddr == "" {
		return nil
	}
	return &redis.Options{
		Addr:     c.RedisAddr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.RedisDB,
	}
}
