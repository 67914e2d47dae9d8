// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"os"
	"strconv"
	"time"
)

// PoolConfig holds the postgres connection settings shared by the server and the cli.
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GetPoolConfigFromEnv reads the pool configuration from the environment.
//
// Environment variables:
// - POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_HOST, POSTGRES_PORT (default 5432), POSTGRES_DB
// - DB_MAX_OPEN_CONNS: maximum number of open connections (default: 10)
// - DB_MIN_CONNS: connections kept open while idle (default: 2)
// - DB_CONN_MAX_LIFETIME: e.g. "1h" (default: 1 hour)
// - DB_CONN_MAX_IDLE_TIME: e.g. "5m" (default: 5 minutes)
func GetPoolConfigFromEnv() PoolConfig {
	cfg := PoolConfig{
		MaxOpenConns:    10,
		MinConns:        2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,

		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DB"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}

	if val, ok := envInt32("DB_MAX_OPEN_CONNS"); ok && val > 0 {
		cfg.MaxOpenConns = val
	}
	if val, ok := envInt32("DB_MIN_CONNS"); ok && val >= 0 {
		cfg.MinConns = val
	}
	if val, ok := envDuration("DB_CONN_MAX_LIFETIME"); ok {
		cfg.ConnMaxLifetime = val
	}
	if val, ok := envDuration("DB_CONN_MAX_IDLE_TIME"); ok {
		cfg.ConnMaxIdleTime = val
	}

	return cfg
}

func envInt32(key string) (int32, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return int32(val), true
}

func envDuration(key string) (time.Duration, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}
