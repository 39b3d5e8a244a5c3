// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache keeps encoded list responses in Valkey (Redis-compatible)
// so repeated browsing of a collection skips the database and the listing
// pipeline. A nil *ListCache is valid and caches nothing.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// cmdTimeout bounds each cache command. A slow cache is treated as a miss,
// so list requests never wait on it for long.
const cmdTimeout = 500 * time.Millisecond

// ValkeyOptions locate the Valkey server behind the list cache.
type ValkeyOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (o ValkeyOptions) addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// ConnectValkey opens a client for the list cache and pings it once. The
// caller owns the client and closes it on shutdown.
func ConnectValkey(ctx context.Context, opts ValkeyOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.addr(),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  cmdTimeout,
		WriteTimeout: cmdTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", opts.addr(), err)
	}

	slog.Info("list cache connected", "addr", opts.addr(), "db", opts.DB)
	return client, nil
}
