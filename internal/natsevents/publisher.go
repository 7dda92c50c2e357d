/*
 mcsalloc, allocates gdxsv match servers on GCE and Hetzner Cloud.
 Copyright (C) 2025 The gdxsv mcsalloc authors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package natsevents publishes allocation events to NATS so lobbies can
// learn about new match servers without polling the controller.
package natsevents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("nats not connected")

type Publisher struct {
	nc     *nats.Conn
	prefix string
}

// Connect dials url and keeps reconnecting forever. Every subject passed
// to Publish is prefixed with prefix if it is not empty.
func Connect(logger *slog.Logger, url string, prefix string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("mcsalloc"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &Publisher{nc: nc, prefix: prefix}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.nc == nil || p.nc.IsClosed() {
		return ErrNotConnected
	}
	return p.nc.Publish(Subject(p.prefix, subject), payload)
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p.nc == nil {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return fmt.Errorf("drain: %w", err)
	}
	return nil
}

func Subject(prefix string, subject string) string {
	if prefix == "" {
		return subject
	}
	return prefix + "." + subject
}
