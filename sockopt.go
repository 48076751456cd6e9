package gxendpoint

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"context"
	"net"
	"time"
)

type socketOptions struct {
	reuseAddress      bool
	receiveBufferSize int
	sendBufferSize    int
}

// bufferedConn is implemented by *net.TCPConn and *net.UDPConn.
type bufferedConn interface {
	SetReadBuffer(bytes int) error
	SetWriteBuffer(bytes int) error
}

// applyBuffers sizes the buffers of an established socket on platforms where
// socketControl does not.
func applyBuffers(conn net.Conn, opts socketOptions) {
	if presetBuffers {
		return
	}
	c, ok := conn.(bufferedConn)
	if !ok {
		return
	}
	if opts.receiveBufferSize > 0 {
		_ = c.SetReadBuffer(opts.receiveBufferSize)
	}
	if opts.sendBufferSize > 0 {
		_ = c.SetWriteBuffer(opts.sendBufferSize)
	}
}

// keepAliveConfig converts the keep-alive settings for the net package.
// Zero durations and counts use the system defaults.
func keepAliveConfig(k KeepAliveConfig) net.KeepAliveConfig {
	if k.Disabled {
		return net.KeepAliveConfig{}
	}
	return net.KeepAliveConfig{
		Enable:   true,
		Idle:     k.Time,
		Interval: k.Interval,
		Count:    k.RetryCount,
	}
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// writeContext runs write bounded by timeout and by the deadline of ctx.
// Cancelling ctx interrupts a blocked write.
func writeContext(ctx context.Context, conn writeDeadliner, timeout time.Duration, write func() (int, error)) (int, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetWriteDeadline(aLongTimeAgo)
	})
	defer stop()
	return write()
}
