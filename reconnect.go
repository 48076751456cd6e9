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
	"fmt"
	"time"

	"github.com/Gurux/gxcommon-go"
)

// superviseReconnect starts the reconnect supervisor after an unexpected
// disconnect. At most one supervisor runs at a time.
func (c *GXTcpClient) superviseReconnect() {
	if !c.config.Reconnect.Enabled || c.ctx.Err() != nil {
		return
	}
	c.reconnectMu.Lock()
	defer c.reconnectMu.Unlock()
	if c.reconnectCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.reconnectCancel = cancel
	go func() {
		defer func() {
			c.reconnectMu.Lock()
			cancel()
			c.reconnectCancel = nil
			c.reconnectMu.Unlock()
		}()
		c.reconnect(ctx)
	}()
}

// stopReconnect cancels a running supervisor.
func (c *GXTcpClient) stopReconnect() {
	c.reconnectMu.Lock()
	cancel := c.reconnectCancel
	c.reconnectMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// reconnect runs Reconnecting -> Reconnected | ConnectionFailed.
func (c *GXTcpClient) reconnect(ctx context.Context) {
	cfg := c.config.Reconnect
	attempt := 0
	for cfg.MaxAttempts == 0 || attempt < cfg.MaxAttempts {
		attempt++
		c.statef(ConnectionStateReconnecting, nil)
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.reconnecting", c.hostName, c.port, attempt))
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.Interval):
		}

		c.transition.Lock()
		if ctx.Err() != nil || c.IsConnected() {
			c.transition.Unlock()
			return
		}
		err := c.connect(ctx)
		c.transition.Unlock()
		if err == nil {
			c.statef(ConnectionStateReconnected, nil)
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
	err := fmt.Errorf("%w: %d attempts", ErrReconnectExhausted, attempt)
	c.trace(gxcommon.TraceTypesError, c.msg("msg.reconnect_failed", c.hostName, c.port, attempt))
	c.statef(ConnectionStateConnectionFailed, err)
}
