// Package gxendpoint provides TCP and UDP client and server endpoints for
// Gurux components. Messages are delimited by an optional termination
// marker appended to sent data (see TerminationKind).
//
// Endpoints
//
//   - GXTcpClient: connects to a server and relays every read through the
//     DataReceived handler as-is. It can reconnect after an unexpected
//     disconnect (see ReconnectConfig).
//   - GXTcpServer: accepts clients and buffers their data until it contains
//     the termination marker. The whole buffer is delivered as one message.
//   - GXUdpClient: a UDP socket with connect and disconnect semantics.
//   - GXUdpServer: a bound UDP socket that answers "ping" with "pong" and
//     optionally echoes received text back to the sender.
//
// # Construction
//
// Every endpoint is created with a target or bind address and a config.
// Zero config values are replaced with defaults.
//
// Example
//
//	c, err := gxendpoint.NewGXTcpClient("127.0.0.1", 4059, gxendpoint.DefaultTcpClientConfig())
//	if err != nil {
//	    // invalid config
//	}
//	defer c.Close()
//
//	c.SetOnDataReceived(func(sender gxendpoint.Endpoint, e gxendpoint.ReceivedEventArgs) {
//	    // handle e.Data()
//	})
//	if !c.Connect(ctx) {
//	    // connect failed or timed out
//	}
//	err = c.SendString(ctx, "hello", gxendpoint.WithTermination(gxendpoint.TerminationKindLineFeed))
//
// # Termination markers
//
// The marker is a suffix, not a length prefix. A protocol using it must make
// sure the marker bytes never occur inside a message.
//
// # Errors
//
// Connect returns false on failure and logs the reason. Send returns
// ErrNotConnected when the endpoint is not connected. Faults of background
// receive loops are logged, routed to the Error handler and turned into a
// disconnect; they are never returned to the caller.
//
// # Notes
//
// Event handlers are called on the goroutine that caused the event. They must
// not call Connect or Disconnect of the same endpoint synchronously.
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
