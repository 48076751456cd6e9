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
	"fmt"
	"strings"
	"sync"

	"github.com/Gurux/gxcommon-go"
)

// ConnectionState is the lifecycle phase of an endpoint.
//
// The TCP and UDP clients drive Connecting, Connected, Disconnecting,
// Disconnected and ConnectionFailed. Reconnecting and Reconnected are
// emitted by the TCP client reconnect supervisor. Pulse is reserved.
type ConnectionState int

const (
	// ConnectionStateNone is the initial state.
	ConnectionStateNone ConnectionState = iota
	// ConnectionStateConnecting is reported before a connect attempt.
	ConnectionStateConnecting
	// ConnectionStateConnected is reported after the connection is established.
	ConnectionStateConnected
	// ConnectionStateDisconnecting is reported before the socket is closed.
	ConnectionStateDisconnecting
	// ConnectionStateDisconnected is reported after the socket is closed.
	ConnectionStateDisconnected
	// ConnectionStateConnectionFailed is reported when a connect attempt fails.
	ConnectionStateConnectionFailed
	// ConnectionStateReconnecting is reported before each reconnect attempt.
	ConnectionStateReconnecting
	// ConnectionStateReconnected is reported when a reconnect attempt succeeds.
	ConnectionStateReconnected
	// ConnectionStatePulse is reserved.
	ConnectionStatePulse
)

var connectionStateNames = [...]string{
	"None",
	"Connecting",
	"Connected",
	"Disconnecting",
	"Disconnected",
	"ConnectionFailed",
	"Reconnecting",
	"Reconnected",
	"Pulse",
}

// ConnectionStateParse converts the given string into a ConnectionState value.
func ConnectionStateParse(value string) (ConnectionState, error) {
	for i, name := range connectionStateNames {
		if strings.EqualFold(name, value) {
			return ConnectionState(i), nil
		}
	}
	return ConnectionStateNone, fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
}

// String returns the canonical name of the connection state.
// It satisfies fmt.Stringer.
func (g ConnectionState) String() string {
	if g >= 0 && int(g) < len(connectionStateNames) {
		return connectionStateNames[g]
	}
	return fmt.Sprintf("ConnectionState(%d)", int(g))
}

// connectionFlag is the connected/running flag of one endpoint.
// It reports whether a set actually changed the value so that
// Connected and Disconnected fire once per transition.
type connectionFlag struct {
	mu    sync.Mutex
	value bool
}

func (f *connectionFlag) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// set stores value and returns true if the flag changed.
func (f *connectionFlag) set(value bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.value == value {
		return false
	}
	f.value = value
	return true
}
