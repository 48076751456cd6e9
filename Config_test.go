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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestDefaultConfigs_AreValid(t *testing.T) {
	tc := DefaultTcpClientConfig()
	require.NoError(t, tc.Validate())
	assert.Equal(t, 5*time.Second, tc.ConnectTimeout)
	assert.False(t, tc.KeepAlive.Disabled)
	assert.False(t, tc.Reconnect.Enabled)

	ts := DefaultTcpServerConfig()
	require.NoError(t, ts.Validate())
	assert.Equal(t, 1, ts.MaxClients)
	assert.Equal(t, 100*time.Millisecond, ts.SettleDelay)

	uc := DefaultUdpClientConfig()
	require.NoError(t, uc.Validate())

	us := DefaultUdpServerConfig()
	require.NoError(t, us.Validate())
	assert.False(t, us.EchoOnReceivedData)
}

func TestConfig_WithDefaultsFillsZeroValues(t *testing.T) {
	var tc TcpClientConfig
	tc.withDefaults()
	assert.Equal(t, defaultBufferSize, tc.ReceiveBufferSize)
	assert.Equal(t, defaultBufferSize, tc.SendBufferSize)
	assert.Equal(t, defaultConnectTimeout, tc.ConnectTimeout)
	assert.Equal(t, time.Second, tc.Reconnect.Interval)
	assert.Equal(t, defaultKeepAlive(), tc.KeepAlive)

	var ts TcpServerConfig
	ts.withDefaults()
	assert.Equal(t, 1, ts.MaxClients)
	assert.Equal(t, defaultSettleDelay, ts.SettleDelay)
	assert.Equal(t, defaultKeepAlive(), ts.KeepAlive)

	off := TcpClientConfig{KeepAlive: KeepAliveConfig{Disabled: true}}
	off.withDefaults()
	assert.Equal(t, KeepAliveConfig{Disabled: true}, off.KeepAlive)

	us := UdpServerConfig{ReplyRate: rate.Limit(10)}
	us.withDefaults()
	assert.Equal(t, 1, us.ReplyBurst)
}

func TestConfig_ValidateRejectsOutOfRange(t *testing.T) {
	tc := DefaultTcpClientConfig()
	tc.ReceiveBufferSize = -1
	assert.ErrorIs(t, tc.Validate(), ErrInvalidConfig)

	tc = DefaultTcpClientConfig()
	tc.ConnectTimeout = -time.Second
	assert.ErrorIs(t, tc.Validate(), ErrInvalidConfig)

	tc = DefaultTcpClientConfig()
	tc.Reconnect.MaxAttempts = -1
	assert.ErrorIs(t, tc.Validate(), ErrInvalidConfig)

	tc = DefaultTcpClientConfig()
	tc.Termination = TerminationKind(-1)
	assert.ErrorIs(t, tc.Validate(), ErrUnsupportedKind)

	ts := DefaultTcpServerConfig()
	ts.KeepAlive.RetryCount = -3
	assert.ErrorIs(t, ts.Validate(), ErrInvalidConfig)

	us := DefaultUdpServerConfig()
	us.ReplyBurst = -1
	assert.ErrorIs(t, us.Validate(), ErrInvalidConfig)
}

func TestNewEndpoints_RejectInvalidConfig(t *testing.T) {
	_, err := NewGXTcpClient("127.0.0.1", 1, TcpClientConfig{SendTimeout: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGXTcpServer("127.0.0.1", 0, TcpServerConfig{Termination: TerminationKind(77)})
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = NewGXUdpClient("127.0.0.1", 1, UdpClientConfig{ReceiveBufferSize: -5})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGXUdpServer("127.0.0.1", 0, UdpServerConfig{SendTimeout: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
