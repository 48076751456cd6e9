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

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(NetworkTypeTCP, "127.0.0.1", 4059)
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &GXTcpClient{}, c)
	assert.Equal(t, "127.0.0.1:4059", c.GetName())

	u, err := NewClient(NetworkTypeUDP, "127.0.0.1", 4059)
	require.NoError(t, err)
	defer u.Close()
	assert.IsType(t, &GXUdpClient{}, u)

	_, err = NewClient(NetworkType(9), "127.0.0.1", 4059)
	assert.ErrorIs(t, err, gxcommon.ErrUnknownEnum)
}

func TestNewServer(t *testing.T) {
	s, err := NewServer(NetworkTypeTCP, "127.0.0.1", 0)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &GXTcpServer{}, s)
	assert.Nil(t, s.Addr())

	u, err := NewServer(NetworkTypeUDP, "127.0.0.1", 0)
	require.NoError(t, err)
	defer u.Close()
	assert.IsType(t, &GXUdpServer{}, u)
	assert.NotNil(t, u.Addr())

	_, err = NewServer(NetworkType(9), "127.0.0.1", 0)
	assert.ErrorIs(t, err, gxcommon.ErrUnknownEnum)
}

func TestNetworkTypeParse(t *testing.T) {
	n, err := NetworkTypeParse("tcp")
	require.NoError(t, err)
	assert.Equal(t, NetworkTypeTCP, n)
	assert.Equal(t, "UDP", NetworkTypeUDP.String())
	assert.Equal(t, "NetworkType(9)", NetworkType(9).String())
	assert.Equal(t, "tcp6", NetworkTypeTCP.network(true))
	assert.Equal(t, "udp", NetworkTypeUDP.network(false))

	n, err = NetworkTypeParse(" Udp ")
	require.NoError(t, err)
	assert.Equal(t, NetworkTypeUDP, n)

	_, err = NetworkTypeParse("sctp")
	assert.ErrorIs(t, err, gxcommon.ErrUnknownEnum)
}
