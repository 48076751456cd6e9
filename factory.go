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
	"net"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/text/language"
)

// Events is the event and trace surface shared by all endpoints.
type Events interface {
	SetOnConnected(value ConnectedHandler)
	SetOnDisconnected(value DisconnectedHandler)
	SetOnStateChanged(value StateChangedHandler)
	SetOnDataReceived(value ReceivedHandler)
	SetOnError(value ErrorHandler)
	SetOnTrace(value TraceHandler)
	GetTrace() gxcommon.TraceLevel
	SetTrace(traceLevel gxcommon.TraceLevel) error
	GetBytesSent() uint64
	GetBytesReceived() uint64
	ResetByteCounters()
	Localize(language language.Tag)
}

// Client is implemented by GXTcpClient and GXUdpClient.
type Client interface {
	Endpoint
	Events
	Connect(ctx context.Context) bool
	Disconnect()
	IsConnected() bool
	Send(ctx context.Context, data []byte) error
	SendString(ctx context.Context, text string, opts ...SendOption) error
	Close() error
}

// Server is implemented by GXTcpServer and GXUdpServer.
type Server interface {
	Endpoint
	Events
	Start() error
	Stop()
	IsRunning() bool
	Addr() net.Addr
	Close() error
}

var (
	_ Client = (*GXTcpClient)(nil)
	_ Client = (*GXUdpClient)(nil)
	_ Server = (*GXTcpServer)(nil)
	_ Server = (*GXUdpServer)(nil)
)

// NewClient creates a client of the given protocol with default settings.
func NewClient(protocol NetworkType, hostName string, port int) (Client, error) {
	switch protocol {
	case NetworkTypeTCP:
		c, err := NewGXTcpClient(hostName, port, DefaultTcpClientConfig())
		if err != nil {
			return nil, err
		}
		return c, nil
	case NetworkTypeUDP:
		c, err := NewGXUdpClient(hostName, port, DefaultUdpClientConfig())
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: network type %d", gxcommon.ErrUnknownEnum, int(protocol))
}

// NewServer creates a server of the given protocol with default settings.
// A UDP server is bound immediately.
func NewServer(protocol NetworkType, address string, port int) (Server, error) {
	switch protocol {
	case NetworkTypeTCP:
		s, err := NewGXTcpServer(address, port, DefaultTcpServerConfig())
		if err != nil {
			return nil, err
		}
		return s, nil
	case NetworkTypeUDP:
		s, err := NewGXUdpServer(address, port, DefaultUdpServerConfig())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: network type %d", gxcommon.ErrUnknownEnum, int(protocol))
}
