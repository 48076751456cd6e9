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
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/Gurux/gxcommon-go"
)

// GXUdpClient is a UDP client with connect and disconnect semantics.
//
// Connect binds the default peer of the socket. Every datagram received from
// the peer is delivered through the DataReceived handler. No termination
// marker is appended to sent data unless WithTermination is given.
type GXUdpClient struct {
	endpointBase

	hostName string
	port     int
	config   UdpClientConfig

	transition sync.Mutex
	connected  connectionFlag

	connMu sync.RWMutex
	conn   net.Conn

	wake chan net.Conn

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewGXUdpClient creates a UDP client for hostName:port.
func NewGXUdpClient(hostName string, port int, config UdpClientConfig) (*GXUdpClient, error) {
	config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &GXUdpClient{
		hostName: hostName,
		port:     port,
		config:   config,
		wake:     make(chan net.Conn, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.init(c, "udp_client", c.String(), config.Logger, config.Metrics)
	context.AfterFunc(ctx, c.closeConn)
	go c.receiveLoop()
	return c, nil
}

func (c *GXUdpClient) String() string {
	return net.JoinHostPort(c.hostName, strconv.Itoa(c.port))
}

// GetName returns the target address.
func (c *GXUdpClient) GetName() string {
	return c.String()
}

// HostName returns the target host name or address.
func (c *GXUdpClient) HostName() string {
	return c.hostName
}

// Port returns the target port.
func (c *GXUdpClient) Port() int {
	return c.port
}

// Config returns a copy of the client settings.
func (c *GXUdpClient) Config() UdpClientConfig {
	return c.config
}

// IsConnected reports whether the client is connected.
func (c *GXUdpClient) IsConnected() bool {
	return c.connected.get()
}

// LocalAddr returns the local address of the socket, or nil if the client
// is not connected.
func (c *GXUdpClient) LocalAddr() net.Addr {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}

// Connect binds the socket to the target. It returns false if the client is
// already connected or the target can not be resolved.
func (c *GXUdpClient) Connect(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	c.transition.Lock()
	defer c.transition.Unlock()
	if c.IsConnected() {
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.already_connected", c.hostName, c.port))
		return false
	}
	if c.ctx.Err() != nil {
		return false
	}
	c.statef(ConnectionStateConnecting, nil)
	c.trace(gxcommon.TraceTypesInfo, c.msg("msg.connecting_to", NetworkTypeUDP.String(), c.hostName, c.port, int64(0)))

	dctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()
	opts := socketOptions{
		receiveBufferSize: c.config.ReceiveBufferSize,
		sendBufferSize:    c.config.SendBufferSize,
	}
	d := net.Dialer{Control: socketControl(opts)}
	conn, err := d.DialContext(dctx, NetworkTypeUDP.network(c.config.UseIPv6), c.String())
	if err != nil {
		c.metrics.AddConnectFailed(c.kind)
		c.trace(gxcommon.TraceTypesError, c.msg("msg.connect_failed", c.hostName, c.port, err))
		c.statef(ConnectionStateConnectionFailed, err)
		return false
	}
	applyBuffers(conn, opts)

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	if c.connected.set(true) {
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.connected_to", c.hostName, c.port))
		c.connectedf()
	}
	c.statef(ConnectionStateConnected, nil)
	select {
	case <-c.wake:
	default:
	}
	c.wake <- conn
	return true
}

// Disconnect closes the socket. It is a no-op when the client is not
// connected.
func (c *GXUdpClient) Disconnect() {
	c.transition.Lock()
	defer c.transition.Unlock()
	c.disconnect(nil)
}

func (c *GXUdpClient) disconnect(expected net.Conn) {
	c.connMu.Lock()
	conn := c.conn
	if conn == nil || (expected != nil && conn != expected) {
		c.connMu.Unlock()
		return
	}
	c.conn = nil
	c.connMu.Unlock()

	c.statef(ConnectionStateDisconnecting, nil)
	c.trace(gxcommon.TraceTypesInfo, c.msg("msg.closing_connection", c.hostName, c.port))
	_ = conn.Close()
	if c.connected.set(false) {
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.connection_closed", c.hostName, c.port))
		c.disconnectedf()
	}
	c.statef(ConnectionStateDisconnected, nil)
}

func (c *GXUdpClient) closeConn() {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// Send sends data as one datagram to the target.
func (c *GXUdpClient) Send(ctx context.Context, data []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn == nil || !c.IsConnected() {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.traceData(gxcommon.TraceTypesSent, "TX", data)
	n, err := writeContext(ctx, conn, c.config.SendTimeout, func() (int, error) {
		return conn.Write(data)
	})
	if n > 0 {
		c.addSent(n)
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if classifyFault(err) == faultClosed {
		return ErrNotConnected
	}
	return fmt.Errorf("send to %s: %w", c, err)
}

// SendString encodes text and sends it. The termination marker is appended
// only if WithTermination is given.
func (c *GXUdpClient) SendString(ctx context.Context, text string, opts ...SendOption) error {
	o := applySendOptions(c.config.DefaultEncoding, TerminationKindNone, opts)
	data, err := o.frame(text)
	if err != nil {
		return err
	}
	return c.Send(ctx, data)
}

func (c *GXUdpClient) receiveLoop() {
	defer close(c.done)
	buf := make([]byte, c.config.ReceiveBufferSize)
	for {
		select {
		case <-c.ctx.Done():
			return
		case conn := <-c.wake:
			c.read(conn, buf)
		}
	}
}

// read delivers datagrams from conn until the socket is closed or fails.
func (c *GXUdpClient) read(conn net.Conn, buf []byte) {
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			c.addReceived(n)
			data := bytes.Clone(buf[:n])
			c.traceData(gxcommon.TraceTypesReceived, "RX", data)
			c.receivef(data, conn.RemoteAddr())
		}
		if err == nil {
			continue
		}
		// An ICMP port unreachable of an earlier datagram.
		if errors.Is(err, syscall.ECONNREFUSED) {
			c.fault(faultRecoverable, err, c.msg("msg.connection_failed", err))
			continue
		}
		kind := classifyFault(err)
		switch kind {
		case faultClosed:
			return
		case faultRecoverable:
			c.fault(kind, err, c.msg("msg.connection_failed", err))
			continue
		}
		c.fault(kind, err, c.msg("msg.connection_lost", c.hostName, c.port))
		c.transition.Lock()
		c.disconnect(conn)
		c.transition.Unlock()
		return
	}
}

// Close disposes the client. Close is idempotent and always returns nil.
func (c *GXUdpClient) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		if !waitTimeout(c.done, defaultDisposeWait) {
			c.log.Debug("receive loop did not stop in time")
		}
		c.transition.Lock()
		c.disconnect(nil)
		c.transition.Unlock()
	})
	return nil
}
