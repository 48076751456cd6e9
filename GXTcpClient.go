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
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/Gurux/gxcommon-go"
)

// aLongTimeAgo is a deadline in the past used to interrupt blocked I/O.
var aLongTimeAgo = time.Unix(1, 0)

// GXTcpClient is a TCP client endpoint.
//
// A background receive goroutine is started at construction and runs until
// Close. It delivers every read as-is through the DataReceived handler;
// inbound data is not reassembled into messages.
type GXTcpClient struct {
	endpointBase

	hostName string
	port     int
	config   TcpClientConfig

	// transition serializes Connect and Disconnect.
	transition sync.Mutex
	connected  connectionFlag

	connMu sync.RWMutex
	conn   net.Conn
	// writeMu keeps concurrent sends from interleaving.
	writeMu sync.Mutex

	// wake hands a new connection to the receive loop after Connected
	// has fired.
	wake chan net.Conn

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	reconnectMu     sync.Mutex
	reconnectCancel context.CancelFunc
}

// NewGXTcpClient creates a TCP client for hostName:port. Zero config values
// are replaced with defaults.
func NewGXTcpClient(hostName string, port int, config TcpClientConfig) (*GXTcpClient, error) {
	config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &GXTcpClient{
		hostName: hostName,
		port:     port,
		config:   config,
		wake:     make(chan net.Conn, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.init(c, "tcp_client", c.String(), config.Logger, config.Metrics)
	// Cancelling closes the stream so that a pending read returns.
	context.AfterFunc(ctx, c.closeConn)
	go c.receiveLoop()
	return c, nil
}

func (c *GXTcpClient) String() string {
	return net.JoinHostPort(c.hostName, strconv.Itoa(c.port))
}

// GetName returns the target address.
func (c *GXTcpClient) GetName() string {
	return c.String()
}

// HostName returns the target host name or address.
func (c *GXTcpClient) HostName() string {
	return c.hostName
}

// Port returns the target port.
func (c *GXTcpClient) Port() int {
	return c.port
}

// Config returns a copy of the client settings.
func (c *GXTcpClient) Config() TcpClientConfig {
	return c.config
}

// IsConnected reports whether the client is connected.
func (c *GXTcpClient) IsConnected() bool {
	return c.connected.get()
}

// Connect connects to the target.
//
// It returns false without side effects if the client is already connected.
// A failed attempt, including a connect timeout, is logged and returns
// false; the client stays disconnected.
func (c *GXTcpClient) Connect(ctx context.Context) bool {
	c.transition.Lock()
	defer c.transition.Unlock()
	if c.IsConnected() {
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.already_connected", c.hostName, c.port))
		return false
	}
	c.stopReconnect()
	c.statef(ConnectionStateConnecting, nil)
	if err := c.connect(ctx); err != nil {
		c.statef(ConnectionStateConnectionFailed, err)
		return false
	}
	c.statef(ConnectionStateConnected, nil)
	return true
}

// connect dials the target and publishes the connection. The caller holds
// transition.
func (c *GXTcpClient) connect(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.ctx.Err() != nil {
		return net.ErrClosed
	}
	c.trace(gxcommon.TraceTypesInfo, c.msg("msg.connecting_to", NetworkTypeTCP.String(), c.hostName, c.port, c.config.ConnectTimeout.Milliseconds()))
	conn, err := c.dial(ctx)
	if err != nil {
		c.metrics.AddConnectFailed(c.kind)
		c.trace(gxcommon.TraceTypesError, c.msg("msg.connect_failed", c.hostName, c.port, err))
		return err
	}
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	if c.connected.set(true) {
		c.trace(gxcommon.TraceTypesInfo, c.msg("msg.connected_to", c.hostName, c.port))
		c.connectedf()
	}
	// Drop a connection the receive loop never picked up.
	select {
	case <-c.wake:
	default:
	}
	c.wake <- conn
	return nil
}

// dial races the connect against the connect timeout.
func (c *GXTcpClient) dial(ctx context.Context) (net.Conn, error) {
	dctx, cancel := context.WithTimeoutCause(ctx, c.config.ConnectTimeout, ErrConnectTimeout)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	opts := socketOptions{
		receiveBufferSize: c.config.ReceiveBufferSize,
		sendBufferSize:    c.config.SendBufferSize,
	}
	d := net.Dialer{
		Control:         socketControl(opts),
		KeepAliveConfig: keepAliveConfig(c.config.KeepAlive),
	}
	if c.config.KeepAlive.Disabled {
		d.KeepAlive = -1
	}
	conn, err := d.DialContext(dctx, NetworkTypeTCP.network(c.config.UseIPv6), c.String())
	if err != nil {
		if errors.Is(context.Cause(dctx), ErrConnectTimeout) {
			return nil, fmt.Errorf("%w: %s after %v", ErrConnectTimeout, c, c.config.ConnectTimeout)
		}
		return nil, err
	}
	applyBuffers(conn, opts)
	return conn, nil
}

// Disconnect closes the connection. It is a no-op when the client is not
// connected. A running reconnect supervisor is stopped.
func (c *GXTcpClient) Disconnect() {
	c.stopReconnect()
	c.transition.Lock()
	defer c.transition.Unlock()
	c.disconnect(nil)
}

// disconnect closes the current connection, or only expected if it is not
// nil and still current. It returns true if a connection was closed.
// The caller holds transition.
func (c *GXTcpClient) disconnect(expected net.Conn) bool {
	c.connMu.Lock()
	conn := c.conn
	if conn == nil || (expected != nil && conn != expected) {
		c.connMu.Unlock()
		return false
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
	return true
}

// connectionLost disconnects after a fault on conn and starts the reconnect
// supervisor.
func (c *GXTcpClient) connectionLost(conn net.Conn) {
	c.transition.Lock()
	lost := c.disconnect(conn)
	c.transition.Unlock()
	if lost {
		c.superviseReconnect()
	}
}

// closeConn force closes the current connection without a state change.
func (c *GXTcpClient) closeConn() {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// Send writes data to the connection.
//
// It returns ErrNotConnected if the client is not connected. The write is
// bounded by SendTimeout and by the deadline of ctx; cancelling ctx
// interrupts it. A failed write disconnects the client and is returned.
func (c *GXTcpClient) Send(ctx context.Context, data []byte) error {
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

	c.writeMu.Lock()
	n, err := writeContext(ctx, conn, c.config.SendTimeout, func() (int, error) {
		return conn.Write(data)
	})
	c.writeMu.Unlock()
	if n > 0 {
		c.addSent(n)
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	kind := classifyFault(err)
	if kind == faultClosed {
		return ErrNotConnected
	}
	c.fault(kind, err, c.msg("msg.connection_failed", err))
	c.connectionLost(conn)
	return fmt.Errorf("send to %s: %w", c, err)
}

// SendString encodes text, appends the termination marker unless it is
// already present, and sends it.
func (c *GXTcpClient) SendString(ctx context.Context, text string, opts ...SendOption) error {
	o := applySendOptions(c.config.DefaultEncoding, c.config.Termination, opts)
	data, err := o.frame(text)
	if err != nil {
		return err
	}
	return c.Send(ctx, data)
}

// SendValue converts value to bytes in big endian order and sends it.
// Supported types are those of gxcommon.ToBytes.
func (c *GXTcpClient) SendValue(ctx context.Context, value any) error {
	data, err := gxcommon.ToBytes(value, binary.BigEndian)
	if err != nil {
		return err
	}
	return c.Send(ctx, data)
}

func (c *GXTcpClient) receiveLoop() {
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

// read relays reads from conn until it fails.
func (c *GXTcpClient) read(conn net.Conn, buf []byte) {
	for {
		if c.config.ReceiveTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(c.config.ReceiveTimeout))
		}
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
		kind := classifyFault(err)
		switch kind {
		case faultClosed:
			return
		case faultRemoteClosed:
			c.fault(kind, nil, c.msg("msg.remote_closed", c.String()))
		default:
			c.fault(kind, err, c.msg("msg.connection_lost", c.hostName, c.port))
		}
		c.connectionLost(conn)
		return
	}
}

// Close disposes the client. The receive loop is cancelled and given
// a short time to stop before the connection is force closed. Close is
// idempotent and always returns nil.
func (c *GXTcpClient) Close() error {
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

// waitTimeout waits for done to be closed for at most d.
func waitTimeout(done <-chan struct{}, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-done:
		return true
	case <-t.C:
		return false
	}
}
