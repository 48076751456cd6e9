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
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/time/rate"
)

const (
	pingRequest = "ping"
	pongReply   = "pong"
	echoPrefix  = "echo: "
)

// GXUdpServer is a UDP server endpoint.
//
// The socket is bound and its receive loop started when the server is
// created. Start and Stop only control whether received datagrams are
// handled and whether Send is honored; they do not open or close the socket.
//
// A datagram starting with "ping" (any case) is answered with "pong".
// Other datagrams are echoed back prefixed with "echo: " when
// EchoOnReceivedData is set.
type GXUdpServer struct {
	endpointBase

	address string
	port    int
	config  UdpServerConfig

	conn    *net.UDPConn
	limiter *rate.Limiter

	mu      sync.Mutex
	running bool
	wake    chan struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewGXUdpServer binds a UDP socket to address:port and starts the receive
// loop. The server is created stopped.
func NewGXUdpServer(address string, port int, config UdpServerConfig) (*GXUdpServer, error) {
	config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &GXUdpServer{
		address: address,
		port:    port,
		config:  config,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.init(s, "udp_server", s.String(), config.Logger, config.Metrics)
	if config.ReplyRate > 0 {
		s.limiter = rate.NewLimiter(config.ReplyRate, config.ReplyBurst)
	}

	lc := net.ListenConfig{
		Control: socketControl(socketOptions{
			receiveBufferSize: config.ReceiveBufferSize,
			sendBufferSize:    config.SendBufferSize,
		}),
	}
	pc, err := lc.ListenPacket(context.Background(), NetworkTypeUDP.listenNetwork(), s.String())
	if err != nil {
		s.trace(gxcommon.TraceTypesError, s.msg("msg.listen_failed", s.String(), err))
		return nil, err
	}
	s.conn = pc.(*net.UDPConn)
	if !presetBuffers {
		_ = s.conn.SetReadBuffer(config.ReceiveBufferSize)
		_ = s.conn.SetWriteBuffer(config.SendBufferSize)
	}
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.listening_on", s.conn.LocalAddr().String()))

	s.ctx, s.cancel = context.WithCancel(context.Background())
	context.AfterFunc(s.ctx, func() {
		_ = s.conn.Close()
	})
	go s.receiveLoop()
	return s, nil
}

func (s *GXUdpServer) String() string {
	return net.JoinHostPort(s.address, strconv.Itoa(s.port))
}

// GetName returns the bind address.
func (s *GXUdpServer) GetName() string {
	return s.String()
}

// Config returns a copy of the server settings.
func (s *GXUdpServer) Config() UdpServerConfig {
	return s.config
}

// Addr returns the local address of the socket.
func (s *GXUdpServer) Addr() net.Addr {
	return s.conn.LocalAddr()
}

// IsRunning reports whether the server is started.
func (s *GXUdpServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start starts handling received datagrams.
func (s *GXUdpServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return net.ErrClosed
	}
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_started", s.String()))
	return nil
}

// Stop stops handling received datagrams. The socket stays bound.
func (s *GXUdpServer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_not_running", s.String()))
		return
	}
	s.running = false
	s.mu.Unlock()
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_stopped", s.String()))
}

// Send sends data as one datagram to remote. The configured termination, or
// the one given with WithTermination, is appended unless already present.
// Send is a no-op while the server is stopped.
func (s *GXUdpServer) Send(ctx context.Context, remote net.Addr, data []byte, opts ...SendOption) error {
	o := applySendOptions(s.config.DefaultEncoding, s.config.Termination, opts)
	data, err := AppendIfAbsent(data, *o.termination)
	if err != nil {
		return err
	}
	return s.send(ctx, remote, data)
}

// SendString encodes text and sends it to remote like Send.
func (s *GXUdpServer) SendString(ctx context.Context, remote net.Addr, text string, opts ...SendOption) error {
	o := applySendOptions(s.config.DefaultEncoding, s.config.Termination, opts)
	data, err := o.frame(text)
	if err != nil {
		return err
	}
	return s.send(ctx, remote, data)
}

func (s *GXUdpServer) send(ctx context.Context, remote net.Addr, data []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.IsRunning() {
		s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_not_running", s.String()))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.traceData(gxcommon.TraceTypesSent, "TX "+remote.String(), data)
	n, err := writeContext(ctx, s.conn, s.config.SendTimeout, func() (int, error) {
		return s.conn.WriteTo(data, remote)
	})
	if n > 0 {
		s.addSent(n)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("send to %s: %w", remote, err)
	}
	return nil
}

// waitRunning blocks until the server is started or closed.
func (s *GXUdpServer) waitRunning() bool {
	for !s.IsRunning() {
		select {
		case <-s.ctx.Done():
			return false
		case <-s.wake:
		}
	}
	return true
}

func (s *GXUdpServer) receiveLoop() {
	defer close(s.done)
	buf := make([]byte, s.config.ReceiveBufferSize)
	for s.waitRunning() {
		n, remote, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			kind := classifyFault(err)
			if kind == faultClosed {
				return
			}
			// Reading a datagram never ends the loop.
			s.fault(kind, err, s.msg("msg.connection_failed", err))
			continue
		}
		if !s.IsRunning() {
			s.trace(gxcommon.TraceTypesInfo, s.msg("msg.datagram_dropped", s.String(), remote.String()))
			continue
		}
		s.addReceived(n)
		s.handleDatagram(bytes.Clone(buf[:n]), remote)
	}
}

// handleDatagram delivers data and sends the automatic reply.
func (s *GXUdpServer) handleDatagram(data []byte, remote *net.UDPAddr) {
	s.metrics.AddMessage(s.kind, len(data))
	s.traceData(gxcommon.TraceTypesReceived, "RX "+remote.String(), data)
	s.receivef(data, remote)

	text, err := decodeText(s.config.DefaultEncoding, data)
	if err != nil {
		s.log.WithError(err).Debug("datagram is not text")
		return
	}
	var reply, kind string
	switch {
	case len(text) >= len(pingRequest) && strings.EqualFold(text[:len(pingRequest)], pingRequest):
		reply, kind = pongReply, "pong"
	case s.config.EchoOnReceivedData:
		reply, kind = echoPrefix+text, "echo"
	default:
		return
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.trace(gxcommon.TraceTypesInfo, s.msg("msg.reply_limited", remote.String()))
		return
	}
	if err := s.SendString(s.ctx, remote, reply); err != nil {
		s.fault(classifyFault(err), err, s.msg("msg.connection_failed", err))
		return
	}
	s.metrics.AddReply(s.kind, kind)
}

// Close disposes the server and closes the socket. Close is idempotent and
// always returns nil.
func (s *GXUdpServer) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		s.cancel()
		if !waitTimeout(s.done, defaultDisposeWait) {
			s.log.Debug("receive loop did not stop in time")
		}
		_ = s.conn.Close()
	})
	return nil
}
