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
	"strconv"
	"sync"
	"time"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/sync/semaphore"
)

// MessageSink receives every message reassembled by a GXTcpServer, after
// the DataReceived handler.
type MessageSink interface {
	OnDataReceived(data []byte, remote net.Addr)
}

// MessageSinkFunc adapts a function to MessageSink.
type MessageSinkFunc func(data []byte, remote net.Addr)

// OnDataReceived calls f(data, remote).
func (f MessageSinkFunc) OnDataReceived(data []byte, remote net.Addr) {
	f(data, remote)
}

// GXTcpServer is a TCP server endpoint.
//
// Inbound bytes of a client are accumulated until they contain the configured
// termination marker; the whole buffer is then delivered as one message.
// With the default MaxClients of one, the next connection is accepted only
// after the current client has closed; further clients wait in the listen
// backlog.
//
// Start returns after SettleDelay and does not guarantee that the listener
// is bound by then. Use Addr to find out when it is.
type GXTcpServer struct {
	endpointBase

	address string
	port    int
	config  TcpServerConfig

	mu        sync.Mutex
	running   bool
	listener  net.Listener
	runCancel context.CancelFunc
	startErr  error
	sink      MessageSink

	slots *semaphore.Weighted

	clientsMu sync.Mutex
	clients   map[net.Conn]struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewGXTcpServer creates a TCP server bound to address:port when started.
// An empty address binds all interfaces; port 0 picks a free port.
func NewGXTcpServer(address string, port int, config TcpServerConfig) (*GXTcpServer, error) {
	config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &GXTcpServer{
		address: address,
		port:    port,
		config:  config,
		slots:   semaphore.NewWeighted(int64(config.MaxClients)),
		clients: make(map[net.Conn]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.init(s, "tcp_server", s.String(), config.Logger, config.Metrics)
	return s, nil
}

func (s *GXTcpServer) String() string {
	return net.JoinHostPort(s.address, strconv.Itoa(s.port))
}

// GetName returns the bind address.
func (s *GXTcpServer) GetName() string {
	return s.String()
}

// Config returns a copy of the server settings.
func (s *GXTcpServer) Config() TcpServerConfig {
	return s.config
}

// SetMessageSink sets the sink that receives every reassembled message.
func (s *GXTcpServer) SetMessageSink(sink MessageSink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// IsRunning reports whether the server is started.
func (s *GXTcpServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Addr returns the address of the listener, or nil if it is not bound.
func (s *GXTcpServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start spawns the accept loop and returns after SettleDelay.
//
// It returns ErrAlreadyRunning if the server is running, and the bind error
// if binding failed within SettleDelay. A later bind failure is reported
// through the error handler and stops the server.
func (s *GXTcpServer) Start() error {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return net.ErrClosed
	}
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	s.runCancel = cancel
	s.startErr = nil
	s.running = true
	s.wg.Add(1)
	go s.acceptLoop(runCtx)
	s.mu.Unlock()

	time.Sleep(s.config.SettleDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startErr
}

// Stop closes the listener. A client being served is not interrupted.
func (s *GXTcpServer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_not_running", s.String()))
		return
	}
	ln := s.listener
	cancel := s.runCancel
	s.listener = nil
	s.runCancel = nil
	s.running = false
	s.mu.Unlock()

	cancel()
	if ln != nil {
		_ = ln.Close()
	}
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_stopped", s.String()))
}

// stopped marks the server stopped after the accept loop failed on ln.
func (s *GXTcpServer) stopped(ln net.Listener) {
	s.mu.Lock()
	if s.listener == ln {
		s.listener = nil
		s.running = false
		if s.runCancel != nil {
			s.runCancel()
			s.runCancel = nil
		}
	}
	s.mu.Unlock()
	if ln != nil {
		_ = ln.Close()
	}
}

func (s *GXTcpServer) acceptLoop(ctx context.Context) {
	defer s.wg.Done()
	lc := net.ListenConfig{
		Control: socketControl(socketOptions{
			reuseAddress:      true,
			receiveBufferSize: s.config.ReceiveBufferSize,
			sendBufferSize:    s.config.SendBufferSize,
		}),
		KeepAliveConfig: keepAliveConfig(s.config.KeepAlive),
	}
	if s.config.KeepAlive.Disabled {
		lc.KeepAlive = -1
	}
	ln, err := lc.Listen(ctx, NetworkTypeTCP.listenNetwork(), s.String())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.trace(gxcommon.TraceTypesError, s.msg("msg.listen_failed", s.String(), err))
		s.errorf(err)
		s.mu.Lock()
		s.startErr = err
		s.running = false
		if s.runCancel != nil {
			s.runCancel()
			s.runCancel = nil
		}
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	if ctx.Err() != nil {
		// Stopped while binding.
		s.mu.Unlock()
		_ = ln.Close()
		return
	}
	s.listener = ln
	s.mu.Unlock()
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.listening_on", ln.Addr().String()))
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.server_started", s.String()))

	for {
		if err := s.slots.Acquire(ctx, 1); err != nil {
			return
		}
		conn, err := ln.Accept()
		if err != nil {
			s.slots.Release(1)
			if ctx.Err() != nil {
				return
			}
			kind := classifyFault(err)
			s.fault(kind, err, s.msg("msg.connection_failed", err))
			s.stopped(ln)
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.slots.Release(1)
			s.serveClient(conn)
		}()
	}
}

func (s *GXTcpServer) track(conn net.Conn, add bool) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if add {
		s.clients[conn] = struct{}{}
	} else {
		delete(s.clients, conn)
	}
}

// serveClient reassembles messages from conn until the client closes.
func (s *GXTcpServer) serveClient(conn net.Conn) {
	remote := conn.RemoteAddr()
	s.track(conn, true)
	applyBuffers(conn, socketOptions{
		receiveBufferSize: s.config.ReceiveBufferSize,
		sendBufferSize:    s.config.SendBufferSize,
	})
	s.trace(gxcommon.TraceTypesInfo, s.msg("msg.client_accepted", remote.String()))
	s.connectedf()
	defer func() {
		_ = conn.Close()
		s.track(conn, false)
		s.trace(gxcommon.TraceTypesInfo, s.msg("msg.client_closed", remote.String()))
		s.disconnectedf()
	}()

	buf := make([]byte, s.config.ReceiveBufferSize)
	var message []byte
	for {
		if s.config.ReceiveTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.config.ReceiveTimeout))
		}
		n, err := conn.Read(buf)
		if n > 0 {
			s.addReceived(n)
			message = append(message, buf[:n]...)
			// The termination kind was validated at construction.
			if found, _ := ContainsMarker(message, s.config.Termination); found {
				s.deliver(message, remote)
				message = nil
			}
		}
		if err == nil {
			continue
		}
		switch kind := classifyFault(err); kind {
		case faultClosed, faultRemoteClosed:
		default:
			s.fault(kind, err, s.msg("msg.connection_failed", err))
		}
		if len(message) != 0 {
			s.trace(gxcommon.TraceTypesInfo, s.msg("msg.partial_dropped", len(message), remote.String()))
		}
		return
	}
}

func (s *GXTcpServer) deliver(message []byte, remote net.Addr) {
	s.metrics.AddMessage(s.kind, len(message))
	s.traceData(gxcommon.TraceTypesReceived, "RX "+remote.String(), message)
	s.receivef(message, remote)
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink != nil {
		sink.OnDataReceived(message, remote)
	}
}

// Close stops the server, closes the clients being served and waits a short
// time for the background goroutines. Close is idempotent and always
// returns nil.
func (s *GXTcpServer) Close() error {
	s.closeOnce.Do(func() {
		if s.IsRunning() {
			s.Stop()
		}
		s.cancel()
		s.clientsMu.Lock()
		for conn := range s.clients {
			_ = conn.Close()
		}
		s.clientsMu.Unlock()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()
		if !waitTimeout(done, defaultDisposeWait) {
			s.log.Debug("server goroutines did not stop in time")
		}
	})
	return nil
}
