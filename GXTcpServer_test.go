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
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gurux/gxendpoint-go/metrics"
)

func newTestTcpServer(t *testing.T, mutate func(*TcpServerConfig)) (*GXTcpServer, *recorder) {
	t.Helper()
	cfg := DefaultTcpServerConfig()
	cfg.Logger = testLogger()
	cfg.SettleDelay = 20 * time.Millisecond
	cfg.Termination = TerminationKindLineFeed
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewGXTcpServer("127.0.0.1", 0, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	r := newRecorder()
	r.attach(s)
	return s, r
}

// startServer starts s and waits until the listener is bound.
func startServer(t *testing.T, s *GXTcpServer) net.Addr {
	t.Helper()
	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return s.Addr() != nil }, waitFor, 5*time.Millisecond)
	return s.Addr()
}

func dialServer(t *testing.T, addr net.Addr) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr.String(), waitFor)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestTcpServer_ReassemblesUntilTermination(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	conn := dialServer(t, startServer(t, s))

	_, err := conn.Write([]byte("hello"))
	require.NoError(t, err)
	r.noMore(t, 50*time.Millisecond)
	_, err = conn.Write([]byte("\n"))
	require.NoError(t, err)

	e := r.next(t)
	assert.Equal(t, []byte("hello\n"), e.Data())
	assert.Equal(t, conn.LocalAddr().String(), e.SenderInfo())
	r.noMore(t, 50*time.Millisecond)
}

func TestTcpServer_NextMessageStartsEmpty(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	conn := dialServer(t, startServer(t, s))

	_, err := conn.Write([]byte("one\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one\n"), r.next(t).Data())

	_, err = conn.Write([]byte("two\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two\n"), r.next(t).Data())
}

func TestTcpServer_CarriageReturnAndLineFeedEitherOrder(t *testing.T) {
	s, r := newTestTcpServer(t, func(cfg *TcpServerConfig) {
		cfg.Termination = TerminationKindCarriageReturnAndLineFeed
	})
	conn := dialServer(t, startServer(t, s))

	_, err := conn.Write([]byte("a\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a\r\n"), r.next(t).Data())

	_, err = conn.Write([]byte("b\n"))
	require.NoError(t, err)
	r.noMore(t, 50*time.Millisecond)
	_, err = conn.Write([]byte("\r"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b\n\r"), r.next(t).Data())
}

func TestTcpServer_MessageSink(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	sunk := make(chan []byte, 1)
	s.SetMessageSink(MessageSinkFunc(func(data []byte, remote net.Addr) {
		sunk <- data
	}))
	conn := dialServer(t, startServer(t, s))

	_, err := conn.Write([]byte("sink\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("sink\n"), r.next(t).Data())
	select {
	case data := <-sunk:
		assert.Equal(t, []byte("sink\n"), data)
	case <-time.After(waitFor):
		t.Fatal("sink not called")
	}
}

func TestTcpServer_ServesOneClientAtATime(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	addr := startServer(t, s)

	first := dialServer(t, addr)
	_, err := first.Write([]byte("first\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first\n"), r.next(t).Data())

	// The second client waits in the backlog until the first one closes.
	second := dialServer(t, addr)
	_, err = second.Write([]byte("second\n"))
	require.NoError(t, err)
	r.noMore(t, 100*time.Millisecond)

	require.NoError(t, first.Close())
	assert.Equal(t, []byte("second\n"), r.next(t).Data())
}

func TestTcpServer_ConnectedAndDisconnectedPerClient(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	conn := dialServer(t, startServer(t, s))

	assert.Eventually(t, func() bool {
		connected, _ := r.counts()
		return connected == 1
	}, waitFor, 5*time.Millisecond)
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		_, disconnected := r.counts()
		return disconnected == 1
	}, waitFor, 5*time.Millisecond)
}

func TestTcpServer_ReceiveTimeoutDropsClient(t *testing.T) {
	logger := testLogger()
	hook := test.NewLocal(logger)
	s, r := newTestTcpServer(t, func(cfg *TcpServerConfig) {
		cfg.ReceiveTimeout = 50 * time.Millisecond
		cfg.Logger = logger
	})
	conn := dialServer(t, startServer(t, s))
	_, err := conn.Write([]byte("partial"))
	require.NoError(t, err)

	// The server closes the idle client.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, err = conn.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
	assert.Eventually(t, func() bool {
		_, disconnected := r.counts()
		return disconnected == 1
	}, waitFor, 10*time.Millisecond)
	r.noMore(t, 50*time.Millisecond)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["fault"] == "recoverable" {
			warned = true
		}
	}
	assert.True(t, warned, "timeout is logged as a warning")

	// The next client starts with an empty message.
	next := dialServer(t, s.Addr())
	_, err = next.Write([]byte("whole\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("whole\n"), r.next(t).Data())
}

func TestTcpServer_StartTwice(t *testing.T) {
	s, _ := newTestTcpServer(t, nil)
	startServer(t, s)
	assert.ErrorIs(t, s.Start(), ErrAlreadyRunning)
	assert.True(t, s.IsRunning())
}

func TestTcpServer_StopWhenNotRunning(t *testing.T) {
	s, _ := newTestTcpServer(t, nil)
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestTcpServer_StopKeepsClient(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	conn := dialServer(t, startServer(t, s))
	assert.Eventually(t, func() bool {
		connected, _ := r.counts()
		return connected == 1
	}, waitFor, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.Addr())

	_, err := conn.Write([]byte("still here\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("still here\n"), r.next(t).Data())
}

func TestTcpServer_RestartAfterStop(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	startServer(t, s)
	s.Stop()

	conn := dialServer(t, startServer(t, s))
	_, err := conn.Write([]byte("again\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("again\n"), r.next(t).Data())
}

func TestTcpServer_BindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	_, port := addrPort(t, ln.Addr())

	cfg := DefaultTcpServerConfig()
	cfg.Logger = testLogger()
	cfg.SettleDelay = 200 * time.Millisecond
	s, err := NewGXTcpServer("127.0.0.1", port, cfg)
	require.NoError(t, err)
	defer s.Close()

	var mu sync.Mutex
	var reported error
	s.SetOnError(func(_ Endpoint, err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
	})
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
	mu.Lock()
	assert.Error(t, reported)
	mu.Unlock()
}

func TestTcpServer_CloseDisconnectsClients(t *testing.T) {
	s, r := newTestTcpServer(t, nil)
	conn := dialServer(t, startServer(t, s))
	assert.Eventually(t, func() bool {
		connected, _ := r.counts()
		return connected == 1
	}, waitFor, 5*time.Millisecond)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.False(t, s.IsRunning())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, err := conn.Read(make([]byte, 1))
	assert.Error(t, err)
	assert.ErrorIs(t, s.Start(), net.ErrClosed)
}

func TestTcpServer_Metrics(t *testing.T) {
	p := metrics.NewPrometheus(prometheus.NewRegistry())
	s, r := newTestTcpServer(t, func(cfg *TcpServerConfig) {
		cfg.Metrics = p
	})
	conn := dialServer(t, startServer(t, s))
	_, err := conn.Write([]byte("abc\n"))
	require.NoError(t, err)
	r.next(t)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.ConnectTotal.WithLabelValues("tcp_server")))
	assert.Equal(t, 4.0, testutil.ToFloat64(p.ReceivedBytesTotal.WithLabelValues("tcp_server")))
	assert.Equal(t, uint64(4), s.GetBytesReceived())
}
