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

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// recorder collects the events of one endpoint.
type recorder struct {
	mu           sync.Mutex
	connected    int
	disconnected int
	states       []ConnectionState
	errs         []error
	order        []string
	data         chan ReceivedEventArgs
}

func newRecorder() *recorder {
	return &recorder{data: make(chan ReceivedEventArgs, 64)}
}

func (r *recorder) attach(e Events) {
	e.SetOnConnected(func(Endpoint) {
		r.mu.Lock()
		r.connected++
		r.order = append(r.order, "connected")
		r.mu.Unlock()
	})
	e.SetOnDisconnected(func(Endpoint) {
		r.mu.Lock()
		r.disconnected++
		r.order = append(r.order, "disconnected")
		r.mu.Unlock()
	})
	e.SetOnStateChanged(func(_ Endpoint, args StateChangedEventArgs) {
		r.mu.Lock()
		r.states = append(r.states, args.State())
		if args.Err() != nil {
			r.errs = append(r.errs, args.Err())
		}
		r.mu.Unlock()
	})
	e.SetOnDataReceived(func(_ Endpoint, args ReceivedEventArgs) {
		r.mu.Lock()
		r.order = append(r.order, "data")
		r.mu.Unlock()
		r.data <- args
	})
}

func (r *recorder) counts() (connected, disconnected int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected, r.disconnected
}

func (r *recorder) hasState(s ConnectionState) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.states {
		if v == s {
			return true
		}
	}
	return false
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func (r *recorder) lastErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

// next waits for the next DataReceived event.
func (r *recorder) next(t *testing.T) ReceivedEventArgs {
	t.Helper()
	select {
	case e := <-r.data:
		return e
	case <-time.After(waitFor):
		t.Fatal("no data received")
	}
	return ReceivedEventArgs{}
}

// noMore asserts that no further DataReceived event arrives within d.
func (r *recorder) noMore(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case e := <-r.data:
		t.Fatalf("unexpected data %q", e.Data())
	case <-time.After(d):
	}
}

// testLogger discards output so that tests stay quiet.
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func addrPort(t *testing.T, addr net.Addr) (string, int) {
	t.Helper()
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP.String(), a.Port
	case *net.UDPAddr:
		return a.IP.String(), a.Port
	}
	require.FailNow(t, "unexpected address type", "%T", addr)
	return "", 0
}

// readFull reads exactly n bytes from conn.
func readFull(t *testing.T, conn net.Conn, n int) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	buf := make([]byte, n)
	_, err := io.ReadFull(conn, buf)
	require.NoError(t, err)
	return buf
}
