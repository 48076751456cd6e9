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
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/Gurux/gxcommon-go"
)

var (
	// ErrNotConnected is returned when data is sent while the endpoint is
	// not connected.
	ErrNotConnected = fmt.Errorf("not connected: %w", gxcommon.ErrConnectionClosed)
	// ErrConnectTimeout is reported when a connect attempt does not complete
	// before the configured connect timeout.
	ErrConnectTimeout = errors.New("connect timeout")
	// ErrUnsupportedKind is returned for an unknown termination kind.
	ErrUnsupportedKind = fmt.Errorf("unsupported termination kind: %w", gxcommon.ErrUnknownEnum)
	// ErrAlreadyRunning is returned when a running server is started again.
	ErrAlreadyRunning = errors.New("server is already running")
	// ErrReconnectExhausted is reported when the reconnect supervisor gives up.
	ErrReconnectExhausted = errors.New("reconnect attempts exhausted")
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// faultKind classifies an I/O error returned by a socket operation.
type faultKind int

const (
	faultNone faultKind = iota
	// faultClosed is the socket closed by this endpoint.
	faultClosed
	// faultRemoteClosed is a zero byte read, the peer closed the connection.
	faultRemoteClosed
	// faultCanceled is a cancelled caller context.
	faultCanceled
	faultRecoverable
	faultUnknown
)

func (k faultKind) String() string {
	switch k {
	case faultNone:
		return "none"
	case faultClosed:
		return "closed"
	case faultRemoteClosed:
		return "remote_closed"
	case faultCanceled:
		return "canceled"
	case faultRecoverable:
		return "recoverable"
	}
	return "unknown"
}

func classifyFault(err error) faultKind {
	if err == nil {
		return faultNone
	}
	if errors.Is(err, net.ErrClosed) {
		return faultClosed
	}
	if errors.Is(err, io.EOF) {
		return faultRemoteClosed
	}
	if errors.Is(err, context.Canceled) {
		return faultCanceled
	}
	if errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return faultRecoverable
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return faultRecoverable
	}
	return faultUnknown
}
