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
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxendpoint-go/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Endpoint is implemented by all clients and servers. It is passed to every
// event handler as the sender.
type Endpoint interface {
	fmt.Stringer
	// GetName returns the endpoint address.
	GetName() string
}

// ReceivedEventArgs holds data delivered by an endpoint.
type ReceivedEventArgs struct {
	data   []byte
	remote net.Addr
}

// NewReceivedEventArgs creates event arguments for received data.
func NewReceivedEventArgs(data []byte, remote net.Addr) *ReceivedEventArgs {
	return &ReceivedEventArgs{data: data, remote: remote}
}

// Data returns the received bytes. The slice is owned by the handler.
func (e ReceivedEventArgs) Data() []byte {
	return e.data
}

// Remote returns the address of the peer that sent the data.
func (e ReceivedEventArgs) Remote() net.Addr {
	return e.remote
}

// SenderInfo returns the peer address as a string.
func (e ReceivedEventArgs) SenderInfo() string {
	if e.remote == nil {
		return ""
	}
	return e.remote.String()
}

func (e ReceivedEventArgs) String() string {
	str, err := gxcommon.ToString(e.data)
	if err != nil {
		str = fmt.Sprintf("% X", e.data)
	}
	if e.remote == nil {
		return str
	}
	return e.remote.String() + ": " + str
}

// StateChangedEventArgs holds a connection state change.
type StateChangedEventArgs struct {
	state ConnectionState
	err   error
}

// NewStateChangedEventArgs creates event arguments for a state change.
func NewStateChangedEventArgs(state ConnectionState, err error) *StateChangedEventArgs {
	return &StateChangedEventArgs{state: state, err: err}
}

// State returns the new state.
func (e StateChangedEventArgs) State() ConnectionState {
	return e.state
}

// Err returns the error that caused the state, or nil.
func (e StateChangedEventArgs) Err() error {
	return e.err
}

func (e StateChangedEventArgs) String() string {
	if e.err == nil {
		return e.state.String()
	}
	return e.state.String() + ": " + e.err.Error()
}

// ConnectedHandler is called after a connection is established.
type ConnectedHandler func(sender Endpoint)

// DisconnectedHandler is called after a connection is closed.
type DisconnectedHandler func(sender Endpoint)

// StateChangedHandler is called when the connection state changes.
type StateChangedHandler func(sender Endpoint, e StateChangedEventArgs)

// ReceivedHandler is called when data is received.
type ReceivedHandler func(sender Endpoint, e ReceivedEventArgs)

// ErrorHandler is called when an I/O error occurs in a background task.
type ErrorHandler func(sender Endpoint, err error)

// TraceHandler is called for trace messages allowed by the trace level.
type TraceHandler func(sender Endpoint, e gxcommon.TraceEventArgs)

// endpointBase holds the event handlers, tracing, logging and byte counters
// shared by all endpoints. Handlers are called without holding any lock.
type endpointBase struct {
	mu    sync.RWMutex
	owner Endpoint
	// kind is the metrics label of the endpoint.
	kind string

	traceLevel gxcommon.TraceLevel

	onConnected    ConnectedHandler
	onDisconnected DisconnectedHandler
	onState        StateChangedHandler
	onReceive      ReceivedHandler
	onErr          ErrorHandler
	onTrace        TraceHandler

	log     *logrus.Entry
	metrics metrics.Metrics
	// Printer for localized messages.
	p *message.Printer

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64
}

func (b *endpointBase) init(owner Endpoint, kind, address string, logger *logrus.Logger, m metrics.Metrics) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if m == nil {
		m = metrics.Counter
	}
	b.owner = owner
	b.kind = kind
	b.metrics = m
	b.log = logger.WithFields(logrus.Fields{
		"endpoint": kind,
		"address":  address,
	})
	b.Localize(language.AmericanEnglish)
}

// SetOnConnected sets the handler called after a connection is established.
func (b *endpointBase) SetOnConnected(value ConnectedHandler) {
	b.mu.Lock()
	b.onConnected = value
	b.mu.Unlock()
}

// SetOnDisconnected sets the handler called after a connection is closed.
func (b *endpointBase) SetOnDisconnected(value DisconnectedHandler) {
	b.mu.Lock()
	b.onDisconnected = value
	b.mu.Unlock()
}

// SetOnStateChanged sets the handler called on connection state changes.
func (b *endpointBase) SetOnStateChanged(value StateChangedHandler) {
	b.mu.Lock()
	b.onState = value
	b.mu.Unlock()
}

// SetOnDataReceived sets the handler called for received data.
func (b *endpointBase) SetOnDataReceived(value ReceivedHandler) {
	b.mu.Lock()
	b.onReceive = value
	b.mu.Unlock()
}

// SetOnError sets the handler called for background I/O errors.
func (b *endpointBase) SetOnError(value ErrorHandler) {
	b.mu.Lock()
	b.onErr = value
	b.mu.Unlock()
}

// SetOnTrace sets the handler called for trace messages.
func (b *endpointBase) SetOnTrace(value TraceHandler) {
	b.mu.Lock()
	b.onTrace = value
	b.mu.Unlock()
}

// GetTrace returns the trace level.
func (b *endpointBase) GetTrace() gxcommon.TraceLevel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.traceLevel
}

// SetTrace sets the trace level.
func (b *endpointBase) SetTrace(traceLevel gxcommon.TraceLevel) error {
	b.mu.Lock()
	b.traceLevel = traceLevel
	b.mu.Unlock()
	return nil
}

// GetBytesSent returns the number of sent bytes.
func (b *endpointBase) GetBytesSent() uint64 {
	return b.bytesSent.Load()
}

// GetBytesReceived returns the number of received bytes.
func (b *endpointBase) GetBytesReceived() uint64 {
	return b.bytesReceived.Load()
}

// ResetByteCounters resets the sent and received byte counters.
func (b *endpointBase) ResetByteCounters() {
	b.bytesSent.Store(0)
	b.bytesReceived.Store(0)
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (b *endpointBase) Localize(language language.Tag) {
	b.mu.Lock()
	b.p = message.NewPrinter(language)
	b.mu.Unlock()
}

// msg returns the localized message for key.
func (b *endpointBase) msg(key string, a ...any) string {
	b.mu.RLock()
	p := b.p
	b.mu.RUnlock()
	return p.Sprintf(key, a...)
}

func (b *endpointBase) addSent(n int) {
	b.bytesSent.Add(uint64(n))
	b.metrics.AddBytesSent(b.kind, n)
}

func (b *endpointBase) addReceived(n int) {
	b.bytesReceived.Add(uint64(n))
	b.metrics.AddBytesReceived(b.kind, n)
}

func (b *endpointBase) connectedf() {
	b.mu.RLock()
	cb := b.onConnected
	b.mu.RUnlock()
	b.metrics.AddConnect(b.kind)
	if cb != nil {
		cb(b.owner)
	}
}

func (b *endpointBase) disconnectedf() {
	b.mu.RLock()
	cb := b.onDisconnected
	b.mu.RUnlock()
	b.metrics.AddDisconnect(b.kind)
	if cb != nil {
		cb(b.owner)
	}
}

func (b *endpointBase) statef(state ConnectionState, err error) {
	b.mu.RLock()
	cb := b.onState
	b.mu.RUnlock()
	if cb != nil {
		cb(b.owner, *NewStateChangedEventArgs(state, err))
	}
}

func (b *endpointBase) receivef(data []byte, remote net.Addr) {
	b.mu.RLock()
	cb := b.onReceive
	b.mu.RUnlock()
	if cb != nil {
		cb(b.owner, *NewReceivedEventArgs(data, remote))
	}
}

func (b *endpointBase) errorf(err error) {
	b.mu.RLock()
	cb := b.onErr
	b.mu.RUnlock()
	if cb != nil {
		cb(b.owner, err)
	}
}

// trace writes message to the log and to the trace handler if the trace
// level allows it.
func (b *endpointBase) trace(traceType gxcommon.TraceTypes, message string) {
	switch traceType {
	case gxcommon.TraceTypesError:
		b.log.Error(message)
	case gxcommon.TraceTypesInfo:
		b.log.Info(message)
	default:
		b.log.Debug(message)
	}
	b.mu.RLock()
	trace := !(int(b.traceLevel) < int(traceType))
	cb := b.onTrace
	b.mu.RUnlock()
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, message, "")
		cb(b.owner, *p)
	}
}

func (b *endpointBase) tracef(traceType gxcommon.TraceTypes, fmtStr string, a ...any) {
	b.trace(traceType, fmt.Sprintf(fmtStr, a...))
}

// traceData traces sent or received payload.
func (b *endpointBase) traceData(traceType gxcommon.TraceTypes, prefix string, data []byte) {
	if !b.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		b.mu.RLock()
		skip := b.onTrace == nil || int(b.traceLevel) < int(traceType)
		b.mu.RUnlock()
		if skip {
			return
		}
	}
	str, err := gxcommon.ToString(data)
	if err != nil {
		str = fmt.Sprintf("% X", data)
	}
	b.tracef(traceType, "%s: %s", prefix, str)
}

// fault logs an I/O error of a background task. Recoverable faults and
// peer closes are logged as warnings; unknown faults as errors and routed to
// the error handler.
func (b *endpointBase) fault(kind faultKind, err error, message string) {
	b.metrics.AddFault(b.kind, kind.String())
	entry := b.log.WithField("fault", kind.String())
	if err != nil {
		entry = entry.WithError(err)
	}
	switch kind {
	case faultRecoverable, faultRemoteClosed:
		entry.Warn(message)
		b.mu.RLock()
		trace := !(int(b.traceLevel) < int(gxcommon.TraceTypesInfo))
		cb := b.onTrace
		b.mu.RUnlock()
		if cb != nil && trace {
			cb(b.owner, *gxcommon.NewTraceEventArgs(gxcommon.TraceTypesInfo, message, ""))
		}
	default:
		entry.Error(message)
		b.mu.RLock()
		trace := !(int(b.traceLevel) < int(gxcommon.TraceTypesError))
		cb := b.onTrace
		b.mu.RUnlock()
		if cb != nil && trace {
			cb(b.owner, *gxcommon.NewTraceEventArgs(gxcommon.TraceTypesError, message, ""))
		}
		if err != nil {
			b.errorf(err)
		}
	}
}
