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
	"time"

	"github.com/Gurux/gxendpoint-go/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"
)

const (
	defaultBufferSize     = 8192
	defaultConnectTimeout = 5 * time.Second
	defaultSettleDelay    = 100 * time.Millisecond
	defaultDisposeWait    = 50 * time.Millisecond
)

// KeepAliveConfig tunes TCP keep-alive probes. Keep-alive is on unless
// Disabled is set; zero values use the defaults.
type KeepAliveConfig struct {
	Disabled bool
	// Time is the idle time before the first probe.
	Time time.Duration
	// Interval between probes.
	Interval time.Duration
	// RetryCount is the number of unanswered probes before the connection
	// is dropped.
	RetryCount int
}

// ReconnectConfig configures the TCP client reconnect supervisor.
type ReconnectConfig struct {
	Enabled bool
	// MaxAttempts is the number of reconnect attempts. Zero retries until
	// the client is closed.
	MaxAttempts int
	// Interval is the wait before each attempt.
	Interval time.Duration
}

// TcpClientConfig holds the settings of a GXTcpClient.
type TcpClientConfig struct {
	ReceiveBufferSize int
	SendBufferSize    int
	// SendTimeout bounds one write. Zero disables it.
	SendTimeout time.Duration
	// ReceiveTimeout bounds one read. Zero disables it; an expired read
	// disconnects the client.
	ReceiveTimeout time.Duration
	ConnectTimeout time.Duration
	// Termination is appended to text sent with SendString.
	Termination TerminationKind
	KeepAlive   KeepAliveConfig
	Reconnect   ReconnectConfig
	// DefaultEncoding is the text codec of the string overloads.
	// Nil means UTF-8.
	DefaultEncoding encoding.Encoding
	// UseIPv6 dials tcp6 instead of tcp4.
	UseIPv6 bool
	Logger  *logrus.Logger
	Metrics metrics.Metrics
}

// TcpServerConfig holds the settings of a GXTcpServer.
type TcpServerConfig struct {
	ReceiveBufferSize int
	SendBufferSize    int
	ReceiveTimeout    time.Duration
	// Termination delimits inbound messages.
	Termination TerminationKind
	KeepAlive   KeepAliveConfig
	// MaxClients is the number of clients served concurrently.
	// The default of one serves one client at a time.
	MaxClients int
	// SettleDelay is how long Start waits after spawning the accept loop.
	SettleDelay time.Duration
	Logger      *logrus.Logger
	Metrics     metrics.Metrics
}

// UdpClientConfig holds the settings of a GXUdpClient.
type UdpClientConfig struct {
	ReceiveBufferSize int
	SendBufferSize    int
	SendTimeout       time.Duration
	DefaultEncoding   encoding.Encoding
	UseIPv6           bool
	Logger            *logrus.Logger
	Metrics           metrics.Metrics
}

// UdpServerConfig holds the settings of a GXUdpServer.
type UdpServerConfig struct {
	ReceiveBufferSize int
	SendBufferSize    int
	SendTimeout       time.Duration
	// Termination is appended to sent datagrams.
	Termination     TerminationKind
	DefaultEncoding encoding.Encoding
	// EchoOnReceivedData replies "echo: <payload>" to every datagram that
	// is not a ping.
	EchoOnReceivedData bool
	// ReplyRate limits automatic replies per second. Zero is unlimited.
	ReplyRate  rate.Limit
	ReplyBurst int
	Logger     *logrus.Logger
	Metrics    metrics.Metrics
}

// DefaultTcpClientConfig returns the default TCP client settings.
func DefaultTcpClientConfig() TcpClientConfig {
	return TcpClientConfig{
		ReceiveBufferSize: defaultBufferSize,
		SendBufferSize:    defaultBufferSize,
		ConnectTimeout:    defaultConnectTimeout,
		KeepAlive:         defaultKeepAlive(),
		Reconnect: ReconnectConfig{
			MaxAttempts: 3,
			Interval:    time.Second,
		},
	}
}

// DefaultTcpServerConfig returns the default TCP server settings.
func DefaultTcpServerConfig() TcpServerConfig {
	return TcpServerConfig{
		ReceiveBufferSize: defaultBufferSize,
		SendBufferSize:    defaultBufferSize,
		KeepAlive:         defaultKeepAlive(),
		MaxClients:        1,
		SettleDelay:       defaultSettleDelay,
	}
}

// DefaultUdpClientConfig returns the default UDP client settings.
func DefaultUdpClientConfig() UdpClientConfig {
	return UdpClientConfig{
		ReceiveBufferSize: defaultBufferSize,
		SendBufferSize:    defaultBufferSize,
	}
}

// DefaultUdpServerConfig returns the default UDP server settings.
func DefaultUdpServerConfig() UdpServerConfig {
	return UdpServerConfig{
		ReceiveBufferSize: defaultBufferSize,
		SendBufferSize:    defaultBufferSize,
	}
}

func defaultKeepAlive() KeepAliveConfig {
	return KeepAliveConfig{
		Time:       30 * time.Second,
		Interval:   5 * time.Second,
		RetryCount: 3,
	}
}

// Validate checks that all values are in range.
func (c *TcpClientConfig) Validate() error {
	if err := validateSizes(c.ReceiveBufferSize, c.SendBufferSize); err != nil {
		return err
	}
	if err := validateDurations(c.SendTimeout, c.ReceiveTimeout, c.ConnectTimeout, c.Reconnect.Interval); err != nil {
		return err
	}
	if c.Reconnect.MaxAttempts < 0 {
		return fmt.Errorf("%w: reconnect attempts %d", ErrInvalidConfig, c.Reconnect.MaxAttempts)
	}
	if err := c.KeepAlive.validate(); err != nil {
		return err
	}
	_, err := TerminationBytes(c.Termination)
	return err
}

// Validate checks that all values are in range.
func (c *TcpServerConfig) Validate() error {
	if err := validateSizes(c.ReceiveBufferSize, c.SendBufferSize); err != nil {
		return err
	}
	if err := validateDurations(c.ReceiveTimeout, c.SettleDelay); err != nil {
		return err
	}
	if c.MaxClients < 0 {
		return fmt.Errorf("%w: max clients %d", ErrInvalidConfig, c.MaxClients)
	}
	if err := c.KeepAlive.validate(); err != nil {
		return err
	}
	_, err := TerminationBytes(c.Termination)
	return err
}

// Validate checks that all values are in range.
func (c *UdpClientConfig) Validate() error {
	if err := validateSizes(c.ReceiveBufferSize, c.SendBufferSize); err != nil {
		return err
	}
	return validateDurations(c.SendTimeout)
}

// Validate checks that all values are in range.
func (c *UdpServerConfig) Validate() error {
	if err := validateSizes(c.ReceiveBufferSize, c.SendBufferSize); err != nil {
		return err
	}
	if err := validateDurations(c.SendTimeout); err != nil {
		return err
	}
	if c.ReplyRate < 0 || c.ReplyBurst < 0 {
		return fmt.Errorf("%w: reply rate %v burst %d", ErrInvalidConfig, c.ReplyRate, c.ReplyBurst)
	}
	_, err := TerminationBytes(c.Termination)
	return err
}

func (k *KeepAliveConfig) validate() error {
	if k.RetryCount < 0 {
		return fmt.Errorf("%w: keep-alive retry count %d", ErrInvalidConfig, k.RetryCount)
	}
	return validateDurations(k.Time, k.Interval)
}

func validateSizes(sizes ...int) error {
	for _, s := range sizes {
		if s < 0 {
			return fmt.Errorf("%w: buffer size %d", ErrInvalidConfig, s)
		}
	}
	return nil
}

func validateDurations(values ...time.Duration) error {
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: duration %v", ErrInvalidConfig, v)
		}
	}
	return nil
}

// Zero values fall back to the defaults.

func (c *TcpClientConfig) withDefaults() {
	if c.ReceiveBufferSize == 0 {
		c.ReceiveBufferSize = defaultBufferSize
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = defaultBufferSize
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.Reconnect.Interval == 0 {
		c.Reconnect.Interval = time.Second
	}
	c.KeepAlive.withDefaults()
}

func (c *TcpServerConfig) withDefaults() {
	if c.ReceiveBufferSize == 0 {
		c.ReceiveBufferSize = defaultBufferSize
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = defaultBufferSize
	}
	if c.MaxClients == 0 {
		c.MaxClients = 1
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = defaultSettleDelay
	}
	c.KeepAlive.withDefaults()
}

func (k *KeepAliveConfig) withDefaults() {
	if k.Disabled {
		return
	}
	d := defaultKeepAlive()
	if k.Time == 0 {
		k.Time = d.Time
	}
	if k.Interval == 0 {
		k.Interval = d.Interval
	}
	if k.RetryCount == 0 {
		k.RetryCount = d.RetryCount
	}
}

func (c *UdpClientConfig) withDefaults() {
	if c.ReceiveBufferSize == 0 {
		c.ReceiveBufferSize = defaultBufferSize
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = defaultBufferSize
	}
}

func (c *UdpServerConfig) withDefaults() {
	if c.ReceiveBufferSize == 0 {
		c.ReceiveBufferSize = defaultBufferSize
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = defaultBufferSize
	}
	if c.ReplyRate > 0 && c.ReplyBurst == 0 {
		c.ReplyBurst = 1
	}
}
