// Package metrics collects connection engine counters.
//
// The package level Counter is a no-op until Register installs a Prometheus
// implementation. Endpoints may also be given their own Metrics value.
package metrics

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
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics receives connection engine events. The endpoint label is one of
// tcp_client, tcp_server, udp_client or udp_server.
type Metrics interface {
	AddConnect(endpoint string)
	AddConnectFailed(endpoint string)
	AddDisconnect(endpoint string)
	AddFault(endpoint, kind string)
	AddBytesSent(endpoint string, n int)
	AddBytesReceived(endpoint string, n int)
	AddMessage(endpoint string, size int)
	AddReply(endpoint, kind string)
}

// Counter is the process wide default used by endpoints without their own
// Metrics.
var Counter Metrics = &EmptyMetrics{}

// Register creates a Prometheus implementation on reg and installs it as
// Counter.
func Register(reg prometheus.Registerer) *Prometheus {
	p := NewPrometheus(reg)
	Counter = p
	return p
}

type EmptyMetrics struct{}

func (m *EmptyMetrics) AddConnect(string)            {}
func (m *EmptyMetrics) AddConnectFailed(string)      {}
func (m *EmptyMetrics) AddDisconnect(string)         {}
func (m *EmptyMetrics) AddFault(string, string)      {}
func (m *EmptyMetrics) AddBytesSent(string, int)     {}
func (m *EmptyMetrics) AddBytesReceived(string, int) {}
func (m *EmptyMetrics) AddMessage(string, int)       {}
func (m *EmptyMetrics) AddReply(string, string)      {}

type Prometheus struct {
	ConnectTotal       *prometheus.CounterVec
	ConnectFailedTotal *prometheus.CounterVec
	DisconnectTotal    *prometheus.CounterVec
	FaultTotal         *prometheus.CounterVec
	SentBytesTotal     *prometheus.CounterVec
	ReceivedBytesTotal *prometheus.CounterVec
	MessageSizeBytes   *prometheus.HistogramVec
	ReplyTotal         *prometheus.CounterVec
}

// NewPrometheus registers the collectors on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	hostname, _ := os.Hostname()
	labels := prometheus.Labels{
		"hostname": hostname,
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
	}
	factory := promauto.With(reg)

	return &Prometheus{
		ConnectTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_connect_total",
			Help:        "The total number of established connections",
			ConstLabels: labels,
		}, []string{"endpoint"}),
		ConnectFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_connect_failed_total",
			Help:        "The total number of failed connect attempts",
			ConstLabels: labels,
		}, []string{"endpoint"}),
		DisconnectTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_disconnect_total",
			Help:        "The total number of closed connections",
			ConstLabels: labels,
		}, []string{"endpoint"}),
		FaultTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_fault_total",
			Help:        "The total number of socket faults by kind",
			ConstLabels: labels,
		}, []string{"endpoint", "kind"}),
		SentBytesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_sent_bytes_total",
			Help:        "The total number of sent bytes",
			ConstLabels: labels,
		}, []string{"endpoint"}),
		ReceivedBytesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_received_bytes_total",
			Help:        "The total number of received bytes",
			ConstLabels: labels,
		}, []string{"endpoint"}),
		MessageSizeBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "gxendpoint_message_size_bytes",
			Help:        "The size of delivered messages",
			Buckets:     []float64{2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 1500, 2048, 4096, 8192, 16384, 32768, 65536},
			ConstLabels: labels,
		}, []string{"endpoint"}),
		ReplyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "gxendpoint_reply_total",
			Help:        "The total number of automatic replies",
			ConstLabels: labels,
		}, []string{"endpoint", "kind"}),
	}
}

func (p *Prometheus) AddConnect(endpoint string) {
	p.ConnectTotal.WithLabelValues(endpoint).Inc()
}

func (p *Prometheus) AddConnectFailed(endpoint string) {
	p.ConnectFailedTotal.WithLabelValues(endpoint).Inc()
}

func (p *Prometheus) AddDisconnect(endpoint string) {
	p.DisconnectTotal.WithLabelValues(endpoint).Inc()
}

func (p *Prometheus) AddFault(endpoint, kind string) {
	p.FaultTotal.WithLabelValues(endpoint, kind).Inc()
}

func (p *Prometheus) AddBytesSent(endpoint string, n int) {
	p.SentBytesTotal.WithLabelValues(endpoint).Add(float64(n))
}

func (p *Prometheus) AddBytesReceived(endpoint string, n int) {
	p.ReceivedBytesTotal.WithLabelValues(endpoint).Add(float64(n))
}

func (p *Prometheus) AddMessage(endpoint string, size int) {
	p.MessageSizeBytes.WithLabelValues(endpoint).Observe(float64(size))
}

func (p *Prometheus) AddReply(endpoint, kind string) {
	p.ReplyTotal.WithLabelValues(endpoint, kind).Inc()
}
