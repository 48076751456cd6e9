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
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// NetworkType selects the transport of an endpoint.
type NetworkType int

const (
	// NetworkTypeUDP endpoints exchange datagrams.
	NetworkTypeUDP NetworkType = iota
	// NetworkTypeTCP endpoints exchange a byte stream.
	NetworkTypeTCP
)

// NetworkTypeParse returns the transport named by value. The match ignores
// case; an unknown name wraps gxcommon.ErrUnknownEnum.
func NetworkTypeParse(value string) (NetworkType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "UDP":
		return NetworkTypeUDP, nil
	case "TCP":
		return NetworkTypeTCP, nil
	}
	return NetworkTypeUDP, fmt.Errorf("%w: network type %q", gxcommon.ErrUnknownEnum, value)
}

func (g NetworkType) String() string {
	switch g {
	case NetworkTypeUDP:
		return "UDP"
	case NetworkTypeTCP:
		return "TCP"
	}
	return fmt.Sprintf("NetworkType(%d)", int(g))
}

// network returns the Go network name used to dial a client of this type.
func (g NetworkType) network(useIPv6 bool) string {
	if g == NetworkTypeTCP {
		if useIPv6 {
			return "tcp6"
		}
		return "tcp4"
	}
	if useIPv6 {
		return "udp6"
	}
	return "udp"
}

// listenNetwork returns the Go network name used to bind a server of this
// type. The address family follows the bind address.
func (g NetworkType) listenNetwork() string {
	if g == NetworkTypeTCP {
		return "tcp"
	}
	return "udp"
}
