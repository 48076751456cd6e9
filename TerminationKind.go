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
	"fmt"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// TerminationKind defines the byte sequence that terminates an application
// message on top of a raw stream or datagram.
type TerminationKind int

const (
	// TerminationKindNone defines that no termination marker is used.
	TerminationKindNone TerminationKind = iota
	// TerminationKindLineFeed terminates messages with 0x0A.
	TerminationKindLineFeed
	// TerminationKindCarriageReturn terminates messages with 0x0D.
	TerminationKindCarriageReturn
	// TerminationKindCarriageReturnAndLineFeed terminates messages with
	// 0x0A 0x0D. The bytes are sent LF first.
	TerminationKindCarriageReturnAndLineFeed
	// TerminationKindEndOfText terminates messages with ETX (0x03).
	TerminationKindEndOfText
	// TerminationKindEndOfTransmission terminates messages with EOT (0x04).
	TerminationKindEndOfTransmission
)

var terminationBytes = map[TerminationKind][]byte{
	TerminationKindNone:                      {},
	TerminationKindLineFeed:                  {0x0A},
	TerminationKindCarriageReturn:            {0x0D},
	TerminationKindCarriageReturnAndLineFeed: {0x0A, 0x0D},
	TerminationKindEndOfText:                 {0x03},
	TerminationKindEndOfTransmission:         {0x04},
}

// TerminationKindParse converts the given string into a TerminationKind value.
//
// Both the canonical names and the short forms LF, CR, CRLF, ETX and EOT are
// accepted.
func TerminationKindParse(value string) (TerminationKind, error) {
	var ret TerminationKind
	var err error
	switch strings.ToUpper(value) {
	case "NONE", "":
		ret = TerminationKindNone
	case "LINEFEED", "LF":
		ret = TerminationKindLineFeed
	case "CARRIAGERETURN", "CR":
		ret = TerminationKindCarriageReturn
	case "CARRIAGERETURNANDLINEFEED", "CRLF":
		ret = TerminationKindCarriageReturnAndLineFeed
	case "ENDOFTEXT", "ETX":
		ret = TerminationKindEndOfText
	case "ENDOFTRANSMISSION", "EOT":
		ret = TerminationKindEndOfTransmission
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the termination kind.
// It satisfies fmt.Stringer.
func (g TerminationKind) String() string {
	var ret string
	switch g {
	case TerminationKindNone:
		ret = "None"
	case TerminationKindLineFeed:
		ret = "LineFeed"
	case TerminationKindCarriageReturn:
		ret = "CarriageReturn"
	case TerminationKindCarriageReturnAndLineFeed:
		ret = "CarriageReturnAndLineFeed"
	case TerminationKindEndOfText:
		ret = "EndOfText"
	case TerminationKindEndOfTransmission:
		ret = "EndOfTransmission"
	default:
		ret = fmt.Sprintf("TerminationKind(%d)", int(g))
	}
	return ret
}

// TerminationBytes returns the marker bytes of the termination kind.
// The returned slice is a copy and may be modified by the caller.
func TerminationBytes(kind TerminationKind) ([]byte, error) {
	marker, ok := terminationBytes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(kind))
	}
	return bytes.Clone(marker), nil
}

// AppendIfAbsent appends the termination marker to data unless data already
// ends with it.
//
// Data shorter than the marker is returned unchanged. The input slice is
// never modified; when a marker is appended a new slice is returned.
func AppendIfAbsent(data []byte, kind TerminationKind) ([]byte, error) {
	marker, ok := terminationBytes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(kind))
	}
	if len(marker) == 0 || len(data) < len(marker) {
		return data, nil
	}
	if bytes.HasSuffix(data, marker) {
		return data, nil
	}
	return append(data[:len(data):len(data)], marker...), nil
}

// ContainsMarker reports whether data contains the termination marker.
//
// TerminationKindNone always matches. Single byte markers match when the byte
// occurs anywhere in data. TerminationKindCarriageReturnAndLineFeed decodes
// data as text and matches either "\r\n" or "\n\r".
func ContainsMarker(data []byte, kind TerminationKind) (bool, error) {
	switch kind {
	case TerminationKindNone:
		return true, nil
	case TerminationKindLineFeed, TerminationKindCarriageReturn,
		TerminationKindEndOfText, TerminationKindEndOfTransmission:
		return bytes.IndexByte(data, terminationBytes[kind][0]) != -1, nil
	case TerminationKindCarriageReturnAndLineFeed:
		text := string(data)
		return strings.Contains(text, "\r\n") || strings.Contains(text, "\n\r"), nil
	}
	return false, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(kind))
}
