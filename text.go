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
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// sendOptions are the per call overrides of the string and datagram sends.
type sendOptions struct {
	encoding    encoding.Encoding
	termination *TerminationKind
}

// SendOption overrides a send setting for one call.
type SendOption func(*sendOptions)

// WithEncoding encodes text with enc instead of the default encoding.
func WithEncoding(enc encoding.Encoding) SendOption {
	return func(o *sendOptions) {
		o.encoding = enc
	}
}

// WithTermination appends kind instead of the configured termination.
func WithTermination(kind TerminationKind) SendOption {
	return func(o *sendOptions) {
		o.termination = &kind
	}
}

func applySendOptions(enc encoding.Encoding, kind TerminationKind, opts []SendOption) sendOptions {
	o := sendOptions{encoding: enc, termination: &kind}
	for _, opt := range opts {
		opt(&o)
	}
	if o.encoding == nil {
		o.encoding = unicode.UTF8
	}
	return o
}

func encodeText(enc encoding.Encoding, text string) ([]byte, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	return enc.NewEncoder().Bytes([]byte(text))
}

func decodeText(enc encoding.Encoding, data []byte) (string, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	ret, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// frame encodes text and appends the termination marker of o.
func (o sendOptions) frame(text string) ([]byte, error) {
	data, err := encodeText(o.encoding, text)
	if err != nil {
		return nil, err
	}
	return AppendIfAbsent(data, *o.termination)
}
