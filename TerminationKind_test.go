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
	"errors"
	"testing"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTerminationKinds = []TerminationKind{
	TerminationKindNone,
	TerminationKindLineFeed,
	TerminationKindCarriageReturn,
	TerminationKindCarriageReturnAndLineFeed,
	TerminationKindEndOfText,
	TerminationKindEndOfTransmission,
}

func TestTerminationBytes(t *testing.T) {
	tests := []struct {
		kind TerminationKind
		want []byte
	}{
		{TerminationKindNone, []byte{}},
		{TerminationKindLineFeed, []byte{0x0A}},
		{TerminationKindCarriageReturn, []byte{0x0D}},
		{TerminationKindCarriageReturnAndLineFeed, []byte{0x0A, 0x0D}},
		{TerminationKindEndOfText, []byte{0x03}},
		{TerminationKindEndOfTransmission, []byte{0x04}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := TerminationBytes(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminationBytes_ReturnsCopy(t *testing.T) {
	got, err := TerminationBytes(TerminationKindLineFeed)
	require.NoError(t, err)
	got[0] = 'X'

	again, err := TerminationBytes(TerminationKindLineFeed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A}, again)
}

func TestTerminationKind_Unsupported(t *testing.T) {
	kind := TerminationKind(42)

	_, err := TerminationBytes(kind)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.ErrorIs(t, err, gxcommon.ErrUnknownEnum)

	_, err = AppendIfAbsent([]byte("abc"), kind)
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = ContainsMarker([]byte("abc"), kind)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestAppendIfAbsent(t *testing.T) {
	got, err := AppendIfAbsent([]byte{0x41, 0x42}, TerminationKindLineFeed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x42, 0x0A}, got)

	again, err := AppendIfAbsent(got, TerminationKindLineFeed)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAppendIfAbsent_CarriageReturnAndLineFeedOrder(t *testing.T) {
	got, err := AppendIfAbsent([]byte("hello"), TerminationKindCarriageReturnAndLineFeed)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\n\r"), got)
}

func TestAppendIfAbsent_ShortDataUnchanged(t *testing.T) {
	got, err := AppendIfAbsent(nil, TerminationKindLineFeed)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = AppendIfAbsent([]byte{0x41}, TerminationKindCarriageReturnAndLineFeed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, got)
}

func TestAppendIfAbsent_None(t *testing.T) {
	got, err := AppendIfAbsent([]byte("abc"), TerminationKindNone)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestAppendIfAbsent_DoesNotModifyInput(t *testing.T) {
	buf := make([]byte, 2, 16)
	buf[0], buf[1] = 'a', 'b'

	got, err := AppendIfAbsent(buf, TerminationKindEndOfText)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0x03}, got)
	assert.Equal(t, byte(0), buf[:3][2])
}

func TestAppendIfAbsent_Idempotent(t *testing.T) {
	inputs := [][]byte{
		[]byte("x"),
		[]byte("hello world"),
		[]byte("hello\n"),
		[]byte("hello\r"),
		[]byte("\n\r"),
		{0x00, 0x03, 0x04},
	}
	for _, kind := range allTerminationKinds {
		for _, in := range inputs {
			once, err := AppendIfAbsent(in, kind)
			require.NoError(t, err)
			twice, err := AppendIfAbsent(once, kind)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "kind %s input %q", kind, in)
		}
	}
}

func TestContainsMarker_SingleByteKinds(t *testing.T) {
	kinds := []TerminationKind{
		TerminationKindLineFeed,
		TerminationKindCarriageReturn,
		TerminationKindEndOfText,
		TerminationKindEndOfTransmission,
	}
	for _, kind := range kinds {
		marker, err := TerminationBytes(kind)
		require.NoError(t, err)
		for _, data := range [][]byte{
			{marker[0]},
			{marker[0], 'a', 'b'},
			{'a', marker[0], 'b'},
			{'a', 'b', marker[0]},
		} {
			found, err := ContainsMarker(data, kind)
			require.NoError(t, err)
			assert.True(t, found, "kind %s data % X", kind, data)
		}
		found, err := ContainsMarker([]byte("plain"), kind)
		require.NoError(t, err)
		assert.False(t, found, "kind %s", kind)
	}
}

func TestContainsMarker_CarriageReturnAndLineFeed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"lf cr", []byte{0x0A, 0x0D}, true},
		{"cr lf", []byte{0x0D, 0x0A}, true},
		{"inside", []byte("a\r\nb"), true},
		{"lf only", []byte("a\nb"), false},
		{"cr only", []byte("a\rb"), false},
		{"separated", []byte("\nx\r"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := ContainsMarker(tt.data, TerminationKindCarriageReturnAndLineFeed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
		})
	}
}

func TestContainsMarker_NoneAlwaysMatches(t *testing.T) {
	found, err := ContainsMarker(nil, TerminationKindNone)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTerminationKindParse(t *testing.T) {
	for _, kind := range allTerminationKinds {
		got, err := TerminationKindParse(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	short := map[string]TerminationKind{
		"lf":   TerminationKindLineFeed,
		"CR":   TerminationKindCarriageReturn,
		"crlf": TerminationKindCarriageReturnAndLineFeed,
		"ETX":  TerminationKindEndOfText,
		"eot":  TerminationKindEndOfTransmission,
		"":     TerminationKindNone,
	}
	for value, want := range short {
		got, err := TerminationKindParse(value)
		require.NoError(t, err)
		assert.Equal(t, want, got, value)
	}

	_, err := TerminationKindParse("semicolon")
	assert.True(t, errors.Is(err, gxcommon.ErrUnknownEnum))
}
