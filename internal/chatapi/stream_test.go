// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePrefix(t *testing.T) {
	euro := "€"
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"empty", nil, 0},
		{"ascii", []byte("abc"), 3},
		{"complete rune", []byte("a" + euro), 4},
		{"one byte of three", []byte("a" + euro[:1]), 1},
		{"two bytes of three", []byte("a" + euro[:2]), 1},
		{"only partial", []byte(euro[:2]), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completePrefix(tt.in))
		})
	}
}

func TestReadStream_OneByteReads(t *testing.T) {
	text := "héllo 世界 ✓"
	var chunks []string

	n, err := readStream(iotest.OneByteReader(strings.NewReader(text)), func(s string) {
		chunks = append(chunks, s)
	})

	require.NoError(t, err)
	assert.Equal(t, len(text), n)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %q", c)
	}
}

func TestReadStream_PropagatesError(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("part"), iotest.ErrReader(boom))

	var got strings.Builder
	_, err := readStream(r, func(s string) { got.WriteString(s) })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "part", got.String())
}
