package util

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEnsureUTF8BytesPassthrough(t *testing.T) {
	assert.Equal(t, "", EnsureUTF8Bytes(nil))
	assert.Equal(t, "show version", EnsureUTF8Bytes([]byte("show version")))
	assert.Equal(t, "説明あり", EnsureUTF8Bytes([]byte("説明あり")))
}

func TestEnsureUTF8BytesDecodesLegacy(t *testing.T) {
	// "テスト" in Shift_JIS
	sjis := []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67}
	got := EnsureUTF8Bytes(sjis)
	assert.Equal(t, "テスト", got)

	// Output must always be valid UTF-8, whatever the input bytes were
	garbage := []byte{0xff, 0xfe, 0x41, 0x42}
	assert.True(t, utf8.ValidString(EnsureUTF8(string(garbage))))
}
