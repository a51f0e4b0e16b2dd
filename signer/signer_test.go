package signer

import (
	"net/http"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lowerHex     = regexp.MustCompile(`^[0-9a-f]{64}$`)
	alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func TestSign(t *testing.T) {
	got := Sign([]byte("The quick brown fox jumps over the lazy dog"), []byte("key"))
	require.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got)
}

func TestSignature(t *testing.T) {
	sig := Signature("api-key", "nonce", "1700000000000", "secret")
	require.Regexp(t, lowerHex, sig)
	require.Equal(t, Sign([]byte("api-keynonce1700000000000"), []byte("secret")), sig)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, sig, Signature("api-key", "nonce", "1700000000000", "secret"))
	})
	t.Run("nonce changes signature", func(t *testing.T) {
		assert.NotEqual(t, sig, Signature("api-key", "nonce2", "1700000000000", "secret"))
	})
	t.Run("timestamp changes signature", func(t *testing.T) {
		assert.NotEqual(t, sig, Signature("api-key", "nonce", "1700000000001", "secret"))
	})
	t.Run("secret changes signature", func(t *testing.T) {
		assert.NotEqual(t, sig, Signature("api-key", "nonce", "1700000000000", "other"))
	})
}

func TestRandomString(t *testing.T) {
	for _, length := range []int{1, 16, RandomStringLength, 128} {
		s := RandomString(length)
		require.Len(t, s, length)
		require.Regexp(t, alphanumeric, s)
	}

	require.NotEqual(t, RandomString(RandomStringLength), RandomString(RandomStringLength))
	require.Equal(t, "", RandomString(0))
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	require.Equal(t, strconv.FormatInt(ts.UnixMilli(), 10), Timestamp(ts))
	require.Equal(t, "0", Timestamp(time.UnixMilli(0)))
}

func TestSignerHeaders(t *testing.T) {
	s := New("api-key", "secret")
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	s.random = func(length int) string {
		require.Equal(t, RandomStringLength, length)
		return "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef"
	}

	headers := s.Headers()
	require.Len(t, headers, 5)
	require.Equal(t, "api-key", headers[HeaderApiKey])
	require.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef", headers[HeaderRandom])
	require.Equal(t, "1700000000123", headers[HeaderTimestamp])
	require.Equal(t, ContentTypeJSON, headers[HeaderContentType])
	require.Equal(t,
		Signature("api-key", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef", "1700000000123", "secret"),
		headers[HeaderSignature])
}

func TestSignerHeadersFresh(t *testing.T) {
	s := New("api-key", "secret")
	first, second := s.Headers(), s.Headers()

	require.Len(t, first[HeaderRandom], RandomStringLength)
	require.Regexp(t, alphanumeric, first[HeaderRandom])
	require.Regexp(t, lowerHex, first[HeaderSignature])
	require.NotEqual(t, first[HeaderRandom], second[HeaderRandom])
	require.NotEqual(t, first[HeaderSignature], second[HeaderSignature])
}

func TestVerify(t *testing.T) {
	header := http.Header{}
	for k, v := range New("api-key", "secret").Headers() {
		header.Set(k, v)
	}

	require.True(t, Verify(header, "api-key", "secret"))
	require.False(t, Verify(header, "api-key", "wrong"))
	require.False(t, Verify(header, "other-key", "secret"))

	header.Set(HeaderTimestamp, "1")
	require.False(t, Verify(header, "api-key", "secret"))
}
