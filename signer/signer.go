package signer

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"net/http"
	"strconv"
	"time"
)

const (
	HeaderApiKey      = "X-Api-Key"
	HeaderRandom      = "X-Klogs-Rnd"
	HeaderTimestamp   = "X-Klogs-Timestamp"
	HeaderSignature   = "X-Klogs-Signature"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"

	RandomStringLength = 32
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

func Sign(bytes []byte, secret []byte) string {
	hmac := hmac.New(sha256.New, secret)
	hmac.Write(bytes)
	dataHmac := hmac.Sum(nil)
	hmacHex := hex.EncodeToString(dataHmac)
	return hmacHex
}

// Signature signs apiKey+random+timestamp with the secret key. Method, path
// and body are not part of the signed text.
func Signature(apiKey, random, timestamp, secretKey string) string {
	return Sign([]byte(apiKey+random+timestamp), []byte(secretKey))
}

// RandomString returns length characters drawn from [A-Za-z0-9] using the
// OS random source.
func RandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// Timestamp renders t as milliseconds since the Unix epoch.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Signer produces authentication headers for a single API key pair.
type Signer struct {
	apiKey    string
	secretKey string
	now       func() time.Time
	random    func(length int) string
}

func New(apiKey, secretKey string) *Signer {
	return &Signer{
		apiKey:    apiKey,
		secretKey: secretKey,
		now:       time.Now,
		random:    RandomString,
	}
}

// Headers returns a fresh header set for exactly one outgoing request.
func (s *Signer) Headers() map[string]string {
	random := s.random(RandomStringLength)
	timestamp := Timestamp(s.now())
	return map[string]string{
		HeaderApiKey:      s.apiKey,
		HeaderRandom:      random,
		HeaderTimestamp:   timestamp,
		HeaderSignature:   Signature(s.apiKey, random, timestamp, s.secretKey),
		HeaderContentType: ContentTypeJSON,
	}
}

// Verify reports whether header carries a valid signature for the key pair.
func Verify(header http.Header, apiKey, secretKey string) bool {
	if header.Get(HeaderApiKey) != apiKey {
		return false
	}
	expected := Signature(apiKey, header.Get(HeaderRandom), header.Get(HeaderTimestamp), secretKey)
	return hmac.Equal([]byte(expected), []byte(header.Get(HeaderSignature)))
}
