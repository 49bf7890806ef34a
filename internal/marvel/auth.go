package marvel

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Signer produces the per-request auth parameters for server-side apps.
// The private key is only ever used as hash input.
type Signer struct {
	publicKey  string
	privateKey string
	now        func() time.Time
}

// NewSigner creates a signer for the given key pair
func NewSigner(publicKey, privateKey string) *Signer {
	return &Signer{publicKey: publicKey, privateKey: privateKey, now: time.Now}
}

// Sign returns ts, apikey and hash for a request issued now.
// hash = md5(ts + privateKey + publicKey)
func (s *Signer) Sign() url.Values {
	ts := strconv.FormatInt(s.now().UnixMilli(), 10)
	sum := md5.Sum([]byte(ts + s.privateKey + s.publicKey))

	params := url.Values{}
	params.Set("ts", ts)
	params.Set("apikey", s.publicKey)
	params.Set("hash", hex.EncodeToString(sum[:]))
	return params
}
