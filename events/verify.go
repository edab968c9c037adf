package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudflare/circl/sign/ed25519"
)

// Headers carried by every signed webhook delivery.
const (
	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"
)

// DefaultTolerance bounds the accepted skew between the
// webhook-timestamp header and local time.
const DefaultTolerance = 5 * time.Minute

const (
	secretPrefix    = "whsec_"
	publicKeyPrefix = "whpk_"

	schemeHMAC    = "v1"
	schemeEd25519 = "v1a"
)

var (
	// ErrUnknownSecretFormat is returned when the secret carries neither
	// a whsec_ nor a whpk_ prefix.
	ErrUnknownSecretFormat = errors.New("unknown webhook secret format")

	// ErrInvalidPublicKeySize is returned when a whpk_ key is not a
	// valid Ed25519 public key.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrMissingHeaders is returned when a signature header is absent.
	ErrMissingHeaders = errors.New("missing webhook signature headers")

	// ErrInvalidTimestamp is returned when webhook-timestamp is not a
	// unix timestamp.
	ErrInvalidTimestamp = errors.New("invalid webhook timestamp")

	// ErrTimestampOutOfRange is returned when the timestamp falls
	// outside the verifier's tolerance.
	ErrTimestampOutOfRange = errors.New("webhook timestamp outside tolerance")

	// ErrInvalidSignature is returned when no signature matches the
	// payload.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)

// Verifier authenticates webhook deliveries. It must be used on the raw
// request body, before the payload is parsed.
type Verifier struct {
	hmacKey   []byte
	publicKey ed25519.PublicKey
	tolerance time.Duration
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithTolerance overrides the accepted timestamp skew.
func WithTolerance(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.tolerance = d
	}
}

// NewVerifier builds a Verifier from the secret returned when the
// webhook was created. whsec_ secrets verify HMAC-SHA256 signatures;
// whpk_ keys verify Ed25519 signatures.
func NewVerifier(secret string, opts ...VerifierOption) (*Verifier, error) {
	v := &Verifier{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(v)
	}

	switch {
	case strings.HasPrefix(secret, secretPrefix):
		key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
		if err != nil {
			return nil, fmt.Errorf("decode webhook secret: %w", err)
		}
		v.hmacKey = key
	case strings.HasPrefix(secret, publicKeyPrefix):
		key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, publicKeyPrefix))
		if err != nil {
			return nil, fmt.Errorf("decode webhook public key: %w", err)
		}
		if len(key) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKeySize, len(key), ed25519.PublicKeySize)
		}
		v.publicKey = ed25519.PublicKey(key)
	default:
		return nil, ErrUnknownSecretFormat
	}

	return v, nil
}

// Verify checks the signature headers against the raw request body.
// The signature header may carry several space-separated signatures
// (emitted during secret rotation); verification succeeds when any one
// of them matches.
func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	id := headers.Get(HeaderID)
	timestamp := headers.Get(HeaderTimestamp)
	signatures := headers.Get(HeaderSignature)
	if id == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
	}
	skew := time.Since(time.Unix(unix, 0))
	if skew > v.tolerance || skew < -v.tolerance {
		return ErrTimestampOutOfRange
	}

	signed := signedContent(id, timestamp, payload)
	for _, candidate := range strings.Fields(signatures) {
		scheme, encoded, found := strings.Cut(candidate, ",")
		if !found {
			continue
		}
		sig, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if v.matches(scheme, signed, sig) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// ParseAndVerify verifies the signature headers, then decodes the body.
func (v *Verifier) ParseAndVerify(payload []byte, headers http.Header) (*Event, error) {
	if err := v.Verify(payload, headers); err != nil {
		return nil, err
	}
	return ParseEvent(payload)
}

func (v *Verifier) matches(scheme string, signed, sig []byte) bool {
	switch scheme {
	case schemeHMAC:
		if v.hmacKey == nil {
			return false
		}
		mac := hmac.New(sha256.New, v.hmacKey)
		mac.Write(signed)
		return hmac.Equal(sig, mac.Sum(nil))
	case schemeEd25519:
		if v.publicKey == nil || len(sig) != ed25519.SignatureSize {
			return false
		}
		return ed25519.Verify(v.publicKey, signed, sig)
	default:
		return false
	}
}

// signedContent is the byte string SendPost signs: the delivery id,
// the timestamp header value, and the raw body joined by dots.
func signedContent(id, timestamp string, payload []byte) []byte {
	content := make([]byte, 0, len(id)+len(timestamp)+len(payload)+2)
	content = append(content, id...)
	content = append(content, '.')
	content = append(content, timestamp...)
	content = append(content, '.')
	content = append(content, payload...)
	return content
}
