package sandbox

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// newSubAccountKey generates a sub-account API key.
func newSubAccountKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// newWebhookSecret generates a signing secret in the whsec_ format the
// events package understands.
func newWebhookSecret() string {
	var b [32]byte
	rand.Read(b[:])
	return "whsec_" + base64.StdEncoding.EncodeToString(b[:])
}
