// ABOUTME: Device identity provider for device-limit enforcement
// ABOUTME: Generates a WEB- prefixed base-36 identifier once and caches it in storage

package device

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/steadystudy/studyportal/internal/storage"
)

// Prefix is prepended to every generated device identifier
const Prefix = "WEB-"

// suffixLength is the number of base-36 characters after the prefix
const suffixLength = 8

// Provider hands out the persistent identifier for this client installation
type Provider struct {
	kv     storage.KV
	random func() string
}

// NewProvider creates a provider backed by kv
func NewProvider(kv storage.KV) *Provider {
	return &Provider{kv: kv, random: randomSuffix}
}

// DeviceID returns the cached identifier, generating and persisting one on first use
func (p *Provider) DeviceID() (string, error) {
	if id, ok := p.kv.Get(storage.KeyDeviceID); ok && id != "" {
		return id, nil
	}

	id := Prefix + p.random()
	if err := p.kv.Update(map[string]string{storage.KeyDeviceID: id}); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}

// suffixSpace is 36^suffixLength, the number of distinct suffixes
var suffixSpace = new(big.Int).Exp(big.NewInt(36), big.NewInt(suffixLength), nil)

// randomSuffix renders a random v4 UUID in base 36 and keeps the trailing
// characters; the leading digit of a 128-bit value only spans 0-F
func randomSuffix() string {
	u := uuid.New()
	n := new(big.Int).Mod(new(big.Int).SetBytes(u[:]), suffixSpace)
	s := strings.ToUpper(n.Text(36))
	return strings.Repeat("0", suffixLength-len(s)) + s
}
