package jwtx

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/panel/pkg/cryptox"
)

// KeyOptions select the signing algorithm and its key material.
type KeyOptions struct {
	Algorithm string // HS256 or EdDSA
	KeyID     string

	// Secret for HS256.
	Secret string

	// PEM for EdDSA. When empty an ephemeral key is generated, which means
	// tokens do not survive a restart.
	PEM []byte

	Verify VerifyOptions
}

// NewKeys builds a matching signer and verifier pair.
func NewKeys(opts KeyOptions) (Signer, Verifier, error) {
	switch strings.ToUpper(opts.Algorithm) {
	case "", "HS256":
		s, err := NewHS256Signer(opts.KeyID, []byte(opts.Secret))
		if err != nil {
			return nil, nil, err
		}
		return s, NewHS256Verifier([]byte(opts.Secret), opts.Verify), nil

	case "EDDSA":
		pemKey := opts.PEM
		if len(pemKey) == 0 {
			var err error
			if pemKey, err = cryptox.GenerateEd25519Key(); err != nil {
				return nil, nil, err
			}
		}
		s, err := NewEdDSASigner(opts.KeyID, pemKey)
		if err != nil {
			return nil, nil, err
		}
		return s, NewEdDSAVerifier(s.PublicKey(), opts.Verify), nil

	default:
		return nil, nil, fmt.Errorf("jwtx: unsupported algorithm %q", opts.Algorithm)
	}
}
