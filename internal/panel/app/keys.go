package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/panel/pkg/jwtx"
)

// InitAuthKeys builds the token signer and verifier from the config.
//
// HS256 uses JWT_SECRET. EdDSA reads a PKCS8 PEM from JWT_KEY_FILE; without
// one an ephemeral key is generated and every session dies with the process.
func InitAuthKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	opts := jwtx.KeyOptions{
		Algorithm: cfg.JWTAlgorithm,
		KeyID:     cfg.JWTKeyID,
		Secret:    cfg.JWTSecret,
		Verify: jwtx.VerifyOptions{
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
	}

	if strings.EqualFold(cfg.JWTAlgorithm, "EdDSA") {
		if cfg.JWTKeyFile != "" {
			pemKey, err := os.ReadFile(cfg.JWTKeyFile)
			if err != nil {
				return nil, nil, fmt.Errorf("read JWT key file: %w", err)
			}
			opts.PEM = pemKey
		} else {
			logger.Warn("no JWT_KEY_FILE configured, using an ephemeral EdDSA key; sessions will not survive a restart")
		}
	}

	signer, verifier, err := jwtx.NewKeys(opts)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("token keys loaded", "algorithm", signer.Alg(), "kid", signer.KID(), "issuer", cfg.JWTIssuer)
	return signer, verifier, nil
}
