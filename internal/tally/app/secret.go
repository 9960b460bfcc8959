package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

// InitSigning builds the HS256 signer and verifier from the configured
// secret. Without one a random per-process secret is generated, which means
// every restart invalidates outstanding tokens.
func InitSigning(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := cryptox.GenerateSecret(cryptox.MinSecretBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = generated
		logger.Warn("TALLY_JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	} else if cryptox.WeakSecret(secret) {
		logger.Warn("TALLY_JWT_SECRET is short, use at least 32 bytes", "length", len(secret))
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return nil, nil, err
	}

	logger.Info("jwt signing ready",
		"algorithm", signer.Alg(),
		"issuer", cfg.Issuer,
		"secret_fingerprint", cryptox.Fingerprint(secret),
	)

	return signer, jwtx.NewVerifierHS256([]byte(secret), cfg.Issuer), nil
}
