package security

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

const signingKeyBits = 2048

// SigningKeys is the process-lifetime RSA keypair used to sign and verify
// bearer tokens. It is generated once at startup and never persisted, so a
// restart invalidates every previously issued token.
type SigningKeys struct {
	private *rsa.PrivateKey
}

func GenerateSigningKeys() (*SigningKeys, error) {
	key, err := rsa.GenerateKey(rand.Reader, signingKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate signing keypair: %w", err)
	}
	return &SigningKeys{private: key}, nil
}

// signer is visible only inside this package; the private key is reachable
// from the TokenIssuer alone.
func (k *SigningKeys) signer() *rsa.PrivateKey {
	return k.private
}

func (k *SigningKeys) verifier() *rsa.PublicKey {
	return &k.private.PublicKey
}
