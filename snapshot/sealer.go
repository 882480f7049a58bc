package snapshot

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/veraison/go-cose"
)

// IdentifiableCoseSigner is a Sign1 signer that can also say which key it
// signs with, so the key can be bound into the sealed message.
type IdentifiableCoseSigner interface {
	cose.Signer
	PublicKey() (*ecdsa.PublicKey, error)
	KeyIdentifier() string
}

// Sealer produces COSE Sign1 messages over filter snapshots. The CBOR encoded
// FilterState is the attached payload, and the signing key is bound in the
// protected CWT claims so that a reader can check the seal without any other
// key distribution.
type Sealer struct {
	issuer    string
	cborCodec dtcbor.CBORCodec
}

func NewSealer(issuer string, cborCodec dtcbor.CBORCodec) Sealer {
	return Sealer{
		issuer:    issuer,
		cborCodec: cborCodec,
	}
}

// Sign1 seals state. subject names what the filter is for (typically its
// storage path).
func (s Sealer) Sign1(
	coseSigner cose.Signer, keyIdentifier string, publicKey *ecdsa.PublicKey,
	subject string, state FilterState, external []byte,
) ([]byte, error) {
	payload, err := EncodeState(&s.cborCodec, state)
	if err != nil {
		return nil, err
	}

	coseHeaders := cose.Headers{
		Protected: cose.ProtectedHeader{
			dtcose.HeaderLabelCWTClaims: dtcose.NewCNFClaim(
				s.issuer, subject, keyIdentifier, coseSigner.Algorithm(), *publicKey),
		},
	}

	msg := cose.Sign1Message{
		Headers: coseHeaders,
		Payload: payload,
	}
	err = msg.Sign(rand.Reader, external, coseSigner)
	if err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// Seal is Sign1 for a signer that can identify its own key.
func (s Sealer) Seal(signer IdentifiableCoseSigner, subject string, state FilterState) ([]byte, error) {
	publicKey, err := signer.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignerKeyNotAvailable, err)
	}
	return s.Sign1(signer, signer.KeyIdentifier(), publicKey, subject, state, nil)
}
