package snapshot

import (
	"crypto"
	"crypto/ecdsa"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/veraison/go-cose"
)

type publicKeyProvider interface {
	PublicKey() (crypto.PublicKey, cose.Algorithm, error)
}

// SealedState is a decoded seal together with the state it carries.
type SealedState struct {
	Sign1Message dtcose.CoseSign1Message
	FilterState  FilterState
}

// DecodeSealed decodes the FilterState from a sealed message. The state is
// unverified until VerifySealed succeeds.
func DecodeSealed(
	codec dtcbor.CBORCodec, msg []byte,
) (*dtcose.CoseSign1Message, FilterState, error) {
	signed, err := dtcose.NewCoseSign1MessageFromCBOR(msg, newDecOptions()...)
	if err != nil {
		return nil, FilterState{}, err
	}

	unverifiedState, err := DecodeState(&codec, signed.Payload)
	if err != nil {
		return nil, FilterState{}, err
	}
	return signed, unverifiedState, nil
}

// VerifySealed re-encodes unverifiedState as the payload and checks the
// signature over it. A state that was changed after decoding does not
// verify.
func VerifySealed(
	codec dtcbor.CBORCodec, keyProvider publicKeyProvider,
	signed *dtcose.CoseSign1Message, unverifiedState FilterState, external []byte,
) error {
	var err error
	signed.Payload, err = EncodeState(&codec, unverifiedState)
	if err != nil {
		return err
	}
	if err = signed.VerifyWithProvider(keyProvider, external); err != nil {
		return fmt.Errorf("%w: %v", ErrSealVerifyFailed, err)
	}
	return nil
}

// VerifySealedWithKey verifies the seal using the key bound in its CWT claims,
// then, if trusted is not nil, requires that key to be trusted.
func VerifySealedWithKey(
	codec dtcbor.CBORCodec, signed *dtcose.CoseSign1Message,
	unverifiedState FilterState, trusted *ecdsa.PublicKey,
) error {
	provider := dtcose.NewCWTPublicKeyProvider(signed)
	if err := VerifySealed(codec, provider, signed, unverifiedState, nil); err != nil {
		return err
	}
	if trusted == nil {
		return nil
	}
	key, _, err := provider.PublicKey()
	if err != nil {
		return err
	}
	if !trusted.Equal(key) {
		return ErrSealKeyMatchFailed
	}
	return nil
}

func newDecOptions() []dtcose.SignOption {
	return []dtcose.SignOption{dtcose.WithDecOptions(dtcbor.NewDeterministicDecOpts())}
}
