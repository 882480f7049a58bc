package snapshot

import "errors"

var (
	ErrStateInvalid          = errors.New("snapshot: filter state is invalid")
	ErrCBORCodecNotProvided  = errors.New("snapshot: a CBOR codec was required but not provided")
	ErrSealVerifyFailed      = errors.New("snapshot: the seal signature verification failed")
	ErrSealKeyMatchFailed    = errors.New("snapshot: the provided public key did not match the sealing key")
	ErrSignerKeyNotAvailable = errors.New("snapshot: unable to get the public key for the signing key")
)
