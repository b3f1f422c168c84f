package common

import (
	"encoding/hex"
	"io/ioutil"
	"strings"

	"github.com/haltingstate/secp256k1-go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

const (
	HashBytes      = 32
	SignatureBytes = 65
	PublicKeyBytes = 33
	SecretKeyBytes = 32
)

var ErrInvalidSignature = errors.New("invalid signature")

func SHA3Sum256(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

// AddressFromPublicKey derives the account address of a compressed
// secp256k1 public key.
func AddressFromPublicKey(pubKey []byte) *Address {
	digest := SHA3Sum256(pubKey)
	return NewAccountAddress(digest[len(digest)-AddressIDBytes:])
}

// RecoverAddress returns the address of the key that produced sig over hash.
func RecoverAddress(hash []byte, sig []byte) (*Address, error) {
	if len(hash) != HashBytes || len(sig) != SignatureBytes {
		return nil, errors.Wrapf(ErrInvalidSignature, "hash=%d bytes sig=%d bytes", len(hash), len(sig))
	}
	pubKey := secp256k1.RecoverPubkey(hash, sig)
	if pubKey == nil {
		return nil, errors.Wrap(ErrInvalidSignature, "recover public key")
	}
	if secp256k1.VerifySignature(hash, sig, pubKey) != 1 {
		return nil, errors.Wrap(ErrInvalidSignature, "verify")
	}
	return AddressFromPublicKey(pubKey), nil
}

type KeyPair struct {
	PublicKey []byte
	SecretKey []byte
}

func GenerateKeyPair() *KeyPair {
	pub, sec := secp256k1.GenerateKeyPair()
	return &KeyPair{PublicKey: pub, SecretKey: sec}
}

func KeyPairFromSecret(sec []byte) (*KeyPair, error) {
	if len(sec) != SecretKeyBytes || secp256k1.VerifySeckey(sec) != 1 {
		return nil, errors.New("invalid secret key")
	}
	return &KeyPair{PublicKey: secp256k1.PubkeyFromSeckey(sec), SecretKey: sec}, nil
}

func (kp *KeyPair) Address() *Address {
	return AddressFromPublicKey(kp.PublicKey)
}

func (kp *KeyPair) Sign(hash []byte) ([]byte, error) {
	if len(hash) != HashBytes {
		return nil, errors.Errorf("hash must be %d bytes", HashBytes)
	}
	sig := secp256k1.Sign(hash, kp.SecretKey)
	if len(sig) != SignatureBytes {
		return nil, errors.New("failed to sign")
	}
	return sig, nil
}

// LoadKeyPair reads a hex encoded secret key from file.
func LoadKeyPair(file string) (*KeyPair, error) {
	bs, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	sec, err := hex.DecodeString(strings.TrimSpace(string(bs)))
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", file)
	}
	return KeyPairFromSecret(sec)
}

func (kp *KeyPair) Save(file string) error {
	return ioutil.WriteFile(file, []byte(hex.EncodeToString(kp.SecretKey)+"\n"), 0600)
}
