package shared

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

const (
	AccountKeyBoundPool    = "BoundPool"
	AccountKeyTargetConfig = "TargetConfig"
)

// AccountDiscriminator returns the 8 byte prefix stored in front of a record.
func AccountDiscriminator(name string) [DiscriminatorSize]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [DiscriminatorSize]byte
	copy(out[:], hash[:DiscriminatorSize])
	return out
}

// EncodeAccount borsh encodes v behind the discriminator of name.
func EncodeAccount(name string, v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	disc := AccountDiscriminator(name)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// DecodeAccount checks the discriminator of name and borsh decodes into v.
func DecodeAccount(name string, data []byte, v any) error {
	if len(data) < DiscriminatorSize {
		return fmt.Errorf("decode %s: account data too short", name)
	}
	disc := AccountDiscriminator(name)
	if !bytes.Equal(data[:DiscriminatorSize], disc[:]) {
		return fmt.Errorf("decode %s: discriminator mismatch", name)
	}
	if err := bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (p *BoundPool) Marshal() ([]byte, error) {
	return EncodeAccount(AccountKeyBoundPool, p)
}

func ParseAccountBoundPool(data []byte) (*BoundPool, error) {
	pool := new(BoundPool)
	if err := DecodeAccount(AccountKeyBoundPool, data, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *TargetConfig) Marshal() ([]byte, error) {
	return EncodeAccount(AccountKeyTargetConfig, c)
}

func ParseAccountTargetConfig(data []byte) (*TargetConfig, error) {
	cfg := new(TargetConfig)
	if err := DecodeAccount(AccountKeyTargetConfig, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
