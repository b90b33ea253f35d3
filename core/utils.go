package core

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// Source yields uniformly distributed 64-bit words. Stream and Transcript
// both satisfy it.
type Source interface {
	Uint64() uint64
}

// FillBits overwrites out with 0/1 entries, one word of src per 64 entries.
func FillBits(src Source, out []uint64) {
	fillBits(out, src.Uint64)
}

func fillBits(out []uint64, next func() uint64) {
	for i := 0; i < len(out); i += 64 {
		word := next()
		for j := i; j < min(i+64, len(out)); j++ {
			out[j] = word & 1
			word >>= 1
		}
	}
}

// Stream is a deterministic pseudo-random source backed by a ChaCha20
// keystream. It is not safe for concurrent use.
type Stream struct {
	cipher *chacha20.Cipher
	buf    [SymbolBytes]byte
}

// NewStream returns a keystream keyed by seed.
func NewStream(seed uint64) *Stream {
	key := make([]byte, chacha20.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	cipher, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed above
		panic(fmt.Sprintf("failed to initialize ChaCha20: %v", err))
	}
	return &Stream{cipher: cipher}
}

func (s *Stream) Uint64() uint64 {
	clear(s.buf[:])
	s.cipher.XORKeyStream(s.buf[:], s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// RandomMessage returns k field elements drawn from a stream keyed by seed.
func RandomMessage(k int, field *PrimeField, seed uint64) []uint64 {
	stream := NewStream(seed)
	message := make([]uint64, k)
	for i := range message {
		message[i] = field.Reduce(stream.Uint64())
	}
	return message
}

// RandomMatrix generates a rows x cols matrix with entries below modulus. A
// zero modulus leaves the entries unreduced.
func RandomMatrix(rows, cols int, modulus uint64, seed uint64) ([][]uint64, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}

	stream := NewStream(seed)
	matrix := make([][]uint64, rows)
	for i := range matrix {
		matrix[i] = make([]uint64, cols)
		for j := range matrix[i] {
			v := stream.Uint64()
			if modulus != 0 {
				v %= modulus
			}
			matrix[i][j] = v
		}
	}

	return matrix, nil
}
