package core

import (
	"encoding/binary"

	"github.com/gtank/merlin"
)

// SymbolBytes is the size of an encoded field element.
const SymbolBytes = 8

type Transcript struct {
	*merlin.Transcript
}

func NewTranscript(name string) *Transcript {
	return &Transcript{merlin.NewTranscript(name)}
}

func (t *Transcript) AppendBytes(label string, bytes []byte) {
	t.AppendMessage([]byte(label), bytes)
}

func (t *Transcript) AppendField(label string, element uint64) {
	t.AppendMessage([]byte(label), binary.LittleEndian.AppendUint64(nil, element))
}

func (t *Transcript) AppendFields(label string, elements []uint64) {
	for _, element := range elements {
		t.AppendField(label, element)
	}
}

func (t *Transcript) SampleUint64(label string) uint64 {
	bytes := t.ExtractBytes([]byte(label), SymbolBytes)
	return binary.LittleEndian.Uint64(bytes)
}

// SampleField draws a field element. The bias of reducing 64 random bits is
// at most p/2^64.
func (t *Transcript) SampleField(label string, field *PrimeField) uint64 {
	return field.Reduce(t.SampleUint64(label))
}

// SampleIndex draws a position in [0, n).
func (t *Transcript) SampleIndex(label string, n int) int {
	return int(t.SampleUint64(label) % uint64(n))
}

// SampleBits draws a vector of n entries in {0, 1}.
func (t *Transcript) SampleBits(label string, n int) []uint64 {
	out := make([]uint64, n)
	fillBits(out, func() uint64 { return t.SampleUint64(label) })
	return out
}

func (t *Transcript) SampleUints(label string, values []uint64) {
	for i := range values {
		values[i] = t.SampleUint64(label)
	}
}

// Uint64 lets a transcript act as a randomness source.
func (t *Transcript) Uint64() uint64 {
	return t.SampleUint64("challenge")
}
