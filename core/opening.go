package core

import "fmt"

// Commitment binds a prover to a codeword through the root of a Merkle tree
// over its symbols.
type Commitment struct {
	Codeword []uint64
	Tree     *MerkleTree
}

// Opening reveals one codeword symbol together with its authentication path.
type Opening struct {
	Index  uint
	Symbol uint64
	Path   MerklePath
}

// Commit builds the Merkle commitment of codeword.
func Commit(codeword []uint64) (*Commitment, error) {
	if len(codeword) == 0 {
		return nil, ErrEmptyCodeword
	}

	tree, err := NewCodewordTree(codeword)
	if err != nil {
		return nil, fmt.Errorf("commit codeword: %w", err)
	}

	return &Commitment{
		Codeword: codeword,
		Tree:     tree,
	}, nil
}

// Root returns the Merkle root of the committed codeword.
func (c *Commitment) Root() []byte {
	return c.Tree.MerkleRoot()
}

// queryPositions derives the spot-check positions from the transcript once
// the root and the codeword length have been absorbed.
func queryPositions(transcript *Transcript, root []byte, length, queries int) ([]uint, error) {
	if queries < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQueries, queries)
	}

	transcript.AppendBytes("root", root)
	transcript.AppendField("length", uint64(length))

	positions := make([]uint, queries)
	for i := range positions {
		positions[i] = uint(transcript.SampleIndex("query", length))
	}
	return positions, nil
}

// Open answers queries spot checks at positions drawn from transcript.
func (c *Commitment) Open(transcript *Transcript, queries int) ([]Opening, error) {
	positions, err := queryPositions(transcript, c.Root(), len(c.Codeword), queries)
	if err != nil {
		return nil, err
	}

	openings := make([]Opening, len(positions))
	for i, idx := range positions {
		path, err := c.Tree.GetMerklePath(idx)
		if err != nil {
			return nil, err
		}
		openings[i] = Opening{
			Index:  idx,
			Symbol: c.Codeword[idx],
			Path:   path,
		}
	}

	return openings, nil
}

// VerifyOpenings checks openings against the committed root: the positions
// must be the ones the transcript yields, every path must authenticate its
// symbol and every symbol must equal eval at its position. The transcript
// must be in the same state as the prover's was when it called Open.
func VerifyOpenings(root []byte, length int, openings []Opening, transcript *Transcript, queries int, eval func(x uint64) uint64) error {
	if length <= 0 {
		return ErrEmptyCodeword
	}

	positions, err := queryPositions(transcript, root, length, queries)
	if err != nil {
		return err
	}
	if len(openings) != len(positions) {
		return fmt.Errorf("%w: got %d openings, want %d", ErrQueryMismatch, len(openings), len(positions))
	}

	for i, o := range openings {
		if o.Index != positions[i] {
			return fmt.Errorf("%w: opening %d is at %d, want %d", ErrQueryMismatch, i, o.Index, positions[i])
		}

		ok, err := VerifyMerklePath(Symbol(o.Symbol), o.Path, root, o.Index)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOpening, err)
		}
		if !ok {
			return fmt.Errorf("%w: path for position %d does not match root", ErrInvalidOpening, o.Index)
		}

		if want := eval(uint64(o.Index)); o.Symbol != want {
			return fmt.Errorf("%w: symbol at %d is %d, polynomial gives %d", ErrInvalidOpening, o.Index, o.Symbol, want)
		}
	}

	return nil
}
