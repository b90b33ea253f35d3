package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
)

type Leaf interface {
	WriteTo(w io.Writer) (n int64, err error)
}

// Symbol is a single codeword entry used as a Merkle leaf.
type Symbol uint64

func (s Symbol) WriteTo(w io.Writer) (int64, error) {
	var buf [SymbolBytes]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s))
	n, err := w.Write(buf[:])
	return int64(n), err
}

type MerkleTree struct {
	Root         *Node
	merkleRoot   []byte
	Leafs        []*Node
	hashStrategy func() hash.Hash
}

type Node struct {
	Tree   *MerkleTree
	Parent *Node
	Left   *Node
	Right  *Node
	leaf   bool
	Hash   []byte
	C      Leaf
}

type MerklePath [][]byte

func (n *Node) isLeaf() bool {
	return n.leaf
}

func hashLeaf(h hash.Hash, leaf Leaf) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := leaf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write leaf content: %w", err)
	}
	h.Write(buf.Bytes())
	return h.Sum(nil), nil
}

func calculateNodeHash(node *Node) ([]byte, error) {
	if node.Tree == nil || node.Tree.hashStrategy == nil {
		return nil, errors.New("node is not associated with a tree or tree has no hash strategy")
	}
	h := node.Tree.hashStrategy()

	if node.isLeaf() {
		if node.C == nil {
			return nil, errors.New("leaf node has no content")
		}
		return hashLeaf(h, node.C)
	}

	if node.Left == nil || node.Right == nil {
		return nil, errors.New("internal node is missing children")
	}
	h.Write(node.Left.Hash)
	h.Write(node.Right.Hash)
	return h.Sum(nil), nil
}

// NewCodewordTree builds a SHA-256 Merkle tree whose leaves are the symbols
// of codeword.
func NewCodewordTree(codeword []uint64) (*MerkleTree, error) {
	leafs := make([]Leaf, len(codeword))
	for i, s := range codeword {
		leafs[i] = Symbol(s)
	}
	return NewTree(leafs)
}

func NewTree(leafs []Leaf) (*MerkleTree, error) {
	return NewTreeWithHashStrategy(leafs, sha256.New)
}

func NewTreeWithHashStrategy(leafs []Leaf, hashStrategy func() hash.Hash) (*MerkleTree, error) {
	if hashStrategy == nil {
		return nil, errors.New("hash strategy cannot be nil")
	}

	tree := &MerkleTree{
		hashStrategy: hashStrategy,
		Leafs:        make([]*Node, 0, len(leafs)),
	}

	if len(leafs) == 0 {
		return tree, nil
	}

	for _, l := range leafs {
		if l == nil {
			return nil, errors.New("leaf input cannot be nil")
		}
		node := &Node{
			Tree: tree,
			leaf: true,
			C:    l,
		}
		var err error
		if node.Hash, err = calculateNodeHash(node); err != nil {
			return nil, err
		}
		tree.Leafs = append(tree.Leafs, node)
	}

	level := tree.Leafs
	for len(level) > 1 {
		next := make([]*Node, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}

			parent := &Node{
				Tree:  tree,
				Left:  left,
				Right: right,
			}

			var err error
			if parent.Hash, err = calculateNodeHash(parent); err != nil {
				return nil, err
			}

			left.Parent = parent
			right.Parent = parent
			next = append(next, parent)
		}
		level = next
	}

	tree.Root = level[0]
	tree.merkleRoot = tree.Root.Hash

	return tree, nil
}

func (m *MerkleTree) MerkleRoot() []byte {
	if m == nil || m.merkleRoot == nil {
		return nil
	}
	return bytes.Clone(m.merkleRoot)
}

// GetMerklePath returns the sibling hashes from the leaf at index up to the
// root. An odd node at the end of a level is paired with itself, so its
// sibling hash is its own.
func (m *MerkleTree) GetMerklePath(index uint) (MerklePath, error) {
	if m == nil || m.Root == nil {
		return nil, errors.New("cannot get path from an empty tree")
	}
	if index >= uint(len(m.Leafs)) {
		return nil, fmt.Errorf("index %d out of bounds for %d leaves", index, len(m.Leafs))
	}

	var path MerklePath
	for node := m.Leafs[index]; node.Parent != nil; node = node.Parent {
		parent := node.Parent
		if parent.Left == node {
			path = append(path, parent.Right.Hash)
		} else {
			path = append(path, parent.Left.Hash)
		}
	}

	return path, nil
}

// VerifyMerklePath checks that leaf, stored at index, hashes up to root along
// path in a SHA-256 tree.
func VerifyMerklePath(leaf Leaf, path MerklePath, root []byte, index uint) (bool, error) {
	return VerifyMerklePathWithHashStrategy(leaf, path, root, index, sha256.New)
}

// VerifyMerklePathWithHashStrategy checks a path from a tree built by
// NewTreeWithHashStrategy with the same hashStrategy.
func VerifyMerklePathWithHashStrategy(leaf Leaf, path MerklePath, root []byte, index uint, hashStrategy func() hash.Hash) (bool, error) {
	if hashStrategy == nil {
		return false, errors.New("hash strategy cannot be nil")
	}
	if leaf == nil {
		return false, errors.New("leaf cannot be nil")
	}
	if root == nil {
		return false, errors.New("root hash cannot be nil")
	}

	h := hashStrategy()
	current, err := hashLeaf(h, leaf)
	if err != nil {
		return false, err
	}

	for _, sibling := range path {
		if sibling == nil {
			return false, errors.New("path contains a nil hash")
		}
		h.Reset()
		if index%2 == 0 {
			h.Write(current)
			h.Write(sibling)
		} else {
			h.Write(sibling)
			h.Write(current)
		}
		current = h.Sum(nil)
		index /= 2
	}

	return bytes.Equal(current, root), nil
}
