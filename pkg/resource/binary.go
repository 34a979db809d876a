package resource

import (
	"fmt"
	"io"
	"sort"
)

// Compiled binary trie dictionaries use 10-byte nodes in left-child /
// right-sibling layout: big-endian 2-byte char, 1-byte frequency, 3-byte
// first-child offset, 3-byte next-sibling offset, 1 padding byte. Offsets are
// byte positions from the start of the file; the root node sits at offset 0
// and carries no character of its own.
const (
	trieNodeSize  = 10
	trieMaxOffset = 0xFFFFFF
)

type trieNode struct {
	char    rune
	freq    uint32
	child   int
	sibling int
}

// ParseBinaryTrie decodes a compiled trie dictionary into word entries.
// Nodes with a nonzero frequency byte terminate a word. maxWords caps the
// result (0 means unlimited); the highest-frequency words are kept.
func ParseBinaryTrie(r io.Reader, maxWords int) ([]WordEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary dictionary: %w", err)
	}
	if len(raw) < trieNodeSize || len(raw)%trieNodeSize != 0 {
		return nil, fmt.Errorf("binary dictionary has invalid size %d", len(raw))
	}

	nodeCount := len(raw) / trieNodeSize
	nodes := make([]trieNode, nodeCount)
	for i := 0; i < nodeCount; i++ {
		off := i * trieNodeSize
		nodes[i] = trieNode{
			char:    rune(uint16(raw[off])<<8 | uint16(raw[off+1])),
			freq:    uint32(raw[off+2]),
			child:   readUint24(raw[off+3:]),
			sibling: readUint24(raw[off+6:]),
		}
	}

	// Every node belongs to exactly one parent and one sibling chain, so a
	// well-formed file visits each node once. A revisit means the offsets
	// form a cycle and the walk would never terminate.
	visited := make([]bool, nodeCount)

	var words []WordEntry
	var walk func(idx int, prefix []rune) error
	walk = func(idx int, prefix []rune) error {
		for idx != 0 {
			if idx%trieNodeSize != 0 || idx/trieNodeSize >= nodeCount {
				return fmt.Errorf("binary dictionary offset %d out of range", idx)
			}
			if visited[idx/trieNodeSize] {
				return fmt.Errorf("binary dictionary offset %d forms a cycle", idx)
			}
			visited[idx/trieNodeSize] = true
			node := nodes[idx/trieNodeSize]
			word := append(prefix, node.char)
			if node.freq > 0 {
				words = append(words, WordEntry{Text: string(word), Frequency: node.freq})
			}
			if node.child != 0 {
				if err := walk(node.child, word); err != nil {
					return err
				}
			}
			idx = node.sibling
		}
		return nil
	}
	if err := walk(nodes[0].child, nil); err != nil {
		return nil, err
	}

	if maxWords > 0 && len(words) > maxWords {
		sort.SliceStable(words, func(i, j int) bool {
			return words[i].Frequency > words[j].Frequency
		})
		words = words[:maxWords]
	}
	return words, nil
}

func readUint24(b []byte) int {
	return int(b[0])<<16 | int(b[1])<<8 | int(b[2])
}
