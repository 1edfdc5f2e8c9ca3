package diff

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// BlockKind classifies one aligned region of the two texts.
type BlockKind string

const (
	BlockUnchanged    BlockKind = "unchanged"
	BlockInsertion    BlockKind = "insertion"
	BlockDeletion     BlockKind = "deletion"
	BlockModification BlockKind = "modification" // contiguous replace of old tokens by new
)

// Block is one region of the token-level alignment.
type Block struct {
	Kind      BlockKind
	OldTokens []string
	NewTokens []string
}

// Metrics tallies token counts across the alignment.
type Metrics struct {
	Added     int
	Removed   int
	Unchanged int
}

// Report is the full result of comparing two clause texts.
type Report struct {
	Blocks  []Block
	Metrics Metrics

	// Summary is a one-line human-readable classification of the change.
	Summary string
}

// Summary strings. These surface directly to end users, so they are fixed
// rather than templated.
const (
	summaryNoChange = "No significant textual changes."
	summaryAdded    = "New requirements or benefits added."
	summaryRemoved  = "Some provisions were removed."
	summaryModified = "Existing clauses modified."
)

// Generate computes a word-level alignment between two clause texts and
// classifies the change. Tokenization is whitespace/word-level: character
// diffs are too noisy for legal wording and line diffs too coarse for
// single-sentence clauses.
func Generate(oldText, newText string) *Report {
	oldTokens := strings.Fields(oldText)
	newTokens := strings.Fields(newText)

	blocks := align(oldTokens, newTokens)

	var m Metrics
	for _, b := range blocks {
		switch b.Kind {
		case BlockUnchanged:
			m.Unchanged += len(b.OldTokens)
		case BlockInsertion:
			m.Added += len(b.NewTokens)
		case BlockDeletion:
			m.Removed += len(b.OldTokens)
		case BlockModification:
			m.Added += len(b.NewTokens)
			m.Removed += len(b.OldTokens)
		}
	}

	return &Report{
		Blocks:  blocks,
		Metrics: m,
		Summary: summarize(blocks, m),
	}
}

// align runs the diff over word sequences. Words are transiently encoded one
// per line so the library's line-mode alignment operates on whole tokens.
func align(oldTokens, newTokens []string) []Block {
	dmp := diffmatchpatch.New()

	oldEncoded := strings.Join(oldTokens, "\n")
	newEncoded := strings.Join(newTokens, "\n")
	if len(oldTokens) > 0 {
		oldEncoded += "\n"
	}
	if len(newTokens) > 0 {
		newEncoded += "\n"
	}

	c1, c2, wordIndex := dmp.DiffLinesToChars(oldEncoded, newEncoded)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), wordIndex)

	// Fold the opcode stream into blocks, pairing each deletion with an
	// immediately following insertion as a modification.
	var blocks []Block
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		tokens := strings.Fields(d.Text)
		if len(tokens) == 0 {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			blocks = append(blocks, Block{Kind: BlockUnchanged, OldTokens: tokens, NewTokens: tokens})

		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				inserted := strings.Fields(diffs[i+1].Text)
				if len(inserted) > 0 {
					blocks = append(blocks, Block{Kind: BlockModification, OldTokens: tokens, NewTokens: inserted})
					i++
					continue
				}
			}
			blocks = append(blocks, Block{Kind: BlockDeletion, OldTokens: tokens})

		case diffmatchpatch.DiffInsert:
			blocks = append(blocks, Block{Kind: BlockInsertion, NewTokens: tokens})
		}
	}

	return blocks
}

// summarize classifies the aligned blocks into a one-line summary.
func summarize(blocks []Block, m Metrics) string {
	switch {
	case m.Added == 0 && m.Removed == 0:
		return summaryNoChange
	case m.Added > 0 && m.Removed == 0:
		return summaryAdded
	case m.Removed > 0 && m.Added == 0:
		return summaryRemoved
	}

	// Both sides changed: look for a numeric direction in the first
	// modification block with parseable numbers on both sides.
	for _, b := range blocks {
		if b.Kind != BlockModification {
			continue
		}
		oldNum, oldOK := firstNumber(b.OldTokens)
		newNum, newOK := firstNumber(b.NewTokens)
		if !oldOK || !newOK {
			continue
		}
		if newNum > oldNum {
			return "Value increased from " + formatNumber(oldNum) + " to " + formatNumber(newNum) + "."
		}
		if newNum < oldNum {
			return "Value decreased from " + formatNumber(oldNum) + " to " + formatNumber(newNum) + "."
		}
	}

	return summaryModified
}

// firstNumber returns the first token that parses as a number, ignoring
// surrounding punctuation ("Rs.6000," parses as 6000). A token that already
// parses as-is is taken verbatim, so a leading-decimal value like ".5" keeps
// its magnitude.
func firstNumber(tokens []string) (float64, bool) {
	for _, tok := range tokens {
		cleaned := strings.ReplaceAll(tok, ",", "")
		if cleaned == "" {
			continue
		}
		if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return n, true
		}

		cleaned = strings.Trim(cleaned, ".;:()%₹$")
		cleaned = strings.TrimPrefix(cleaned, "Rs")
		cleaned = strings.TrimPrefix(cleaned, ".")
		if cleaned == "" {
			continue
		}
		if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// formatNumber renders a number without a trailing ".0" for whole values.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
