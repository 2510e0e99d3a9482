package output

import (
	"unicode/utf8"

	"github.com/lexalang/lexa-go/pkg/api"
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Build reconstructs the typed result tree from a pipeline response. The
// block with origin step 0 becomes the root and holds the input text; every
// other block must reference the 1-based index of a generator step, and its
// parent is the block of the closest preceding generator (or the root). The
// skills that ran between two generators have their labels attached to the
// node those skills saw.
func Build(steps []nlptypes.Skill, resp *api.Response) (*Output, error) {
	if resp == nil || len(resp.Blocks) == 0 {
		return nil, lexaerr.MalformedResponsef("response contains no blocks")
	}

	// 1-based indices of the generator steps, in pipeline order. Block
	// origin references are resolved against this chain.
	var gens []int
	for i, step := range steps {
		if step.IsGenerator() {
			gens = append(gens, i+1)
		}
	}

	var root *api.Block
	blockForStep := map[int]*api.Block{}
	for i := range resp.Blocks {
		block := &resp.Blocks[i]
		if block.OriginStepID == 0 {
			if root != nil {
				return nil, lexaerr.MalformedResponsef("response contains more than one input block")
			}
			root = block
			continue
		}
		if block.OriginStepID < 0 || block.OriginStepID > len(steps) {
			return nil, lexaerr.MalformedResponsef("block %q references unknown step %d", block.ID, block.OriginStepID)
		}
		step := steps[block.OriginStepID-1]
		if !step.IsGenerator() {
			return nil, lexaerr.MalformedResponsef("block %q claims origin step %d (%s), which generates no text", block.ID, block.OriginStepID, step.APIName)
		}
		if block.OriginStepName != "" && block.OriginStepName != step.APIName {
			return nil, lexaerr.MalformedResponsef("block %q names origin step %q, but step %d is %q", block.ID, block.OriginStepName, block.OriginStepID, step.APIName)
		}
		if _, dup := blockForStep[block.OriginStepID]; dup {
			return nil, lexaerr.MalformedResponsef("step %d produced more than one block", block.OriginStepID)
		}
		blockForStep[block.OriginStepID] = block
	}
	if root == nil {
		return nil, lexaerr.MalformedResponsef("response contains no input block")
	}

	// Generated blocks must form a prefix of the generator chain: a block
	// whose preceding generator produced nothing has no parent to hang from.
	depth := 0
	for depth < len(gens) {
		if _, ok := blockForStep[gens[depth]]; !ok {
			break
		}
		depth++
	}
	for d := depth; d < len(gens); d++ {
		if block, ok := blockForStep[gens[d]]; ok {
			return nil, lexaerr.MalformedResponsef("block %q has no parent: step %d produced no block", block.ID, gens[d-1])
		}
	}

	rootText := resp.InputText
	if rootText == "" {
		rootText = root.Text
	}

	node := New(rootText)
	out := node
	block := root
	segStart := 0
	for d := 0; ; d++ {
		segEnd := len(steps)
		if d < len(gens) {
			segEnd = gens[d] - 1
		}
		for _, step := range steps[segStart:segEnd] {
			if step.IsGenerator() || step.LabelType == "" {
				continue
			}
			labels, err := matchLabels(step, block, node.Text())
			if err != nil {
				return nil, err
			}
			node.AddLabels(step, labels)
		}
		if d >= depth {
			break
		}

		gen := steps[gens[d]-1]
		childBlock := blockForStep[gens[d]]
		child := New(childBlock.Text)
		// The generator's own labels (summary origins, anonymized spans)
		// point into the generated text, so they live on the child node.
		if gen.LabelType != "" {
			view := gen
			view.Kind = nlptypes.Analyzer
			labels, err := matchLabels(view, childBlock, child.Text())
			if err != nil {
				return nil, err
			}
			child.AddLabels(view, labels)
		}
		node.AddChild(gen, child)
		node, block = child, childBlock
		segStart = gens[d]
	}

	return out, nil
}

// matchLabels filters a block's labels down to one skill's label type and
// validates their spans against the node text. Offsets are rune counts.
func matchLabels(step nlptypes.Skill, block *api.Block, text string) (nlptypes.Labels, error) {
	length := utf8.RuneCountInString(text)
	labels := nlptypes.Labels{}
	for _, label := range block.Labels {
		if label.Type != step.LabelType {
			continue
		}
		for _, span := range label.Spans {
			if span.Start < 0 || span.Start > span.End || span.End > length {
				return nil, lexaerr.MalformedResponsef("label %q in block %q has span [%d, %d] outside text of length %d", label.Name, block.ID, span.Start, span.End, length)
			}
		}
		if label.Skill == "" {
			label.Skill = step.APIName
		}
		labels = append(labels, label)
	}
	return labels, nil
}
