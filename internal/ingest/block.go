package ingest

import (
	"encoding/json"
	"fmt"
)

// Block is one classified unit of chapter content: a heading, a
// paragraph, or an image reference. The set of implementations is
// closed; consumers switch exhaustively over the three variants.
type Block interface {
	blockType() string
}

// Heading is a heading element's tokenized text.
type Heading struct {
	Words []string
}

// Paragraph is a paragraph element's tokenized text.
type Paragraph struct {
	Words []string
}

// Image is a reference to an image by its normalized relative path.
type Image struct {
	Src string
}

func (Heading) blockType() string   { return "heading" }
func (Paragraph) blockType() string { return "paragraph" }
func (Image) blockType() string     { return "image" }

// TokenCount returns the number of tokens a block contributes to the
// pagination threshold. Image blocks contribute nothing.
func TokenCount(b Block) int {
	switch v := b.(type) {
	case Heading:
		return len(v.Words)
	case Paragraph:
		return len(v.Words)
	case Image:
		return 0
	default:
		return 0
	}
}

type textBlockJSON struct {
	Type  string   `json:"type"`
	Words []string `json:"words"`
}

type imageBlockJSON struct {
	Type string `json:"type"`
	Src  string `json:"src"`
}

// MarshalJSON encodes the block as {"type":"heading","words":[...]}.
func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(textBlockJSON{Type: h.blockType(), Words: h.Words})
}

// MarshalJSON encodes the block as {"type":"paragraph","words":[...]}.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(textBlockJSON{Type: p.blockType(), Words: p.Words})
}

// MarshalJSON encodes the block as {"type":"image","src":"..."}.
func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageBlockJSON{Type: i.blockType(), Src: i.Src})
}

// UnmarshalBlock decodes a single type-tagged block object.
func UnmarshalBlock(data []byte) (Block, error) {
	var probe struct {
		Type  string   `json:"type"`
		Words []string `json:"words"`
		Src   string   `json:"src"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Type {
	case "heading":
		return Heading{Words: probe.Words}, nil
	case "paragraph":
		return Paragraph{Words: probe.Words}, nil
	case "image":
		return Image{Src: probe.Src}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}

// UnmarshalBlocks decodes a JSON array of type-tagged block objects.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(raw))
	for _, r := range raw {
		b, err := UnmarshalBlock(r)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
