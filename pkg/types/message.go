// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// BlockKind enumerates the display block variants a Message may carry.
type BlockKind string

const (
	BlockHeader        BlockKind = "header"
	BlockSectionText   BlockKind = "section"
	BlockSectionFields BlockKind = "section-fields"
	BlockDivider       BlockKind = "divider"
)

// Block is one discrete, typed unit of a composed notification message.
// It is a closed tagged variant: construct values only through
// NewHeaderBlock, NewSectionBlock, NewFieldsBlock, and NewDividerBlock so
// that kind and payload always correspond.
type Block struct {
	Kind   BlockKind
	Text   string
	Fields []string
}

// NewHeaderBlock returns a header block with plain emoji-capable text.
func NewHeaderBlock(text string) Block {
	return Block{Kind: BlockHeader, Text: text}
}

// NewSectionBlock returns a section block carrying one markdown text body.
func NewSectionBlock(text string) Block {
	return Block{Kind: BlockSectionText, Text: text}
}

// NewFieldsBlock returns a section block carrying side-by-side markdown
// fields.
func NewFieldsBlock(fields ...string) Block {
	return Block{Kind: BlockSectionFields, Fields: fields}
}

// NewDividerBlock returns a divider block.
func NewDividerBlock() Block {
	return Block{Kind: BlockDivider}
}

// textObject is the Block Kit text composition object.
type textObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// MarshalJSON renders the block in the Slack Block Kit wire shape. The
// section-fields variant marshals as type "section" with a fields array.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BlockHeader:
		return json.Marshal(struct {
			Type string     `json:"type"`
			Text textObject `json:"text"`
		}{Type: "header", Text: textObject{Type: "plain_text", Text: b.Text, Emoji: true}})
	case BlockSectionText:
		return json.Marshal(struct {
			Type string     `json:"type"`
			Text textObject `json:"text"`
		}{Type: "section", Text: textObject{Type: "mrkdwn", Text: b.Text}})
	case BlockSectionFields:
		fields := make([]textObject, 0, len(b.Fields))
		for _, f := range b.Fields {
			fields = append(fields, textObject{Type: "mrkdwn", Text: f})
		}
		return json.Marshal(struct {
			Type   string       `json:"type"`
			Fields []textObject `json:"fields"`
		}{Type: "section", Fields: fields})
	default:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{Type: "divider"})
	}
}

// Message is the composed notification handed to the delivery collaborator.
// Text is the plain-text summary (and the whole payload for template
// renders); Blocks is empty for text-only messages.
type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}
