package extractor

import "encoding/json"

// Response only pins down the candidates list. Everything below it is decoded
// lazily by the strategies, so an unexpected shape in one field does not hide
// a payload elsewhere.
type Response struct {
	Candidates []json.RawMessage `json:"candidates"`
}

type Candidate struct {
	Content json.RawMessage `json:"content"`
	Data    string          `json:"data"`
}

type Content struct {
	Parts []json.RawMessage `json:"parts"`
}

// Part accepts both snake_case and camelCase spellings of inline data, since
// the provider has shipped both.
type Part struct {
	Text            string      `json:"text"`
	InlineData      *InlineData `json:"inline_data"`
	InlineDataCamel *InlineData `json:"inlineData"`
	Data            string      `json:"data"`
}

type InlineData struct {
	MimeType      string `json:"mime_type"`
	MimeTypeCamel string `json:"mimeType"`
	Data          string `json:"data"`
}

func (p Part) inlineData() *InlineData {
	if p.InlineData != nil {
		return p.InlineData
	}

	return p.InlineDataCamel
}

func decodeFirstCandidate(candidates []json.RawMessage) (Candidate, bool) {
	var candidate Candidate
	if len(candidates) == 0 {
		return candidate, false
	}

	if err := json.Unmarshal(candidates[0], &candidate); err != nil {
		return candidate, false
	}

	return candidate, true
}

// decodeParts returns the parts of content that decode, skipping the rest.
func decodeParts(content json.RawMessage) []Part {
	var c Content
	if len(content) == 0 || json.Unmarshal(content, &c) != nil {
		return nil
	}

	parts := make([]Part, 0, len(c.Parts))
	for _, raw := range c.Parts {
		var part Part
		if err := json.Unmarshal(raw, &part); err != nil {
			continue
		}

		parts = append(parts, part)
	}

	return parts
}
