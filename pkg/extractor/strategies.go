package extractor

import (
	"encoding/json"
	"regexp"
)

// Strategy yields candidate payloads found in a response, in preference order.
type Strategy struct {
	Name string
	Find func(raw []byte, candidates []json.RawMessage) []string
}

var dataFieldPattern = regexp.MustCompile(`"data":\s*"([^"]+)"`)

// StructuralScan matches every "data": "<value>" field in the raw response
// text and proposes the last one. Generated image fields have been observed to
// follow descriptive text fields; this is a heuristic, not a provider contract.
var StructuralScan = Strategy{
	Name: "structural-scan",
	Find: func(raw []byte, _ []json.RawMessage) []string {
		matches := dataFieldPattern.FindAllSubmatch(raw, -1)
		if len(matches) == 0 {
			return nil
		}

		return []string{string(matches[len(matches)-1][1])}
	},
}

// ContentParts walks candidates[0].content.parts. Parts of unexpected shape
// are skipped.
var ContentParts = Strategy{
	Name: "content-parts",
	Find: func(_ []byte, candidates []json.RawMessage) []string {
		candidate, ok := decodeFirstCandidate(candidates)
		if !ok {
			return nil
		}

		var found []string
		for _, part := range decodeParts(candidate.Content) {
			if inline := part.inlineData(); inline != nil && inline.Data != "" {
				found = append(found, inline.Data)
			}

			if part.Data != "" {
				found = append(found, part.Data)
			}
		}

		return found
	},
}

// CandidateData accepts candidates[0].data.
var CandidateData = Strategy{
	Name: "candidate-data",
	Find: func(_ []byte, candidates []json.RawMessage) []string {
		candidate, ok := decodeFirstCandidate(candidates)
		if ok && candidate.Data != "" {
			return []string{candidate.Data}
		}

		return nil
	},
}

var DefaultStrategies = []Strategy{StructuralScan, ContentParts, CandidateData}
