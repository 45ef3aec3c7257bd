package prompt

import (
	"strings"
	"testing"

	"github.com/franela/goblin"
	"github.com/thebartekbanach/tryon/pkg/garment"
)

func TestPromptBuilder(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("DetectionPrompt", func() {
		g.It("Should ask for category and color JSON fields", func() {
			p := DetectionPrompt()

			g.Assert(strings.Contains(p, `"category"`)).IsTrue()
			g.Assert(strings.Contains(p, `"color"`)).IsTrue()
		})

		g.It("Should be deterministic", func() {
			g.Assert(DetectionPrompt()).Equal(DetectionPrompt())
		})
	})

	g.Describe("UserDetectionPrompt", func() {
		g.It("Should mention detected product garment", func() {
			p := UserDetectionPrompt(garment.New("jacket", "red"))

			g.Assert(strings.Contains(p, "wearing a jacket in red color")).IsTrue()
			g.Assert(strings.Contains(p, `"category"`)).IsTrue()
		})

		g.It("Should accept sentinel descriptor", func() {
			p := UserDetectionPrompt(garment.Unknown())

			g.Assert(strings.Contains(p, garment.UnknownCategory)).IsTrue()
		})
	})

	g.Describe("CompositePrompt", func() {
		g.It("Should describe the garment transplant", func() {
			p := CompositePrompt(garment.New("shirt", "white"))

			g.Assert(strings.Contains(p, "Take the white shirt from the first image")).IsTrue()
			g.Assert(strings.Contains(p, "full-body")).IsTrue()
			g.Assert(strings.Contains(p, "lighting")).IsTrue()
		})
	})

	g.Describe("ReplacementPrompt", func() {
		g.It("Should name the garment being replaced", func() {
			p := ReplacementPrompt(garment.New("jacket", "black"), garment.New("hoodie", "grey"))

			g.Assert(strings.HasPrefix(p, CompositePrompt(garment.New("jacket", "black")))).IsTrue()
			g.Assert(strings.Contains(p, "replaces the grey hoodie")).IsTrue()
		})

		g.It("Should fall back to composite prompt when user garment is unknown", func() {
			product := garment.New("jacket", "black")

			g.Assert(ReplacementPrompt(product, garment.Unknown())).Equal(CompositePrompt(product))
		})
	})
}
