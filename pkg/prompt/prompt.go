package prompt

import (
	"strings"

	"github.com/thebartekbanach/tryon/pkg/garment"
)

const outputShape = `{
  "category": "<<ADD>>",
  "color": "<<ADD>>"
}`

var detectionPrompt = strings.Join([]string{
	`Analyze the provided image and find the main piece of clothing in it. The user took this photo to see how they would look wearing that piece of clothing.`,
	``,
	`Describe that piece of clothing like this and answer with the JSON object only:`,
	outputShape,
	``,
	`Examples:`,
	`{"category": "shirt", "color": "white"}`,
	`{"category": "jacket", "color": "red"}`,
	`{"category": "shoes", "color": "blue"}`,
}, "\n")

// DetectionPrompt asks for the category and color of the primary garment of an image.
func DetectionPrompt() string {
	return detectionPrompt
}

// UserDetectionPrompt asks which garment worn by the pictured person corresponds
// to the already detected product garment.
func UserDetectionPrompt(productGarment garment.Descriptor) string {
	return strings.Join([]string{
		`I want to show how this person looks wearing a ` + productGarment.Category + ` in ` + productGarment.Color + ` color.`,
		``,
		`Analyze the person in the photo and identify which piece of clothing should be replaced to make this try-on realistic. Return the category and color of the clothing item that would make sense to replace.`,
		``,
		`For example:`,
		`- If trying on a jacket, identify the person's current jacket or outerwear`,
		`- If trying on a shirt, identify the person's current shirt or top`,
		`- If trying on shoes, identify the person's current footwear`,
		``,
		`Describe the clothing to replace like this and answer with the JSON object only:`,
		outputShape,
		``,
		`Examples:`,
		`{"category": "shirt", "color": "blue"}`,
		`{"category": "jacket", "color": "black"}`,
		`{"category": "shoes", "color": "white"}`,
	}, "\n")
}

// CompositePrompt describes the try-on image: the garment from the first image
// worn by the person from the second one.
func CompositePrompt(productGarment garment.Descriptor) string {
	return `Create a professional e-commerce fashion photo. ` +
		`Take the ` + productGarment.String() + ` from the first image and let the person from the second image wear it. ` +
		`Generate a realistic, full-body shot of the person wearing the ` + productGarment.Category + `, ` +
		`with the lighting and shadows adjusted to match the environment. ` +
		`Ensure the clothing fits naturally on the person's body shape and the image looks professional and photorealistic.`
}

// ReplacementPrompt extends CompositePrompt with the garment the person
// currently wears, when it is known.
func ReplacementPrompt(productGarment, userGarment garment.Descriptor) string {
	if userGarment.IsUnknown() {
		return CompositePrompt(productGarment)
	}

	return CompositePrompt(productGarment) +
		` The ` + productGarment.String() + ` replaces the ` + userGarment.String() + ` the person is currently wearing; ` +
		`keep the same person in the same environment and lighting.`
}
