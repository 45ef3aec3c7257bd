package garment

const (
	UnknownCategory = "clothing item"
	UnknownColor    = "unknown"
)

// Descriptor describes a detected garment. It is never partially filled:
// fields that could not be detected hold the Unknown* sentinels.
type Descriptor struct {
	Category string `json:"category" bson:"category"`
	Color    string `json:"color" bson:"color"`
}

// Unknown returns the descriptor used when detection output was unusable.
func Unknown() Descriptor {
	return Descriptor{Category: UnknownCategory, Color: UnknownColor}
}

// New builds a descriptor, substituting sentinels for empty values.
func New(category, color string) Descriptor {
	d := Descriptor{Category: category, Color: color}
	if d.Category == "" {
		d.Category = UnknownCategory
	}
	if d.Color == "" {
		d.Color = UnknownColor
	}

	return d
}

func (d Descriptor) IsUnknown() bool {
	return d.Category == UnknownCategory && d.Color == UnknownColor
}

// String renders the descriptor the way prompts refer to it, e.g. "red jacket".
func (d Descriptor) String() string {
	if d.Color == UnknownColor {
		return d.Category
	}

	return d.Color + " " + d.Category
}
