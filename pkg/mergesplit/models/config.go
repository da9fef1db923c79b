package models

// ProcessType names a document layout.
type ProcessType string

const (
	// SeaRailWithImage is the sea/rail layout that carries product images.
	SeaRailWithImage ProcessType = "sea-rail-with-image"
	// SeaRailNoImage is the sea/rail layout without images.
	SeaRailNoImage ProcessType = "sea-rail-no-image"
	// AirFreight is the air freight layout.
	AirFreight ProcessType = "air-freight"
)

// ProcessTypes lists every known process type in display order.
var ProcessTypes = []ProcessType{SeaRailWithImage, SeaRailNoImage, AirFreight}

// Valid reports whether t is a known process type.
func (t ProcessType) Valid() bool {
	for _, known := range ProcessTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProcessConfig selects the columns processed for a process type.
type ProcessConfig struct {
	// ProcessType is the layout this configuration belongs to.
	ProcessType ProcessType `json:"process_type" yaml:"process_type" validate:"required,oneof=sea-rail-with-image sea-rail-no-image air-freight"`
	// WeightColumn is the merged weight column (1-based). The column to its left holds quantities.
	WeightColumn int `json:"weight_column" yaml:"weight_column" validate:"gt=1,lte=16384,nefield=BoxColumn"`
	// BoxColumn is the merged box count column (1-based).
	BoxColumn int `json:"box_column" yaml:"box_column" validate:"gte=1,lte=16384"`
	// CopyImages is accepted for compatibility; images are never copied.
	CopyImages bool `json:"copy_images" yaml:"copy_images"`
}

// QuantityColumn returns the column used as the proportional basis for weights.
func (c ProcessConfig) QuantityColumn() int {
	return c.WeightColumn - 1
}

// DefaultConfig returns the built-in configuration for t.
func DefaultConfig(t ProcessType) (ProcessConfig, bool) {
	switch t {
	case SeaRailWithImage:
		return ProcessConfig{ProcessType: t, WeightColumn: 13, BoxColumn: 11, CopyImages: true}, true
	case SeaRailNoImage:
		return ProcessConfig{ProcessType: t, WeightColumn: 13, BoxColumn: 11, CopyImages: false}, true
	case AirFreight:
		return ProcessConfig{ProcessType: t, WeightColumn: 15, BoxColumn: 13, CopyImages: true}, true
	}
	return ProcessConfig{}, false
}
