package cif

// A CIF represents a complete CIF file, which
// is itself a collection of named and unordered
// DataBlocks.
type CIF struct {
	DataBlocks map[string]DataBlock
}

func NewCIF() CIF {
	return CIF{
		DataBlocks: make(map[string]DataBlock),
	}
}

// A DataBock is the highest-level component of a CIF
// and contains DataItems, keyed by tag. A loop_'s tags
// each map to a []any of one element per row; a bare
// tag:value pair maps directly to its scalar value.
type DataBlock struct {
	Name      string
	DataItems map[string]any
}

func NewDataBlock(name string) DataBlock {
	return DataBlock{
		Name:      name,
		DataItems: make(map[string]any),
	}
}

// A SpecialValue is a non-numeric, non-string value.
type SpecialValue string

const (
	// Inapplicable indicates the value is not applicable.
	Inapplicable SpecialValue = "."
	// Unknown indicates the value is unknown.
	Unknown SpecialValue = "?"
)
