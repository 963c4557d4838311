/*
Package pdbio adapts github.com/TimothyStiles/basepair/io/pdbx/cif's generic
CIF parse tree into the structure.Structure the core pipeline consumes,
reading the mmCIF _atom_site loop the way the PDB's own mmCIF export does.

The core pipeline never imports this package directly — spec.md's data model
takes a parsed Structure as given, built by "a collaborator (pdbio, or any
other parser)". Only this package's own tests reach for it.
*/
package pdbio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/io/pdbx/cif"
	"github.com/TimothyStiles/basepair/structure"
)

// ConversionError reports a malformed or unsupported _atom_site loop.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("pdbio: %s", e.Reason)
}

// FromCIF converts a parsed CIF document's first data block into a
// structure.Structure, reading the _atom_site loop's coordinate rows and
// grouping them into residues and chains in first-appearance order.
//
// Atom and residue identity prefer the auth_* tags over the label_* tags,
// matching the PDB's own author-assigned numbering convention; label_* is
// used as a fallback for mmCIF files that omit the auth_* columns. Only the
// first model (rows whose pdbx_PDB_model_num equals the first row's, or all
// rows if that column is absent) is kept, since spec.md's geometry operates
// on a single conformation.
func FromCIF(c cif.CIF) (*structure.Structure, error) {
	block, err := soleDataBlock(c)
	if err != nil {
		return nil, err
	}

	cols, nRows, err := atomSiteColumns(block)
	if err != nil {
		return nil, err
	}

	s := structure.New()
	chainIndex := make(map[string]int)
	residueIndex := make(map[residueKey]int)

	firstModel := ""
	if modelCol, ok := cols["model"]; ok {
		firstModel, _ = stringValue(modelCol[0])
	}

	for row := 0; row < nRows; row++ {
		if modelCol, ok := cols["model"]; ok {
			if m, _ := stringValue(modelCol[row]); m != firstModel {
				continue
			}
		}

		chainID, ok := stringValue(firstNonEmpty(cols, row, "auth_asym_id", "label_asym_id"))
		if !ok {
			return nil, &ConversionError{Reason: fmt.Sprintf("row %d: missing chain id", row)}
		}
		seqStr, ok := stringValue(firstNonEmpty(cols, row, "auth_seq_id", "label_seq_id"))
		if !ok {
			return nil, &ConversionError{Reason: fmt.Sprintf("row %d: missing sequence number", row)}
		}
		seqNum, ok := intValue(firstNonEmpty(cols, row, "auth_seq_id", "label_seq_id"))
		if !ok {
			return nil, &ConversionError{Reason: fmt.Sprintf("row %d: sequence number %q is not an integer", row, seqStr)}
		}
		insCode := byte(' ')
		if raw, ok := cols["ins_code"]; ok {
			if v, ok := stringValue(raw[row]); ok && len(v) > 0 {
				insCode = v[0]
			}
		}
		compName, ok := stringValue(firstNonEmpty(cols, row, "auth_comp_id", "label_comp_id"))
		if !ok {
			return nil, &ConversionError{Reason: fmt.Sprintf("row %d: missing residue name", row)}
		}

		key := residueKey{chainID: chainID, seqNum: seqNum, insCode: insCode}
		rIdx, ok := residueIndex[key]
		if !ok {
			rIdx = len(s.Residues)
			residueIndex[key] = rIdx
			s.Residues = append(s.Residues, structure.Residue{
				Name:    compName,
				ChainID: chainID,
				SeqNum:  seqNum,
				InsCode: insCode,
			})

			cIdx, ok := chainIndex[chainID]
			if !ok {
				cIdx = len(s.Chains)
				chainIndex[chainID] = cIdx
				s.Chains = append(s.Chains, structure.Chain{ID: chainID})
			}
			s.Chains[cIdx].ResidueIndices = append(s.Chains[cIdx].ResidueIndices, rIdx)
		}

		atom, err := buildAtom(cols, row, rIdx)
		if err != nil {
			return nil, err
		}
		s.Residues[rIdx].Atoms = append(s.Residues[rIdx].Atoms, atom)
	}

	return s, nil
}

type residueKey struct {
	chainID string
	seqNum  int
	insCode byte
}

func buildAtom(cols map[string][]any, row, residueIdx int) (structure.Atom, error) {
	name, ok := stringValue(firstNonEmpty(cols, row, "auth_atom_id", "label_atom_id"))
	if !ok {
		return structure.Atom{}, &ConversionError{Reason: fmt.Sprintf("row %d: missing atom name", row)}
	}
	x, okX := floatValue(cols["x"][row])
	y, okY := floatValue(cols["y"][row])
	z, okZ := floatValue(cols["z"][row])
	if !okX || !okY || !okZ {
		return structure.Atom{}, &ConversionError{Reason: fmt.Sprintf("row %d: non-numeric coordinate", row)}
	}

	atom := structure.Atom{
		Name:         name,
		ResidueIndex: residueIdx,
		Coord:        geometry.Vector3{X: x, Y: y, Z: z},
		Kind:         structure.RecordStandard,
	}
	if elemCol, ok := cols["element"]; ok {
		if v, ok := stringValue(elemCol[row]); ok {
			atom.Element = v
		}
	} else {
		atom.Element = elementFromAtomName(name)
	}
	if groupCol, ok := cols["group"]; ok {
		if v, ok := stringValue(groupCol[row]); ok && strings.EqualFold(v, "HETATM") {
			atom.Kind = structure.RecordHetero
		}
	}
	if altCol, ok := cols["alt_id"]; ok {
		if v, ok := stringValue(altCol[row]); ok && len(v) > 0 {
			atom.AltLoc = v[0]
		}
	}
	if occCol, ok := cols["occupancy"]; ok {
		if v, ok := floatValue(occCol[row]); ok {
			atom.Occupancy = v
		}
	}
	if bCol, ok := cols["b_factor"]; ok {
		if v, ok := floatValue(bCol[row]); ok {
			atom.BFactor = v
		}
	}
	return atom, nil
}

// elementFromAtomName guesses the element symbol from an mmCIF atom name
// when the loop carries no explicit type_symbol column: the first
// non-digit character, upper-cased.
func elementFromAtomName(name string) string {
	for _, r := range name {
		if r < '0' || r > '9' {
			return strings.ToUpper(string(r))
		}
	}
	return ""
}

// atomSiteTagSets maps this package's internal column keys to the mmCIF
// tags that may carry them, preferred tag first.
var atomSiteTagSets = map[string][]string{
	"group":         {"_atom_site.group_PDB"},
	"auth_atom_id":  {"_atom_site.auth_atom_id"},
	"label_atom_id": {"_atom_site.label_atom_id"},
	"element":       {"_atom_site.type_symbol"},
	"auth_comp_id":  {"_atom_site.auth_comp_id"},
	"label_comp_id": {"_atom_site.label_comp_id"},
	"auth_asym_id":  {"_atom_site.auth_asym_id"},
	"label_asym_id": {"_atom_site.label_asym_id"},
	"auth_seq_id":   {"_atom_site.auth_seq_id"},
	"label_seq_id":  {"_atom_site.label_seq_id"},
	"ins_code":      {"_atom_site.pdbx_PDB_ins_code"},
	"alt_id":        {"_atom_site.label_alt_id"},
	"x":             {"_atom_site.Cartn_x"},
	"y":             {"_atom_site.Cartn_y"},
	"z":             {"_atom_site.Cartn_z"},
	"occupancy":     {"_atom_site.occupancy"},
	"b_factor":      {"_atom_site.B_iso_or_equiv"},
	"model":         {"_atom_site.pdbx_PDB_model_num"},
}

// atomSiteColumns resolves the _atom_site loop's columns into this
// package's internal keys and returns the shared row count.
func atomSiteColumns(block cif.DataBlock) (map[string][]any, int, error) {
	cols := make(map[string][]any)
	nRows := -1
	for key, tags := range atomSiteTagSets {
		for _, tag := range tags {
			raw, ok := block.DataItems[tag]
			if !ok {
				continue
			}
			values, ok := raw.([]any)
			if !ok {
				return nil, 0, &ConversionError{Reason: fmt.Sprintf("tag %q is not a loop column", tag)}
			}
			cols[key] = values
			if nRows == -1 {
				nRows = len(values)
			} else if len(values) != nRows {
				return nil, 0, &ConversionError{Reason: fmt.Sprintf("tag %q has %d rows, expected %d", tag, len(values), nRows)}
			}
			break
		}
	}
	if _, ok := cols["x"]; !ok {
		return nil, 0, &ConversionError{Reason: "no _atom_site.Cartn_x column found"}
	}
	return cols, nRows, nil
}

func firstNonEmpty(cols map[string][]any, row int, keys ...string) any {
	for _, k := range keys {
		if col, ok := cols[k]; ok {
			if row < len(col) {
				if v, ok := stringValue(col[row]); ok && v != "" {
					return col[row]
				}
			}
		}
	}
	return nil
}

func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return fmt.Sprintf("%d", t), true
	case uint64:
		return fmt.Sprintf("%d", t), true
	case float64:
		return fmt.Sprintf("%v", t), true
	default:
		return "", false
	}
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case string:
		var n int
		if _, err := fmt.Sscanf(t, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}

func soleDataBlock(c cif.CIF) (cif.DataBlock, error) {
	if len(c.DataBlocks) == 0 {
		return cif.DataBlock{}, &ConversionError{Reason: "CIF document has no data blocks"}
	}
	names := make([]string, 0, len(c.DataBlocks))
	for name := range c.DataBlocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return c.DataBlocks[names[0]], nil
}
