package analysis

import (
	"fmt"
	"github.com/Borislavv/go-ash-msdata/model"
	"slices"
)

// ProteinLookup resolves a protein by id. A nil protein with a nil error means it is unavailable.
type ProteinLookup func(id string) (*model.Protein, error)

// PeptideLookup returns the peptide ids a protein owns. ok is false for unknown proteins.
type PeptideLookup func(proteinID string) (peptideIDs []string, ok bool)

// MaterializeGroup builds a protein group from its flat member map. Only members mapped to a nil
// peptide list are exposed; filtered members stay in Members. Filtered lists naming peptides the
// protein does not own are reported as warnings and do not stop the rest of the group.
func MaterializeGroup(id string, members map[string][]string, peptidesOf PeptideLookup, proteinOf ProteinLookup) (*model.ProteinGroup, error) {
	group := &model.ProteinGroup{
		ID:       id,
		Proteins: make([]*model.Protein, 0),
		Members:  make(map[string][]string, len(members)),
	}

	ids := make([]string, 0, len(members))
	for proteinID := range members {
		ids = append(ids, proteinID)
	}
	slices.Sort(ids)

	for _, proteinID := range ids {
		filtered := members[proteinID]
		group.Members[proteinID] = filtered

		if filtered != nil {
			group.Warnings = append(group.Warnings, checkFiltered(proteinID, filtered, peptidesOf)...)
			continue
		}

		protein, err := proteinOf(proteinID)
		if err != nil {
			return nil, fmt.Errorf("group %s protein %s: %w", id, proteinID, err)
		}
		if protein == nil {
			group.Warnings = append(group.Warnings, fmt.Sprintf("protein %s of group %s is unavailable", proteinID, id))
			continue
		}
		group.Proteins = append(group.Proteins, protein)
	}
	return group, nil
}

func checkFiltered(proteinID string, filtered []string, peptidesOf PeptideLookup) []string {
	owned, ok := peptidesOf(proteinID)
	if !ok {
		return []string{fmt.Sprintf("protein %s has no known peptides", proteinID)}
	}

	var warnings []string
	for _, pep := range filtered {
		if !slices.Contains(owned, pep) {
			warnings = append(warnings, fmt.Sprintf("peptide %s is not owned by protein %s", pep, proteinID))
		}
	}
	return warnings
}
