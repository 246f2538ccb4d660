package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/analysis"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/model"
	"slices"
)

func (c *Controller) ProteinGroupIDs(ctx context.Context) ([]string, error) {
	mode := c.Mode()
	return fetch(ctx, c, mode, single(cache.KindProteinGroupIDs), nil, func(ctx context.Context) ([]string, error) {
		mapping, err := c.groupMapping(ctx, mode)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(mapping))
		for id := range mapping {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids, nil
	})
}

// ProteinGroupByID materializes a group from the inferred mapping. Only members supported by all
// of their peptides are exposed in Proteins; inconsistencies are logged and kept in Warnings.
func (c *Controller) ProteinGroupByID(ctx context.Context, id string) (*model.ProteinGroup, error) {
	mode := c.Mode()
	return settle(fetch(ctx, c, mode, perID(cache.KindProteinGroup, id), nil, func(ctx context.Context) (*model.ProteinGroup, error) {
		mapping, err := c.groupMapping(ctx, mode)
		if err != nil {
			return nil, err
		}
		members, ok := mapping[id]
		if !ok {
			return nil, nil
		}

		group, err := analysis.MaterializeGroup(id, members,
			func(proteinID string) ([]string, bool) {
				ids, err := settle(c.peptideIDs(ctx, mode, proteinID))
				return ids, err == nil && ids != nil
			},
			func(proteinID string) (*model.Protein, error) {
				return settle(c.protein(ctx, mode, proteinID))
			},
		)
		if err != nil {
			return nil, err
		}
		for _, w := range group.Warnings {
			c.logger.Warn().Str("group", id).Str("reason", w).Msg("inconsistent protein group mapping")
		}
		return group, nil
	}))
}

func (c *Controller) groupMapping(ctx context.Context, mode config.AccessMode) (model.ProteinGroupMapping, error) {
	return fetch(ctx, c, mode, single(cache.KindProteinGroupInference), nil, func(context.Context) (model.ProteinGroupMapping, error) {
		return model.ProteinGroupMapping{}, nil
	})
}
