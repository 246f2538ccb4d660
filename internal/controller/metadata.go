package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/model"
)

// Metadata singletons are written by the eager pass; a miss has nothing further to read.

func (c *Controller) ExperimentMetadata(ctx context.Context) (*model.ExperimentMetadata, error) {
	return fetch(ctx, c, c.Mode(), single(cache.KindExperimentMetadata), nil, func(context.Context) (*model.ExperimentMetadata, error) {
		return nil, nil
	})
}

func (c *Controller) IdentificationMetadata(ctx context.Context) (*model.IdentificationMetadata, error) {
	return fetch(ctx, c, c.Mode(), single(cache.KindIdentificationMetadata), nil, func(context.Context) (*model.IdentificationMetadata, error) {
		return nil, nil
	})
}

func (c *Controller) MzGraphMetadata(ctx context.Context) (*model.MzGraphMetadata, error) {
	return fetch(ctx, c, c.Mode(), single(cache.KindMzGraphMetadata), nil, func(context.Context) (*model.MzGraphMetadata, error) {
		return nil, nil
	})
}
