package resumetypes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	types map[string]ResumeType
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{types: make(map[string]ResumeType)}
}

func (r *MemoryRepo) ListActive(ctx context.Context) ([]ResumeType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ResumeType
	for _, rt := range r.types {
		if rt.IsActive {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (ResumeType, error) {
	if err := ctx.Err(); err != nil {
		return ResumeType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.types[id]
	if !ok {
		return ResumeType{}, ErrNotFound
	}
	return rt, nil
}

func (r *MemoryRepo) GetActiveByName(ctx context.Context, name string) (ResumeType, error) {
	if err := ctx.Err(); err != nil {
		return ResumeType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rt := range r.types {
		if rt.Name == name && rt.IsActive {
			return rt, nil
		}
	}
	return ResumeType{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, rt ResumeType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.types {
		if existing.Name == rt.Name {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	if rt.CreatedAt.IsZero() {
		rt.CreatedAt = now
	}
	rt.UpdatedAt = now
	r.types[rt.ID] = rt
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, fields UpdateFields) (ResumeType, error) {
	if err := ctx.Err(); err != nil {
		return ResumeType{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.types[id]
	if !ok {
		return ResumeType{}, ErrNotFound
	}
	if fields.Name != nil && *fields.Name != rt.Name {
		for otherID, other := range r.types {
			if otherID != id && other.Name == *fields.Name {
				return ResumeType{}, ErrConflict
			}
		}
		rt.Name = *fields.Name
	}
	if fields.DisplayName != nil {
		rt.DisplayName = *fields.DisplayName
	}
	if fields.Link != nil {
		rt.Link = *fields.Link
	}
	if fields.Description != nil {
		rt.Description = *fields.Description
	}
	if fields.IsActive != nil {
		rt.IsActive = *fields.IsActive
	}
	rt.UpdatedAt = time.Now().UTC()
	r.types[id] = rt
	return rt, nil
}

func (r *MemoryRepo) Deactivate(ctx context.Context, id string) (ResumeType, error) {
	if err := ctx.Err(); err != nil {
		return ResumeType{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.types[id]
	if !ok {
		return ResumeType{}, ErrNotFound
	}
	rt.IsActive = false
	rt.UpdatedAt = time.Now().UTC()
	r.types[id] = rt
	return rt, nil
}
