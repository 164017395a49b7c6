package view

import (
	"context"

	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
)

// BranchesView drives the Locations screen (superuser only).
type BranchesView struct {
	*machine
	client *upstream.Client

	branches []upstream.Branch
}

func NewBranchesView(client *upstream.Client) *BranchesView {
	return &BranchesView{machine: newMachine(), client: client}
}

func (v *BranchesView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	branches, err := v.client.ListBranches(loadCtx)
	v.finishLoad(gen, err, func() { v.branches = branches })
}

func (v *BranchesView) Branches() []upstream.Branch {
	var out []upstream.Branch
	v.snapshot(func() { out = v.branches })
	return out
}

func (v *BranchesView) Create(ctx context.Context, in upstream.BranchInput) error {
	if in.Name == "" || in.Location == "" {
		return apierror.Validation("branch name and location are required")
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.CreateBranch(ctx, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *BranchesView) Update(ctx context.Context, id uuid.UUID, in upstream.BranchInput) error {
	if in.Name == "" || in.Location == "" {
		return apierror.Validation("branch name and location are required")
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.UpdateBranch(ctx, id, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}
