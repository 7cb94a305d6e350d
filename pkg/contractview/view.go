// Package contractview mediates between a displayed contract and the
// backend's authoritative copy: concurrent load with partial tolerance,
// optimistic status transitions with exact rollback, and pure local
// filtering of already-fetched lists.
package contractview

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

// FilterAll is the status filter sentinel that passes every status.
const FilterAll = "all"

// API is the slice of the ContractPro client this view-model consumes.
type API interface {
	GetContract(ctx context.Context, id int) (*contractpro.Contract, error)
	ContractActivities(ctx context.Context, id int) ([]contractpro.ActivityRecord, error)
	UpdateContractStatus(ctx context.Context, id int, status contractpro.Status) (*contractpro.StatusChange, error)
	DeleteContract(ctx context.Context, id int) error
}

var _ API = (*contractpro.Client)(nil)

// ViewModel holds one contract and its activity trail for display.
// All methods honor context cancellation, so dismantling the owning view
// cancels in-flight requests instead of letting late results land on
// disposed state.
type ViewModel struct {
	api API

	mu         sync.Mutex
	id         int
	contract   *contractpro.Contract
	activities []contractpro.ActivityRecord
}

func New(api API) *ViewModel {
	return &ViewModel{api: api}
}

// Load fetches the contract and its activities concurrently. The
// activity read is non-critical: its failure degrades to an empty trail
// rather than failing the load. A failed contract read fails the whole
// load (wrapping ErrNotFound when the backend hid or lacks the record).
func (vm *ViewModel) Load(ctx context.Context, id int) error {
	var (
		contract   *contractpro.Contract
		activities []contractpro.ActivityRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := vm.api.GetContract(gctx, id)
		if err != nil {
			return err
		}
		contract = c
		return nil
	})
	g.Go(func() error {
		// Partial tolerance: swallow the error, keep the contract.
		acts, err := vm.api.ContractActivities(gctx, id)
		if err != nil {
			return nil
		}
		activities = acts
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load contract %d: %w", id, err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.id = id
	vm.contract = contract
	vm.activities = activities
	return nil
}

// Contract returns a copy of the held contract, or nil before Load.
func (vm *ViewModel) Contract() *contractpro.Contract {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.contract == nil {
		return nil
	}
	c := *vm.contract
	return &c
}

// Activities returns a copy of the held activity trail, newest first.
func (vm *ViewModel) Activities() []contractpro.ActivityRecord {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]contractpro.ActivityRecord, len(vm.activities))
	copy(out, vm.activities)
	return out
}

// RequestTransition asks the backend to move the contract to newStatus.
// The local status is updated tentatively and restored to the exact prior
// value if the backend rejects the change. On success the activity trail
// is simply re-read; a failed re-read leaves the previous trail in place
// (it is a non-critical read, same as in Load). No automatic retries.
func (vm *ViewModel) RequestTransition(ctx context.Context, newStatus contractpro.Status) error {
	vm.mu.Lock()
	if vm.contract == nil {
		vm.mu.Unlock()
		return fmt.Errorf("no contract loaded")
	}
	id := vm.id
	prev := vm.contract.Status
	vm.contract.Status = newStatus
	vm.mu.Unlock()

	if _, err := vm.api.UpdateContractStatus(ctx, id, newStatus); err != nil {
		vm.mu.Lock()
		if vm.contract != nil && vm.id == id {
			vm.contract.Status = prev
		}
		vm.mu.Unlock()
		return err
	}

	if acts, err := vm.api.ContractActivities(ctx, id); err == nil {
		vm.mu.Lock()
		if vm.id == id {
			vm.activities = acts
		}
		vm.mu.Unlock()
	}
	return nil
}

// Delete removes the loaded contract on the backend. The local copy is
// deliberately left alone: the caller re-navigates or re-fetches after a
// confirmed success.
func (vm *ViewModel) Delete(ctx context.Context) error {
	vm.mu.Lock()
	if vm.contract == nil {
		vm.mu.Unlock()
		return fmt.Errorf("no contract loaded")
	}
	id := vm.id
	vm.mu.Unlock()
	return vm.api.DeleteContract(ctx, id)
}

// Filtered returns the subsequence of contracts whose title, contract
// number or vendor name contains query case-insensitively AND whose
// status equals status (FilterAll passes every status). Pure and
// synchronous; input order is preserved; an empty query matches all.
func Filtered(contracts []contractpro.Contract, query, status string) []contractpro.Contract {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []contractpro.Contract
	for _, c := range contracts {
		if status != FilterAll && string(c.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.ContractNumber), q) &&
			!strings.Contains(strings.ToLower(c.VendorName), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}
