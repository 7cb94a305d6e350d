package contractview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

type fakeAPI struct {
	contract      *contractpro.Contract
	contractErr   error
	activities    []contractpro.ActivityRecord
	activitiesErr error
	statusErr     error
	deleteErr     error

	statusCalls   int
	activityReads int
}

func (f *fakeAPI) GetContract(_ context.Context, _ int) (*contractpro.Contract, error) {
	if f.contractErr != nil {
		return nil, f.contractErr
	}
	c := *f.contract
	return &c, nil
}

func (f *fakeAPI) ContractActivities(_ context.Context, _ int) ([]contractpro.ActivityRecord, error) {
	f.activityReads++
	if f.activitiesErr != nil {
		return nil, f.activitiesErr
	}
	return append([]contractpro.ActivityRecord(nil), f.activities...), nil
}

func (f *fakeAPI) UpdateContractStatus(_ context.Context, _ int, _ contractpro.Status) (*contractpro.StatusChange, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &contractpro.StatusChange{Message: "ok"}, nil
}

func (f *fakeAPI) DeleteContract(_ context.Context, _ int) error {
	return f.deleteErr
}

func lease(status contractpro.Status) *contractpro.Contract {
	return &contractpro.Contract{
		ID:             7,
		ContractNumber: "CTR-2026-0007",
		Title:          "Office Lease",
		Status:         status,
		VendorName:     "Acme Properties",
	}
}

func TestLoadJoinsContractAndActivities(t *testing.T) {
	api := &fakeAPI{
		contract: lease(contractpro.StatusDraft),
		activities: []contractpro.ActivityRecord{
			{User: "admin", Action: "Created contract", CreatedAt: "2026-01-01T09:00:00"},
		},
	}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7))
	require.NotNil(t, vm.Contract())
	assert.Equal(t, "Office Lease", vm.Contract().Title)
	assert.Len(t, vm.Activities(), 1)
}

func TestLoadToleratesActivityFailure(t *testing.T) {
	api := &fakeAPI{
		contract:      lease(contractpro.StatusDraft),
		activitiesErr: errors.New("activity backend down"),
	}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7), "activity failure must not fail the load")
	require.NotNil(t, vm.Contract())
	assert.Empty(t, vm.Activities())
}

func TestLoadFailsWhenContractMissing(t *testing.T) {
	api := &fakeAPI{contractErr: contractpro.ErrNotFound}
	vm := New(api)
	err := vm.Load(context.Background(), 7)
	require.ErrorIs(t, err, contractpro.ErrNotFound)
	assert.Nil(t, vm.Contract())
}

func TestTransitionAppliedOnSuccess(t *testing.T) {
	api := &fakeAPI{contract: lease(contractpro.StatusInReview)}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7))

	require.NoError(t, vm.RequestTransition(context.Background(), contractpro.StatusApproved))
	assert.Equal(t, contractpro.StatusApproved, vm.Contract().Status)
}

func TestTransitionRolledBackOnRejection(t *testing.T) {
	api := &fakeAPI{
		contract:  lease(contractpro.StatusInReview),
		statusErr: contractpro.ErrTransitionRejected,
	}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7))

	err := vm.RequestTransition(context.Background(), contractpro.StatusSigned)
	require.ErrorIs(t, err, contractpro.ErrTransitionRejected)
	assert.Equal(t, contractpro.StatusInReview, vm.Contract().Status, "status must be restored exactly")
	assert.Equal(t, 1, api.statusCalls, "no automatic retries")
}

func TestTransitionRereadsActivities(t *testing.T) {
	api := &fakeAPI{contract: lease(contractpro.StatusDraft)}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7))
	before := api.activityReads

	api.activities = []contractpro.ActivityRecord{
		{User: "admin", Action: "Changed status to in_review", CreatedAt: "2026-01-02T10:00:00"},
	}
	require.NoError(t, vm.RequestTransition(context.Background(), contractpro.StatusInReview))
	assert.Equal(t, before+1, api.activityReads)
	require.Len(t, vm.Activities(), 1)
	assert.Equal(t, "Changed status to in_review", vm.Activities()[0].Action)
}

func TestDeleteDoesNotTouchLocalCopy(t *testing.T) {
	api := &fakeAPI{contract: lease(contractpro.StatusDraft)}
	vm := New(api)
	require.NoError(t, vm.Load(context.Background(), 7))

	require.NoError(t, vm.Delete(context.Background()))
	assert.NotNil(t, vm.Contract(), "the caller re-navigates; the view-model does not clear itself")
}

func contractsFixture() []contractpro.Contract {
	return []contractpro.Contract{
		{Title: "Lease A", ContractNumber: "CTR-1", VendorName: "Acme Properties", Status: contractpro.StatusDraft},
		{Title: "Lease B", ContractNumber: "CTR-2", VendorName: "Gears Ltd", Status: contractpro.StatusSigned},
		{Title: "Catering", ContractNumber: "CTR-3", VendorName: "Tasty Co", Status: contractpro.StatusSigned},
	}
}

func TestFilteredEmptyQueryAllStatusesIsIdentity(t *testing.T) {
	in := contractsFixture()
	assert.Equal(t, in, Filtered(in, "", FilterAll))
}

func TestFilteredMatchesQueryAndStatus(t *testing.T) {
	got := Filtered(contractsFixture(), "acme", "signed")
	assert.Empty(t, got, "Acme contract is draft, not signed")

	got = Filtered(contractsFixture(), "acme", FilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Lease A", got[0].Title)
}

func TestFilteredIsCaseInsensitiveAndOrderPreserving(t *testing.T) {
	got := Filtered(contractsFixture(), "LEASE", FilterAll)
	require.Len(t, got, 2)
	assert.Equal(t, "Lease A", got[0].Title)
	assert.Equal(t, "Lease B", got[1].Title)
}

func TestFilteredMatchesNumberAndVendor(t *testing.T) {
	got := Filtered(contractsFixture(), "ctr-3", FilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Catering", got[0].Title)

	got = Filtered(contractsFixture(), "gears", FilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Lease B", got[0].Title)
}

func TestFilteredStatusOnly(t *testing.T) {
	got := Filtered(contractsFixture(), "", "signed")
	require.Len(t, got, 2)
	assert.Equal(t, "Lease B", got[0].Title)
	assert.Equal(t, "Catering", got[1].Title)
}
