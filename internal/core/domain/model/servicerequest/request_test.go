package servicerequest_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	requester kernel.AccountID  = "customer-1"
	lab       kernel.AccountID  = "lab-1"
	trackID   kernel.TrackingID = "0123456789ABCDEFGHIJK"
	cooldown                    = 24 * time.Hour
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type result struct{ ready bool }

func (r result) TrackingID() kernel.TrackingID { return trackID }
func (r result) IsSucceeded() bool             { return r.ready }
func (r result) IsRejected() bool              { return false }

func location(t *testing.T) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation("ID", "JK", "Jakarta")
	require.NoError(t, err)
	return l
}

func service(t *testing.T, owner kernel.AccountID) *catalog.Service {
	t.Helper()
	s, err := catalog.NewService(kernel.NewUUID(), owner, kernel.Lab, []catalog.PriceByCurrency{{Currency: "DBIO"}})
	require.NoError(t, err)
	return s
}

func openRequest(t *testing.T) *servicerequest.Request {
	t.Helper()
	r, err := servicerequest.NewRequest(kernel.NewUUID(), requester, location(t), "Whole Genome", kernel.NewBalance(1_000), now)
	require.NoError(t, err)
	return r
}

func orderFor(t *testing.T, svc *catalog.Service, customer kernel.AccountID) *order.Order {
	t.Helper()
	entry, err := svc.PriceAt(0)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), svc.ID(), customer, svc.Owner(), "",
		entry, order.StakingRequestService, trackID, now)
	require.NoError(t, err)
	return o
}

func processed(t *testing.T) (*servicerequest.Request, *order.Order) {
	t.Helper()
	r := openRequest(t)
	svc := service(t, lab)
	require.NoError(t, r.Claim(lab, svc, now))
	o := orderFor(t, svc, requester)
	require.NoError(t, r.Process(requester, o, now))
	return r, o
}

func TestNewRequest(t *testing.T) {
	t.Run("should open with the stake recorded", func(t *testing.T) {
		r := openRequest(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, servicerequest.Open, r.Status())
		assert.Equal(t, "1000", r.StakingAmount().String())
		assert.True(t, r.IsActive())
		assert.Equal(t, servicerequest.CountKey{Country: "ID", Region: "JK", City: "Jakarta", Category: "Whole Genome"}, r.CountKey())
		assert.Nil(t, r.Lab())
	})

	t.Run("should reject a zero amount", func(t *testing.T) {
		_, err := servicerequest.NewRequest(kernel.NewUUID(), requester, location(t), "Whole Genome", kernel.ZeroBalance(), now)

		require.ErrorIs(t, err, servicerequest.ErrNotValidAmount)
	})

	t.Run("should require a category", func(t *testing.T) {
		_, err := servicerequest.NewRequest(kernel.NewUUID(), requester, location(t), "  ", kernel.NewBalance(1), now)

		require.ErrorIs(t, err, servicerequest.ErrCategoryIsRequired)
	})
}

func TestRequest_Claim(t *testing.T) {
	t.Run("should record the provider and service", func(t *testing.T) {
		r := openRequest(t)
		svc := service(t, lab)

		require.NoError(t, r.Claim(lab, svc, now.Add(time.Minute)))

		assert.Equal(t, servicerequest.Claimed, r.Status())
		assert.Equal(t, lab, *r.Lab())
		assert.True(t, svc.ID().IsEqual(*r.ServiceID()))
		assert.Equal(t, now.Add(time.Minute), *r.UpdatedAt())
	})

	t.Run("should reject a service owned by someone else", func(t *testing.T) {
		r := openRequest(t)

		err := r.Claim(lab, service(t, "lab-2"), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, servicerequest.Open, r.Status())
	})

	t.Run("should reject a second claim", func(t *testing.T) {
		r := openRequest(t)
		require.NoError(t, r.Claim(lab, service(t, lab), now))

		err := r.Claim("lab-2", service(t, "lab-2"), now)

		require.ErrorIs(t, err, servicerequest.ErrRequestAlreadyClaimed)
	})

	t.Run("should reject a withdrawn request", func(t *testing.T) {
		r := openRequest(t)
		require.NoError(t, r.Unstake(requester, now, cooldown))

		err := r.Claim(lab, service(t, lab), now)

		require.ErrorIs(t, err, servicerequest.ErrRequestAlreadyUnstaked)
	})
}

func TestRequest_Process(t *testing.T) {
	t.Run("should link a matching order", func(t *testing.T) {
		r, o := processed(t)

		assert.Equal(t, servicerequest.Processed, r.Status())
		assert.True(t, o.ID().IsEqual(*r.OrderID()))
	})

	t.Run("should refuse an unclaimed request", func(t *testing.T) {
		r := openRequest(t)
		svc := service(t, lab)

		err := r.Process(requester, orderFor(t, svc, requester), now)

		require.ErrorIs(t, err, servicerequest.ErrRequestUnableToProcess)
	})

	t.Run("should refuse an order for another service", func(t *testing.T) {
		r := openRequest(t)
		require.NoError(t, r.Claim(lab, service(t, lab), now))

		err := r.Process(requester, orderFor(t, service(t, lab), requester), now)

		require.ErrorIs(t, err, servicerequest.ErrRequestUnableToProcess)
		assert.Equal(t, servicerequest.Claimed, r.Status())
	})

	t.Run("should refuse anyone but the requester", func(t *testing.T) {
		r := openRequest(t)
		svc := service(t, lab)
		require.NoError(t, r.Claim(lab, svc, now))

		err := r.Process("customer-2", orderFor(t, svc, "customer-2"), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should refuse an order placed directly", func(t *testing.T) {
		r := openRequest(t)
		svc := service(t, lab)
		require.NoError(t, r.Claim(lab, svc, now))
		entry, err := svc.PriceAt(0)
		require.NoError(t, err)
		direct, err := order.NewOrder(kernel.NewUUID(), svc.ID(), requester, lab, "",
			entry, order.RequestTest, trackID, now)
		require.NoError(t, err)

		err = r.Process(requester, direct, now)

		require.ErrorIs(t, err, servicerequest.ErrRequestUnableToProcess)
		assert.Equal(t, servicerequest.Claimed, r.Status())
		assert.Nil(t, r.OrderID())
	})
}

func TestRequest_Finalize(t *testing.T) {
	t.Run("should refuse before the order is fulfilled", func(t *testing.T) {
		r, o := processed(t)

		_, err := r.Finalize(lab, o, now)

		require.ErrorIs(t, err, servicerequest.ErrRequestUnableToFinalize)
		assert.Equal(t, servicerequest.Processed, r.Status())
	})

	t.Run("should return the stake once fulfilled", func(t *testing.T) {
		r, o := processed(t)
		require.NoError(t, o.MarkPaid(now))
		require.NoError(t, o.Fulfill(lab, result{ready: true}, now))

		refund, err := r.Finalize(lab, o, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, "1000", refund.String())
		assert.Equal(t, servicerequest.Finalized, r.Status())
		assert.False(t, r.IsActive())
	})

	t.Run("should refuse anyone but the claiming provider", func(t *testing.T) {
		r, o := processed(t)

		_, err := r.Finalize(requester, o, now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestRequest_Unstake(t *testing.T) {
	t.Run("should withdraw from a processed request", func(t *testing.T) {
		r, _ := processed(t)

		require.NoError(t, r.Unstake(requester, now, cooldown))

		assert.Equal(t, servicerequest.WaitingForUnstaked, r.Status())
		assert.Equal(t, now.Add(cooldown), *r.RetrieveUnstakeAt())
		assert.True(t, r.IsActive())
	})

	t.Run("should refuse twice", func(t *testing.T) {
		r := openRequest(t)
		require.NoError(t, r.Unstake(requester, now, cooldown))

		err := r.Unstake(requester, now, cooldown)

		require.ErrorIs(t, err, servicerequest.ErrRequestUnableToUnstake)
	})

	t.Run("should refuse anyone but the requester", func(t *testing.T) {
		r := openRequest(t)

		require.ErrorIs(t, r.Unstake(lab, now, cooldown), errs.ErrUnauthorized)
	})
}

func TestRequest_RetrieveUnstaked(t *testing.T) {
	t.Run("should honour the cooldown", func(t *testing.T) {
		r := openRequest(t)
		require.NoError(t, r.Unstake(requester, now, cooldown))

		_, err := r.RetrieveUnstaked(requester, now.Add(cooldown-time.Second))
		require.ErrorIs(t, err, servicerequest.ErrRequestBeforeUnstakeTime)

		amount, err := r.RetrieveUnstaked(requester, now.Add(cooldown))
		require.NoError(t, err)
		assert.Equal(t, "1000", amount.String())
		assert.Equal(t, servicerequest.Unstaked, r.Status())
		assert.False(t, r.IsActive())
	})

	t.Run("should refuse a request still open", func(t *testing.T) {
		r := openRequest(t)

		_, err := r.RetrieveUnstaked(requester, now)

		require.ErrorIs(t, err, servicerequest.ErrRequestWaitingForUnstake)
	})
}

func TestRestoreRequest(t *testing.T) {
	r, _ := processed(t)

	restored, err := servicerequest.RestoreRequest(r.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, r.Snapshot(), restored.Snapshot())
}
