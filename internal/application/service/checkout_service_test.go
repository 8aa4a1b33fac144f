package service

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckout(t *testing.T, unitPrice string) *CheckoutService {
	t.Helper()

	s := NewCheckoutService(dec("0"), "Corner Shop")
	_, err := s.AddLine("groceries", 1, dec(unitPrice))
	require.NoError(t, err)
	return s
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "not an AppError: %v", err)
	assert.Equal(t, want, appErr.Code)
}

func pressKeys(t *testing.T, s *CheckoutService, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := s.PressKey(k)
		require.NoError(t, err, "key %q", k)
	}
}

func TestCheckout_PressKeyDrivesCalculator(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "20")
	pressKeys(t, s, "1", "2", ",", "5", "+", "1", "Enter")

	view := s.Calculator()
	assert.Equal(t, "13.5", view.Display)
	assert.Empty(t, s.Snapshot().Payments, "no method selected, nothing is assigned")

	pressKeys(t, s, "C")
	assert.Equal(t, "0", s.Calculator().Display)

	pressKeys(t, s, "F12")
	assert.Equal(t, "20.00", s.Calculator().Display)

	_, err := s.PressKey("q")
	require.Error(t, err)
	assertStatus(t, http.StatusBadRequest, err)
}

func TestCheckout_EscapeKeepsEntry(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "20")
	pressKeys(t, s, "1", "2", ".", "5", "+", "3")
	before := s.Calculator()

	pay, err := s.PressKey("Escape")
	require.NoError(t, err)
	assert.Nil(t, pay)
	assert.Equal(t, before, s.Calculator())

	pressKeys(t, s, "Enter")
	assert.Equal(t, "15.5", s.Calculator().Display, "the pending operation survives Escape")
}

func TestCheckout_EnterAssignsWithActiveMethod(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "20")
	s.SetActiveMethod(enum.PaymentMethodCash)

	pressKeys(t, s, "5", "*", "2")
	p, err := s.PressKey("Enter")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(1000), p.Amount)
	assert.Equal(t, enum.PaymentMethodCash, p.Method)

	view := s.Calculator()
	assert.Equal(t, "10.00", view.Display, "remaining balance is loaded after assignment")
	assert.True(t, view.State.AwaitingNewEntry)

	p, err = s.PressKey("=")
	require.NoError(t, err)
	require.NotNil(t, p)

	alloc := s.Allocation()
	assert.True(t, alloc.IsPaymentComplete)
	assert.Equal(t, enum.PaymentMethodNone, alloc.ActiveMethod)
	assert.Equal(t, "0", s.Calculator().Display)
}

func TestCheckout_AssignFromCalculatorErrorsLeaveStateAlone(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "20")
	s.SetActiveMethod(enum.PaymentMethodCash)
	pressKeys(t, s, "2", "5")

	_, err := s.AssignFromCalculator("")
	assert.ErrorIs(t, err, apperror.ErrOverAllocation)
	assert.Equal(t, "25", s.Calculator().Display)
	assert.Empty(t, s.Snapshot().Payments)
}

func TestCheckout_AssignShare(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "14.30")
	s.SetActiveMethod(enum.PaymentMethodWallet)

	p, err := s.AssignShare(ShareHalf)
	require.NoError(t, err)
	assert.Equal(t, int64(715), p.Amount)

	p, err = s.AssignShare(ShareRemaining)
	require.NoError(t, err)
	assert.Equal(t, int64(715), p.Amount)

	p, err = s.AssignShare(ShareQuarter)
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = s.AssignShare(Share("third"))
	require.Error(t, err)
	assertStatus(t, http.StatusBadRequest, err)
}

func TestCheckout_AllocationView(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "30")
	view := s.SetActiveMethod(enum.PaymentMethodTransfer)
	assert.True(t, view.RequiresReference)
	assert.False(t, view.CanAssignPayment)

	view = s.SetReference("TX-9")
	assert.True(t, view.CanAssignPayment)

	_, err := s.AssignPayment(dec("12"), "")
	require.NoError(t, err)

	view = s.Allocation()
	assert.Equal(t, 12.0, view.TotalAssigned)
	assert.Equal(t, 18.0, view.RemainingAmount)
	assert.Len(t, view.PaymentsByMethod, 4)
	assert.Equal(t, 12.0, view.PaymentsByMethod["Transfer"])
	require.Len(t, view.Summary, 1)
	assert.Equal(t, "", view.Reference)
}

func TestCheckout_OrderOperations(t *testing.T) {
	t.Parallel()

	s := NewCheckoutService(dec("0.10"), "Corner Shop")
	line, err := s.AddLine("milk", 2, dec("1.25"))
	require.NoError(t, err)

	updated, ok := s.SetQuantity(line.ID, 4)
	require.True(t, ok)
	assert.Equal(t, int64(500), updated.Total)

	_, ok = s.SetQuantity(uuid.New(), 4)
	assert.False(t, ok)

	totals := s.SetTaxRate(dec("0.2"))
	assert.Equal(t, int64(600), totals.Total)
	totals = s.SetTaxRate(dec("3"))
	assert.Equal(t, int64(600), totals.Total)

	snap := s.Snapshot()
	assert.Equal(t, "0.2", snap.TaxRate)
	require.Len(t, snap.Lines, 1)

	s.RemoveLine(line.ID)
	assert.True(t, s.Snapshot().Totals.IsEmpty)
}

func TestCheckout_RemoveAndClearPayments(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "50")
	s.SetActiveMethod(enum.PaymentMethodCash)
	first, err := s.AssignPayment(dec("10"), "")
	require.NoError(t, err)
	s.SetActiveMethod(enum.PaymentMethodOther)
	_, err = s.AssignPayment(dec("5"), "")
	require.NoError(t, err)

	s.RemovePayment(first.ID)
	assert.Len(t, s.Snapshot().Payments, 1)

	s.RemovePaymentsByMethod(enum.PaymentMethodOther)
	assert.Empty(t, s.Snapshot().Payments)

	_, err = s.AssignPayment(dec("5"), "")
	require.NoError(t, err)
	s.ClearAllPayments()
	assert.Empty(t, s.Snapshot().Payments)
	assert.Equal(t, enum.PaymentMethodNone, s.Allocation().ActiveMethod)
}

func TestCheckout_Receipt(t *testing.T) {
	t.Parallel()

	s := NewCheckoutService(dec("0.10"), "Corner Shop")
	s.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC) }

	_, err := s.AddLine("bread", 2, dec("2.50"))
	require.NoError(t, err)
	s.SetActiveMethod(enum.PaymentMethodTransfer)
	_, err = s.AssignPayment(dec("3"), "TX-42")
	require.NoError(t, err)

	r := s.Receipt("alice")
	assert.Equal(t, "Corner Shop", r.Header.StoreName)
	assert.True(t, strings.HasPrefix(r.InvoiceNo, "INV-20240309-"))
	assert.Equal(t, "2024-03-09 14:05", r.Date)
	assert.Equal(t, "alice", r.Cashier)
	assert.False(t, r.OpenDrawer, "no cash tendered")
	require.Len(t, r.Items, 1)
	assert.Equal(t, "2.50", r.Items[0].UnitPrice)
	assert.Equal(t, "5.00", r.Items[0].Total)
	assert.Equal(t, "5.00", r.SubTotal)
	assert.Equal(t, "0.50", r.Taxes)
	assert.Equal(t, "5.50", r.Total)
	require.Len(t, r.Tenders, 1)
	assert.Equal(t, "Transfer", r.Tenders[0].Method)
	assert.Equal(t, "TX-42", r.Tenders[0].Reference)
	assert.Equal(t, "3.00", r.Paid)
	assert.Equal(t, "2.50", r.Due)
}

func TestCheckout_Reset(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "9")
	s.SetActiveMethod(enum.PaymentMethodCash)
	_, err := s.AssignPayment(dec("1"), "")
	require.NoError(t, err)
	pressKeys(t, s, "4")

	s.Reset()
	snap := s.Snapshot()
	assert.Empty(t, snap.Lines)
	assert.Empty(t, snap.Payments)
	assert.Equal(t, "0", snap.Calculator.Display)
	assert.Equal(t, enum.PaymentMethodNone, snap.Allocation.ActiveMethod)
}

func TestCheckout_ConcurrentCallsAreSerialised(t *testing.T) {
	t.Parallel()

	s := newCheckout(t, "100")
	s.SetActiveMethod(enum.PaymentMethodCash)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AssignPayment(dec("3"), "")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	alloc := s.Allocation()
	assert.Equal(t, 99.0, alloc.TotalAssigned)
	assert.Equal(t, 1.0, alloc.RemainingAmount)
}
