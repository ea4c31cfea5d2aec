package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
	testhelpers "github.com/familybank/allowance/internal/test"
)

var testRates = Rates{SavingsAPY: 0.05, CreditAPR: 0.24}

func newLedger(now time.Time) (*LedgerUseCase, *testhelpers.LedgerFake, *testhelpers.FixedClock) {
	store := testhelpers.NewLedgerFake()
	clk := &testhelpers.FixedClock{Time: now}
	return NewLedgerUseCase(store, clk, testRates), store, clk
}

func child(allowance, starting float64) *model.User {
	return &model.User{
		ID:               7,
		Username:         "kid",
		DisplayName:      "Kid",
		MonthlyAllowance: allowance,
		StartingBalance:  starting,
		CreatedAt:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunCatchupJanuaryScenario(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	txns := store.Transactions()
	// 1 starting-balance adjustment + 31 daily incomes + 1 interest posting.
	assert.Equal(t, 33, len(txns))

	adj := txns[0]
	assert.Equal(t, model.TransactionAdjustment, adj.Type)
	assert.Equal(t, 100.0, adj.Amount)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), adj.CreatedAt)

	for day := 1; day <= 31; day++ {
		income := txns[day]
		assert.Equal(t, model.TransactionIncome, income.Type)
		assert.Equal(t, 10.0, income.Amount)
		assert.Equal(t, time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC), income.CreatedAt)
	}

	interest := txns[32]
	assert.Equal(t, model.TransactionInterest, interest.Type)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), interest.CreatedAt)
	// Balance as-of 23:59:58 is 100 + 310 = 410 at the monthly-equivalent
	// savings rate (1.05^(1/12) - 1).
	assert.Equal(t, 1.67, interest.Amount)

	balance, err := u.Balance(context.Background(), usr.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, 411.67, balance)
}

func TestRunCatchupIdempotent(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	before := store.Transactions()

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	after := store.Transactions()

	assert.Equal(t, len(before), len(after))
	assert.Equal(t, before, after)
}

func TestRunCatchupResumesFromLastIncome(t *testing.T) {
	u, store, clk := newLedger(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	usr := child(310, 0)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	assert.Equal(t, 10, len(store.Transactions()))

	clk.AdvanceDays(3)
	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	txns := store.Transactions()
	assert.Equal(t, 13, len(txns))

	// No-gap invariant: exactly one income at each day's midnight.
	seen := map[string]int{}
	for _, txn := range txns {
		assert.Equal(t, model.TransactionIncome, txn.Type)
		assert.Equal(t, 0, txn.CreatedAt.Hour())
		seen[txn.CreatedAt.Format("2006-01-02")]++
	}
	for day := 1; day <= 13; day++ {
		date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.Equal(t, 1, seen[date])
	}
}

func TestRunCatchupMonthEndExclusivity(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	usr := child(100, 50)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	perMonth := map[time.Month][]model.TransactionType{}
	for _, txn := range store.Transactions() {
		if txn.Type == model.TransactionInterest || txn.Type == model.TransactionPenalty {
			perMonth[txn.CreatedAt.Month()] = append(perMonth[txn.CreatedAt.Month()], txn.Type)
		}
	}

	assert.Equal(t, 1, len(perMonth[time.January]))
	assert.Equal(t, 1, len(perMonth[time.February]))
	assert.Equal(t, 0, len(perMonth[time.March]))
}

func TestRunCatchupNegativeBalancePostsPenalty(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC))
	usr := child(310, -500)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	var penalty *model.Transaction
	for _, txn := range store.Transactions() {
		txn := txn
		assert.NotEqual(t, model.TransactionInterest, txn.Type)
		if txn.Type == model.TransactionPenalty {
			penalty = &txn
		}
	}

	assert.NotZero(t, penalty)
	// abs(-500 + 310) * 0.24/12 = 190 * 0.02 = 3.80, simple monthly rate.
	assert.Equal(t, 3.8, penalty.Amount)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), penalty.CreatedAt)
}

func TestRunCatchupZeroAllowanceIsNoop(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	usr := child(0, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	assert.Equal(t, 0, len(store.Transactions()))
}

func TestRunCatchupFutureStartIsNoop(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	usr := child(310, 100)
	future := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	usr.AllowanceStartDate = &future

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	assert.Equal(t, 0, len(store.Transactions()))
}

func TestRunCatchupHonorsAllowanceStartDate(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	usr := child(310, 0)
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	usr.AllowanceStartDate = &start

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	txns := store.Transactions()
	assert.Equal(t, 6, len(txns))
	assert.Equal(t, start, txns[0].CreatedAt)
}

func TestRunCatchupSkipsAdjustmentWhenZeroStartingBalance(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	usr := child(310, 0)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	for _, txn := range store.Transactions() {
		assert.NotEqual(t, model.TransactionAdjustment, txn.Type)
	}
}

func TestRunCatchupRollsBackOnStoreFailure(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	boom := errors.New("boom")
	inserts := 0
	store.InsertHook = func(*model.Transaction) error {
		inserts++
		if inserts > 20 {
			return boom
		}
		return nil
	}

	err := u.RunCatchup(context.Background(), usr)
	assert.IsError(t, err, boom)
	// All-or-nothing: a failure partway must not leave a partial ledger.
	assert.Equal(t, 0, len(store.Transactions()))

	store.InsertHook = nil
	assert.NoError(t, u.RunCatchup(context.Background(), usr))
	assert.Equal(t, 33, len(store.Transactions()))
}

func TestBalanceMatchesLastAnnotatedPosting(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC))
	usr := child(250, 40)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	asc, err := u.transactions.List(context.Background(), usr.ID, repository.TransactionFilter{})
	assert.NoError(t, err)
	annotated, err := u.AnnotateRunningBalance(context.Background(), usr.ID, asc)
	assert.NoError(t, err)

	balance, err := u.Balance(context.Background(), usr.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, balance, annotated[len(annotated)-1].BalanceAfter)
}

func TestAnnotateRunningBalanceTieBreakByID(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	stamp := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	income := &model.Transaction{UserID: 7, Type: model.TransactionIncome, Amount: 10, CreatedAt: stamp}
	interest := &model.Transaction{UserID: 7, Type: model.TransactionInterest, Amount: 1.5, CreatedAt: stamp}
	assert.NoError(t, store.Insert(context.Background(), income))
	assert.NoError(t, store.Insert(context.Background(), interest))

	annotated, err := u.AnnotateRunningBalance(context.Background(), 7, []model.Transaction{*income, *interest})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(annotated))
	assert.Equal(t, 10.0, annotated[0].BalanceAfter)
	assert.Equal(t, 11.5, annotated[1].BalanceAfter)
	assert.True(t, annotated[1].BalanceAfter > annotated[0].BalanceAfter)
}

func TestAnnotateRunningBalanceMidHistorySlice(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	asc, err := u.transactions.List(context.Background(), usr.ID, repository.TransactionFilter{})
	assert.NoError(t, err)

	// Annotate only the tail; balance-before must cover the skipped head.
	tail := asc[5:]
	annotated, err := u.AnnotateRunningBalance(context.Background(), usr.ID, tail)
	assert.NoError(t, err)

	full, err := u.AnnotateRunningBalance(context.Background(), usr.ID, asc)
	assert.NoError(t, err)
	assert.Equal(t, full[len(full)-1].BalanceAfter, annotated[len(annotated)-1].BalanceAfter)
}

func TestAnnotateRunningBalanceEmptySlice(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	annotated, err := u.AnnotateRunningBalance(context.Background(), 7, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(annotated))
}

func TestHistoryPagesNewestFirst(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	page, err := u.History(context.Background(), usr.ID, 1, 5, nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(page.Items))
	assert.Equal(t, int64(11), page.Total) // adjustment + 10 incomes
	assert.Equal(t, 3, page.Pages)

	// Newest first, and running balances still line up with the full history.
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), page.Items[0].CreatedAt)
	balance, err := u.Balance(context.Background(), usr.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, balance, page.Items[0].BalanceAfter)
}

func TestHistoryTypeFilter(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	typ := model.TransactionInterest
	page, err := u.History(context.Background(), usr.ID, 1, 20, &typ)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(page.Items))
	assert.Equal(t, model.TransactionInterest, page.Items[0].Type)
}

func TestOverview(t *testing.T) {
	u, _, _ := newLedger(time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC))
	usr := child(310, 100)

	assert.NoError(t, u.RunCatchup(context.Background(), usr))

	overview, err := u.Overview(context.Background(), usr.ID)
	assert.NoError(t, err)

	assert.Equal(t, 250.0, overview.Balance) // 100 + 15*10
	assert.Equal(t, 10, len(overview.Recent))
	assert.Equal(t, overview.Balance, overview.Recent[0].BalanceAfter)

	// One chart point per day; the adjustment and first income share a label
	// only when they land on the same calendar day, which they don't here.
	assert.Equal(t, 16, len(overview.Chart.Labels))
	assert.Equal(t, overview.Balance, overview.Chart.Balances[len(overview.Chart.Balances)-1])
}

func TestAdjust(t *testing.T) {
	u, store, _ := newLedger(time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))

	balance, err := u.Adjust(context.Background(), 7, 25.556, "birthday gift")
	assert.NoError(t, err)
	assert.Equal(t, 25.56, balance)

	balance, err = u.Adjust(context.Background(), 7, -5.56, "")
	assert.NoError(t, err)
	assert.Equal(t, 20.0, balance)

	txns := store.Transactions()
	assert.Equal(t, 2, len(txns))
	assert.Equal(t, "Manual adjustment", txns[1].Description)

	_, err = u.Adjust(context.Background(), 7, 0, "zero")
	assert.IsError(t, err, domainErrors.ErrInvalidAmount)
}
