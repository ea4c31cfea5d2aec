package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
	"github.com/familybank/allowance/internal/pkg/clock"
	"github.com/familybank/allowance/internal/pkg/money"
)

const (
	recentTransactions = 10
	chartWindowDays    = 90
)

// Rates carries the two annualized interest rates the month-end close uses.
type Rates struct {
	SavingsAPY float64
	CreditAPR  float64
}

// LedgerUseCase owns the accrual engine and every balance computation.
type LedgerUseCase struct {
	transactions repository.TransactionRepository
	clock        clock.Clock
	rates        Rates

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(transactions repository.TransactionRepository, clk clock.Clock, rates Rates) *LedgerUseCase {
	return &LedgerUseCase{
		transactions: transactions,
		clock:        clk,
		rates:        rates,
		locks:        make(map[int64]*sync.Mutex),
	}
}

// RunCatchup materializes any missing daily income and month-end
// interest/penalty postings for the user, up to today. Idempotent: progress is
// re-derived from the last committed income posting, never from stored
// cursors, so repeat calls and crash-recovery need no extra state. The whole
// run commits as one store transaction.
func (u *LedgerUseCase) RunCatchup(ctx context.Context, usr *model.User) error {
	if usr.MonthlyAllowance <= 0 {
		return nil
	}

	// Serialize catchups per user; the store-level existence guards handle
	// idempotence, the lock closes the check-then-insert race between two
	// simultaneous page loads.
	lock := u.userLock(usr.ID)
	lock.Lock()
	defer lock.Unlock()

	return u.transactions.Transact(ctx, func(s repository.LedgerStore) error {
		return u.catchup(ctx, s, usr)
	})
}

func (u *LedgerUseCase) catchup(ctx context.Context, s repository.LedgerStore, usr *model.User) error {
	var start time.Time

	lastIncome, err := s.LastByType(ctx, usr.ID, model.TransactionIncome)
	switch {
	case err == nil:
		start = dateOf(lastIncome.CreatedAt).AddDate(0, 0, 1)
	case errors.Is(err, domainErrors.ErrNotFound):
		start = dateOf(usr.AccrualStart())
		if err := u.insertStartingBalance(ctx, s, usr, start); err != nil {
			return err
		}
	default:
		return err
	}

	end := dateOf(u.clock.Now())
	if start.After(end) {
		return nil
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days := daysInMonth(d)

		err := s.Insert(ctx, &model.Transaction{
			UserID:      usr.ID,
			Type:        model.TransactionIncome,
			Amount:      money.DailyShare(usr.MonthlyAllowance, days),
			Description: "Daily allowance",
			CreatedAt:   d,
		})
		if err != nil {
			return err
		}

		if d.Day() == days {
			if err := u.applyMonthEnd(ctx, s, usr, d); err != nil {
				return err
			}
		}
	}

	return nil
}

// insertStartingBalance posts the one-time starting balance adjustment one
// second before midnight of the first accrual day, so it sorts strictly before
// the first income posting yet shows up in any balance as-of that day.
func (u *LedgerUseCase) insertStartingBalance(ctx context.Context, s repository.LedgerStore, usr *model.User, start time.Time) error {
	if usr.StartingBalance == 0 {
		return nil
	}

	exists, err := s.HasType(ctx, usr.ID, model.TransactionAdjustment)
	if err != nil || exists {
		return err
	}

	return s.Insert(ctx, &model.Transaction{
		UserID:      usr.ID,
		Type:        model.TransactionAdjustment,
		Amount:      money.Round2(usr.StartingBalance),
		Description: "Starting balance",
		CreatedAt:   start.Add(-time.Second),
	})
}

// applyMonthEnd credits savings interest or debits a penalty for the month
// ending on day d (midnight timestamp). The balance is taken as-of 23:59:58 so
// the 23:59:59 posting being inserted never feeds into its own calculation.
func (u *LedgerUseCase) applyMonthEnd(ctx context.Context, s repository.LedgerStore, usr *model.User, d time.Time) error {
	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	stamp := d.Add(24*time.Hour - time.Second)

	exists, err := s.HasAnyInRange(ctx, usr.ID,
		[]model.TransactionType{model.TransactionInterest, model.TransactionPenalty},
		monthStart, stamp)
	if err != nil || exists {
		return err
	}

	cutoff := stamp.Add(-time.Second)
	balance, err := balanceAsOf(ctx, s, usr.ID, &cutoff)
	if err != nil {
		return err
	}

	monthName := d.Format("January 2006")

	switch {
	case balance > 0:
		monthlyRate := math.Pow(1+u.rates.SavingsAPY, 1.0/12) - 1
		interest := money.Round2(balance * monthlyRate)
		if interest <= 0 {
			return nil
		}
		return s.Insert(ctx, &model.Transaction{
			UserID:      usr.ID,
			Type:        model.TransactionInterest,
			Amount:      interest,
			Description: fmt.Sprintf("Savings interest for %s", monthName),
			CreatedAt:   stamp,
		})
	case balance < 0:
		monthlyRate := u.rates.CreditAPR / 12
		penalty := money.Round2(-balance * monthlyRate)
		if penalty <= 0 {
			return nil
		}
		return s.Insert(ctx, &model.Transaction{
			UserID:      usr.ID,
			Type:        model.TransactionPenalty,
			Amount:      penalty,
			Description: fmt.Sprintf("Interest charge for %s", monthName),
			CreatedAt:   stamp,
		})
	}

	return nil
}

// Balance sums credit postings minus debit postings for the user, restricted
// to created_at <= asOf when given, rounded to 2 decimal places.
func (u *LedgerUseCase) Balance(ctx context.Context, userID int64, asOf *time.Time) (float64, error) {
	return balanceAsOf(ctx, u.transactions, userID, asOf)
}

func balanceAsOf(ctx context.Context, s repository.LedgerStore, userID int64, asOf *time.Time) (float64, error) {
	credits, err := s.SumByTypes(ctx, userID, model.CreditTypes, asOf)
	if err != nil {
		return 0, err
	}
	debits, err := s.SumByTypes(ctx, userID, model.DebitTypes, asOf)
	if err != nil {
		return 0, err
	}
	return money.Round2(credits - debits), nil
}

// AnnotateRunningBalance attaches the balance right after each posting of a
// chronologically ascending slice. The balance before the slice counts every
// posting that precedes the first one in the (created_at, id) order, which
// keeps same-instant postings (income + interest at 23:59:59) deterministic.
func (u *LedgerUseCase) AnnotateRunningBalance(ctx context.Context, userID int64, txns []model.Transaction) ([]model.AnnotatedTransaction, error) {
	if len(txns) == 0 {
		return nil, nil
	}

	first := txns[0]
	credits, err := u.transactions.SumPreceding(ctx, userID, model.CreditTypes, first.CreatedAt, first.ID)
	if err != nil {
		return nil, err
	}
	debits, err := u.transactions.SumPreceding(ctx, userID, model.DebitTypes, first.CreatedAt, first.ID)
	if err != nil {
		return nil, err
	}

	running := money.Round2(credits - debits)
	result := make([]model.AnnotatedTransaction, 0, len(txns))
	for _, txn := range txns {
		running = money.Round2(running + float64(txn.Type.Sign())*txn.Amount)
		result = append(result, model.AnnotatedTransaction{Transaction: txn, BalanceAfter: running})
	}

	return result, nil
}

// TransactionPage is one newest-first page of annotated history.
type TransactionPage struct {
	Items []model.AnnotatedTransaction
	Total int64
	Page  int
	Pages int
}

// History returns a newest-first page of the user's postings with running
// balances. The annotator only works on ascending slices, so the page is
// reversed, annotated and reversed back.
func (u *LedgerUseCase) History(ctx context.Context, userID int64, page, perPage int, typ *model.TransactionType) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	txns, err := u.transactions.List(ctx, userID, repository.TransactionFilter{
		Type:   typ,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
		Desc:   true,
	})
	if err != nil {
		return nil, err
	}

	total, err := u.transactions.Count(ctx, userID, typ)
	if err != nil {
		return nil, err
	}

	reverseTransactions(txns)
	annotated, err := u.AnnotateRunningBalance(ctx, userID, txns)
	if err != nil {
		return nil, err
	}
	reverseAnnotated(annotated)

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return &TransactionPage{Items: annotated, Total: total, Page: page, Pages: pages}, nil
}

// Overview assembles the dashboard: current balance, the latest postings with
// running balances, and a daily balance series for the chart window.
func (u *LedgerUseCase) Overview(ctx context.Context, userID int64) (*model.Dashboard, error) {
	balance, err := u.Balance(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	recent, err := u.transactions.List(ctx, userID, repository.TransactionFilter{
		Limit: recentTransactions,
		Desc:  true,
	})
	if err != nil {
		return nil, err
	}

	reverseTransactions(recent)
	annotated, err := u.AnnotateRunningBalance(ctx, userID, recent)
	if err != nil {
		return nil, err
	}
	reverseAnnotated(annotated)

	chart, err := u.chartSeries(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Dashboard{Balance: balance, Recent: annotated, Chart: *chart}, nil
}

// chartSeries replays the whole history to one point per day inside the chart
// window; multiple postings on one day collapse to the day's closing balance.
func (u *LedgerUseCase) chartSeries(ctx context.Context, userID int64) (*model.ChartSeries, error) {
	txns, err := u.transactions.List(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	since := u.clock.Now().AddDate(0, 0, -chartWindowDays)
	series := &model.ChartSeries{}
	running := 0.0

	for _, txn := range txns {
		running = money.Round2(running + float64(txn.Type.Sign())*txn.Amount)

		if txn.CreatedAt.Before(since) {
			continue
		}
		label := txn.CreatedAt.UTC().Format("2006-01-02")
		if n := len(series.Labels); n > 0 && series.Labels[n-1] == label {
			series.Balances[n-1] = running
			continue
		}
		series.Labels = append(series.Labels, label)
		series.Balances = append(series.Balances, running)
	}

	return series, nil
}

// Adjust posts a manual signed adjustment and returns the resulting balance.
func (u *LedgerUseCase) Adjust(ctx context.Context, userID int64, amount float64, description string) (float64, error) {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domainErrors.ErrInvalidAmount
	}
	if description == "" {
		description = "Manual adjustment"
	}

	err := u.transactions.Insert(ctx, &model.Transaction{
		UserID:      userID,
		Type:        model.TransactionAdjustment,
		Amount:      money.Round2(amount),
		Description: description,
		CreatedAt:   u.clock.Now(),
	})
	if err != nil {
		return 0, err
	}

	return u.Balance(ctx, userID, nil)
}

func (u *LedgerUseCase) userLock(id int64) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	lock, ok := u.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[id] = lock
	}
	return lock
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(d time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func reverseTransactions(txns []model.Transaction) {
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
}

func reverseAnnotated(txns []model.AnnotatedTransaction) {
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
}
