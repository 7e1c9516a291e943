package ledger

import (
	"errors"
	"testing"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceWithMock(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(repository.NewRepository(db)), mock
}

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestRecordTransactionCarAmountAppliesVehicleAndUserEffects(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	// debt decrement floored at zero, paid amount incremented
	mock.ExpectExec(`UPDATE "vehicles" SET .*GREATEST\("?debt_amount"? - .*400.*, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// payer debt is recomputed from the vehicles table, never incremented
	mock.ExpectExec(`UPDATE "users" SET "debt"=COALESCE\(\(SELECT SUM\(v.debt_amount\) FROM vehicles v WHERE v.dealer_id = users.id\), 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transaction, effects, err := service.RecordTransaction(models.TransactionRequest{
		Payer:       strPtr("dealer1"),
		Vin:         strPtr("VIN123"),
		PaidAmount:  decPtr(decimal.NewFromInt(400)),
		PaymentType: models.PaymentTypeCarAmount,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, transaction.ID)
	assert.True(t, effects.VehicleUpdated)
	assert.True(t, effects.UserUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionMissingVehicleIsNoOp(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec(`UPDATE "vehicles"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, effects, err := service.RecordTransaction(models.TransactionRequest{
		Payer:       strPtr("dealer1"),
		Vin:         strPtr("UNKNOWN-VIN"),
		PaidAmount:  decPtr(decimal.NewFromInt(100)),
		PaymentType: models.PaymentTypeShipping,
	})

	require.NoError(t, err)
	assert.False(t, effects.VehicleUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionRollsBackWhenVehicleUpdateFails(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectExec(`UPDATE "vehicles"`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	transaction, _, err := service.RecordTransaction(models.TransactionRequest{
		Payer:       strPtr("dealer1"),
		Vin:         strPtr("VIN123"),
		PaidAmount:  decPtr(decimal.NewFromInt(400)),
		PaymentType: models.PaymentTypeCarAmount,
	})

	require.Error(t, err)
	assert.Nil(t, transaction)
	// rollback covers the already-executed insert: no commit happened
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionBalanceTypeMovesBalanceOnly(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(14))
	mock.ExpectExec(`UPDATE "users" SET "balance"=balance \+ `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, effects, err := service.RecordTransaction(models.TransactionRequest{
		Payer:              strPtr("dealer1"),
		PaymentType:        models.PaymentTypeBalance,
		AddToBalanceAmount: decPtr(decimal.NewFromInt(-250)),
	})

	require.NoError(t, err)
	assert.False(t, effects.VehicleUpdated)
	assert.True(t, effects.UserUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionRejectsUnknownPaymentType(t *testing.T) {
	service, mock := newServiceWithMock(t)

	_, _, err := service.RecordTransaction(models.TransactionRequest{
		PaymentType: "lottery",
	})

	assert.ErrorIs(t, err, ErrInvalidPaymentType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectAdjustment(mock sqlmock.Sqlmock, balanceAfter string) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "username" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("dealer1"))
	mock.ExpectExec(`UPDATE "users" SET "balance"=balance \+ `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(`SELECT "balance", "debt" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "debt"}).AddRow(balanceAfter, "600"))
	mock.ExpectCommit()
}

func TestAdjustBalanceCreditThenDebitRoundTrips(t *testing.T) {
	service, mock := newServiceWithMock(t)

	expectAdjustment(mock, "1500")
	credited, err := service.AdjustBalance(7, decimal.NewFromInt(500), models.AdjustmentCredit, "prepayment")
	require.NoError(t, err)
	assert.True(t, credited.Balance.Equal(decimal.NewFromInt(1500)))

	expectAdjustment(mock, "1000")
	debited, err := service.AdjustBalance(7, decimal.NewFromInt(500), models.AdjustmentDebit, "correction")
	require.NoError(t, err)
	assert.True(t, debited.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, debited.Debt.Equal(decimal.NewFromInt(600)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalanceValidation(t *testing.T) {
	service, mock := newServiceWithMock(t)

	_, err := service.AdjustBalance(7, decimal.NewFromInt(-10), models.AdjustmentCredit, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.AdjustBalance(7, decimal.Zero, models.AdjustmentCredit, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.AdjustBalance(7, decimal.NewFromInt(10), "transfer", "")
	assert.ErrorIs(t, err, ErrInvalidAdjustmentType)

	// validation rejects before any write
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalanceUnknownUserRollsBack(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "username" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}))
	mock.ExpectRollback()

	_, err := service.AdjustBalance(404, decimal.NewFromInt(50), models.AdjustmentDebit, "")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
