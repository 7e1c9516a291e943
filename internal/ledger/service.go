package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentType    = errors.New("invalid payment type")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidAdjustmentType = errors.New("adjustment type must be credit or debit")
	ErrUserNotFound          = errors.New("user not found")
)

// Effects reports which derived state a recorded transaction touched.
type Effects struct {
	VehicleUpdated bool `json:"vehicleUpdated"`
	UserUpdated    bool `json:"userUpdated"`
}

// Service applies the financial consistency rules around transaction
// rows: vehicle paid/debt amounts and the paying user's balance/debt.
// Every multi-statement sequence runs in one database transaction;
// there is nothing best-effort here.
type Service struct {
	r *repository.Repository
}

func NewService(r *repository.Repository) *Service {
	return &Service{r: r}
}

// RecordTransaction inserts the transaction row and applies its ledger
// effects atomically. On any failure the whole unit, including the
// insert, rolls back.
func (s *Service) RecordTransaction(req models.TransactionRequest) (*models.Transaction, Effects, error) {
	if !models.IsValidPaymentType(req.PaymentType) {
		return nil, Effects{}, ErrInvalidPaymentType
	}

	paidAmount := decimal.Zero
	if req.PaidAmount != nil {
		paidAmount = *req.PaidAmount
	}

	transaction := &models.Transaction{
		Payer:              req.Payer,
		Vin:                req.Vin,
		Mark:               req.Mark,
		Model:              req.Model,
		Year:               req.Year,
		Buyer:              req.Buyer,
		PersonalNumber:     req.PersonalNumber,
		PaidAmount:         paidAmount,
		PaymentType:        req.PaymentType,
		AddToBalanceAmount: req.AddToBalanceAmount,
		CreateDate:         time.Now(),
	}

	var effects Effects

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if err := insertTransaction(tx, transaction); err != nil {
			return err
		}

		var err error
		if effects, err = applyTransactionEffects(tx, transaction); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return nil, Effects{}, err
	}

	return transaction, effects, nil
}

// AdjustBalance applies an explicit admin credit/debit to a user's
// balance and records it as a synthetic balance transaction, so the
// adjustment stays visible in transaction history. Returns the
// post-adjustment {balance, debt} pair.
func (s *Service) AdjustBalance(userID int, amount decimal.Decimal, adjustmentType string, note string) (*models.BalanceSnapshot, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var signedAmount decimal.Decimal
	switch adjustmentType {
	case models.AdjustmentCredit:
		signedAmount = amount
	case models.AdjustmentDebit:
		signedAmount = amount.Neg()
	default:
		return nil, ErrInvalidAdjustmentType
	}

	var snapshot models.BalanceSnapshot

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var username string
		found, err := tx.Select("username").From("users").Where(goqu.Ex{"id": userID}).
			Executor().ScanVal(&username)
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		if !found {
			return ErrUserNotFound
		}

		update := tx.Update("users").
			Set(goqu.Record{"balance": goqu.L("balance + ?", signedAmount)}).
			Where(goqu.Ex{"id": userID})
		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to adjust balance: %w", err)
		}

		transaction := &models.Transaction{
			Payer:              &username,
			PaidAmount:         amount,
			PaymentType:        models.PaymentTypeBalance,
			AddToBalanceAmount: &signedAmount,
			CreateDate:         time.Now(),
		}
		if note != "" {
			transaction.Note = &note
		}
		if err := insertTransaction(tx, transaction); err != nil {
			return err
		}

		found, err = tx.Select("balance", "debt").From("users").Where(goqu.Ex{"id": userID}).
			Executor().ScanStruct(&snapshot)
		if err != nil {
			return fmt.Errorf("failed to read updated balance: %w", err)
		}
		if !found {
			return ErrUserNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func insertTransaction(tx *goqu.TxDatabase, transaction *models.Transaction) error {
	row := goqu.Record{
		"paid_amount":  transaction.PaidAmount,
		"payment_type": transaction.PaymentType,
		"create_date":  transaction.CreateDate,
	}

	if transaction.Payer != nil {
		row["payer"] = transaction.Payer
	}
	if transaction.Vin != nil {
		row["vin"] = transaction.Vin
	}
	if transaction.Mark != nil {
		row["mark"] = transaction.Mark
	}
	if transaction.Model != nil {
		row["model"] = transaction.Model
	}
	if transaction.Year != nil {
		row["year"] = transaction.Year
	}
	if transaction.Buyer != nil {
		row["buyer"] = transaction.Buyer
	}
	if transaction.PersonalNumber != nil {
		row["personal_number"] = transaction.PersonalNumber
	}
	if transaction.AddToBalanceAmount != nil {
		row["add_to_balance_amount"] = transaction.AddToBalanceAmount
	}
	if transaction.Note != nil {
		row["note"] = transaction.Note
	}

	query := tx.Insert("transactions").Rows(row).Returning("id")

	if _, err := query.Executor().ScanVal(&transaction.ID); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// applyTransactionEffects runs the fixed effect sequence for one
// freshly inserted transaction, inside the caller's database
// transaction:
//
//  1. car_amount/shipping/customs with a vin: decrement the vehicle's
//     debt (floored at zero) and increment its paid amount;
//  2. if that branch ran and a payer is named: recompute the payer's
//     debt from scratch as the sum over their vehicles — a full
//     recomputation converges under concurrent commits where an
//     increment would not;
//  3. balance type with an amount and payer: shift the user's balance
//     by the signed amount.
func applyTransactionEffects(tx *goqu.TxDatabase, transaction *models.Transaction) (Effects, error) {
	var effects Effects

	if models.IsVehiclePayment(transaction.PaymentType) && transaction.Vin != nil && *transaction.Vin != "" {
		amount := transaction.PaidAmount

		update := tx.Update("vehicles").
			Set(goqu.Record{
				"payed_amount":      goqu.L("payed_amount + ?", amount),
				"debt_amount":       goqu.L("GREATEST(debt_amount - ?, 0)", amount),
				"is_fully_paid":     goqu.L("debt_amount - ? <= 0", amount),
				"is_partially_paid": goqu.L("payed_amount + ? > 0 AND debt_amount - ? > 0", amount, amount),
			}).
			Where(goqu.Ex{"vin": *transaction.Vin})

		result, err := update.Executor().Exec()
		if err != nil {
			return effects, fmt.Errorf("failed to update vehicle amounts: %w", err)
		}
		// a missing vehicle is a no-op, not an error
		if rows, err := result.RowsAffected(); err == nil && rows > 0 {
			effects.VehicleUpdated = true
		}

		if transaction.Payer != nil && *transaction.Payer != "" {
			recompute := tx.Update("users").
				Set(goqu.Record{
					"debt": goqu.L("COALESCE((SELECT SUM(v.debt_amount) FROM vehicles v WHERE v.dealer_id = users.id), 0)"),
				}).
				Where(goqu.Ex{"username": *transaction.Payer})

			result, err := recompute.Executor().Exec()
			if err != nil {
				return effects, fmt.Errorf("failed to recompute user debt: %w", err)
			}
			if rows, err := result.RowsAffected(); err == nil && rows > 0 {
				effects.UserUpdated = true
			}
		}
	}

	if transaction.PaymentType == models.PaymentTypeBalance &&
		transaction.AddToBalanceAmount != nil &&
		transaction.Payer != nil && *transaction.Payer != "" {

		update := tx.Update("users").
			Set(goqu.Record{"balance": goqu.L("balance + ?", *transaction.AddToBalanceAmount)}).
			Where(goqu.Ex{"username": *transaction.Payer})

		result, err := update.Executor().Exec()
		if err != nil {
			return effects, fmt.Errorf("failed to update user balance: %w", err)
		}
		if rows, err := result.RowsAffected(); err == nil && rows > 0 {
			effects.UserUpdated = true
		}
	}

	return effects, nil
}
