package settlement

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"koperasi-pos/internal/database/models"
)

// Engine owns the Debt and DebtPayment invariants: a CREDIT sale opens
// exactly one debt, payments reduce it monotonically, and the running
// balance never goes negative.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

type SaleItemInput struct {
	ProductID int32
	Quantity  int64
}

type SaleInput struct {
	Items          []SaleItemInput
	PaymentMethod  string
	MemberID       *int64
	AmountTendered *string
	DueDate        *time.Time
}

type PaymentInput struct {
	DebtID int64
	Amount string
	Note   string
}

// CreateSale finalizes a sale in a single database transaction: the
// authoritative total is recomputed from current sell prices, stock is
// decremented (clamped at zero), and a CREDIT sale opens its debt. A supplied
// member is stamped on the transaction regardless of payment method so the
// member's purchase history stays complete; only CREDIT opens a debt.
func (e *Engine) CreateSale(ctx context.Context, in SaleInput) (*models.Transaction, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: sale must have at least one item", ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
	}
	if in.PaymentMethod != models.PaymentMethodCash && in.PaymentMethod != models.PaymentMethodCredit {
		return nil, fmt.Errorf("%w: payment method must be CASH or CREDIT", ErrInvalidInput)
	}
	if in.PaymentMethod == models.PaymentMethodCredit && in.MemberID == nil {
		return nil, ErrMissingMember
	}

	var trx models.Transaction

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var member models.Member
		if in.MemberID != nil {
			if err := tx.First(&member, *in.MemberID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: id %d", ErrMemberNotFound, *in.MemberID)
				}
				return err
			}
		}

		total := decimal.Zero
		lineItems := make([]models.TransactionItem, 0, len(in.Items))
		for _, item := range in.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			sellPrice, err := decimal.NewFromString(product.SellPrice)
			if err != nil {
				return fmt.Errorf("product %d has malformed sell price: %w", product.ID, err)
			}
			subtotal := sellPrice.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(subtotal)

			lineItems = append(lineItems, models.TransactionItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductCode: product.Code,
				Quantity:    item.Quantity,
				CostPrice:   product.CostPrice,
				SellPrice:   product.SellPrice,
				Subtotal:    subtotal.StringFixed(2),
				CreatedAt:   now,
			})
		}

		trx = models.Transaction{
			TransactionNumber: NewTransactionNumber(),
			Total:             total.StringFixed(2),
			PaymentMethod:     in.PaymentMethod,
			OccurredAt:        now,
			Items:             lineItems,
		}

		if in.MemberID != nil {
			trx.MemberID = &member.ID
			trx.MemberName = &member.Name
		}

		if in.PaymentMethod == models.PaymentMethodCash {
			tendered := total
			if in.AmountTendered != nil {
				t, err := decimal.NewFromString(*in.AmountTendered)
				if err != nil {
					return fmt.Errorf("%w: malformed tendered amount", ErrInvalidInput)
				}
				tendered = t
			}
			if tendered.LessThan(total) {
				return fmt.Errorf("%w: tendered %s, total %s", ErrInsufficientPayment,
					tendered.StringFixed(2), total.StringFixed(2))
			}
			tenderedStr := tendered.StringFixed(2)
			changeStr := tendered.Sub(total).StringFixed(2)
			trx.AmountTendered = &tenderedStr
			trx.ChangeGiven = &changeStr
		}

		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		// Stock bookkeeping is best effort: selling past the available
		// quantity clamps at zero instead of failing the sale.
		for _, item := range in.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr(
					"CASE WHEN stock > ? THEN stock - ? ELSE 0 END",
					item.Quantity, item.Quantity,
				)).Error; err != nil {
				return err
			}
		}

		if in.PaymentMethod == models.PaymentMethodCredit {
			debt := models.Debt{
				MemberID:          member.ID,
				MemberName:        member.Name,
				TransactionID:     trx.ID,
				TransactionNumber: trx.TransactionNumber,
				OriginalAmount:    total.StringFixed(2),
				AmountPaid:        decimal.Zero.StringFixed(2),
				RemainingAmount:   total.StringFixed(2),
				Status:            models.DebtStatusUnpaid,
				OpenedAt:          now,
				DueDate:           in.DueDate,
			}
			if err := tx.Create(&debt).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.db.WithContext(ctx).Preload("Items").First(&trx, trx.ID).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

// ApplyPayment records one installment against a debt and recomputes its
// balance. The debt summary is written with a guarded conditional update so
// two concurrent payments cannot both pass the over-payment check and land:
// the second writer sees zero rows affected and fails without side effects.
func (e *Engine) ApplyPayment(ctx context.Context, in PaymentInput) (*models.DebtPayment, *models.Debt, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed payment amount", ErrInvalidInput)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	var payment models.DebtPayment
	var debt models.Debt

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&debt, in.DebtID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: id %d", ErrDebtNotFound, in.DebtID)
			}
			return err
		}

		original, err := decimal.NewFromString(debt.OriginalAmount)
		if err != nil {
			return fmt.Errorf("debt %d has malformed original amount: %w", debt.ID, err)
		}
		paid, err := decimal.NewFromString(debt.AmountPaid)
		if err != nil {
			return fmt.Errorf("debt %d has malformed paid amount: %w", debt.ID, err)
		}
		remaining := original.Sub(paid)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		if amount.GreaterThan(remaining) {
			return fmt.Errorf("%w: amount %s, remaining %s", ErrOverPayment,
				amount.StringFixed(2), remaining.StringFixed(2))
		}

		newPaid := paid.Add(amount)
		newRemaining := original.Sub(newPaid)
		if newRemaining.LessThan(decimal.Zero) {
			newRemaining = decimal.Zero
		}
		newStatus := models.DebtStatusUnpaid
		if newRemaining.IsZero() {
			newStatus = models.DebtStatusPaid
		}

		now := time.Now()

		// Compare-and-swap on the balance as read above. A concurrent
		// payment that committed in between changes amount_paid and this
		// update matches nothing.
		res := tx.Model(&models.Debt{}).
			Where("id = ? AND status = ? AND amount_paid = ?",
				debt.ID, models.DebtStatusUnpaid, debt.AmountPaid).
			Updates(map[string]any{
				"amount_paid":      newPaid.StringFixed(2),
				"remaining_amount": newRemaining.StringFixed(2),
				"status":           newStatus,
				"updated_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrPaymentConflict, debt.ID)
		}

		payment = models.DebtPayment{
			DebtID:     debt.ID,
			MemberID:   debt.MemberID,
			MemberName: debt.MemberName,
			Amount:     amount.StringFixed(2),
			PaidAt:     now,
			Note:       in.Note,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		debt.AmountPaid = newPaid.StringFixed(2)
		debt.RemainingAmount = newRemaining.StringFixed(2)
		debt.Status = newStatus
		debt.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &payment, &debt, nil
}

// ListDebts filters the debt collection by member and/or status, newest first.
func (e *Engine) ListDebts(ctx context.Context, memberID *int64, status string) ([]models.Debt, error) {
	q := e.db.WithContext(ctx).Model(&models.Debt{}).Order("opened_at DESC, id DESC")
	if memberID != nil {
		q = q.Where("member_id = ?", *memberID)
	}
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var debts []models.Debt
	if err := q.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// GetDebt returns one debt by id.
func (e *Engine) GetDebt(ctx context.Context, id int64) (*models.Debt, error) {
	var debt models.Debt
	if err := e.db.WithContext(ctx).First(&debt, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: id %d", ErrDebtNotFound, id)
		}
		return nil, err
	}
	return &debt, nil
}

// ListPayments filters payment history by member and/or debt. Ordering by
// paid_at descending is for display only.
func (e *Engine) ListPayments(ctx context.Context, memberID, debtID *int64) ([]models.DebtPayment, error) {
	q := e.db.WithContext(ctx).Model(&models.DebtPayment{}).Order("paid_at DESC, id DESC")
	if memberID != nil {
		q = q.Where("member_id = ?", *memberID)
	}
	if debtID != nil {
		q = q.Where("debt_id = ?", *debtID)
	}

	var payments []models.DebtPayment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

const trxNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTransactionNumber produces numbers like TRX250901X7K2.
func NewTransactionNumber() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = trxNumberAlphabet[rand.Intn(len(trxNumberAlphabet))]
	}
	return fmt.Sprintf("TRX%s%s", time.Now().Format("060102"), suffix)
}
