package models

import "time"

const (
	PaymentMethodCash   = "CASH"
	PaymentMethodCredit = "CREDIT"

	DebtStatusUnpaid = "unpaid"
	DebtStatusPaid   = "paid"
)

// Transaction is a finalized sale. Created once, never updated or deleted.
type Transaction struct {
	ID                int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNumber string  `gorm:"type:varchar(32);uniqueIndex;not null" json:"transaction_number"`
	MemberID          *int64  `gorm:"index" json:"member_id,omitempty"`
	MemberName        *string `gorm:"type:varchar(128)" json:"member_name,omitempty"`

	Total          string  `gorm:"type:decimal(18,2);not null" json:"total"`
	PaymentMethod  string  `gorm:"type:varchar(16);not null" json:"payment_method"`
	AmountTendered *string `gorm:"type:decimal(18,2)" json:"amount_tendered,omitempty"`
	ChangeGiven    *string `gorm:"type:decimal(18,2)" json:"change_given,omitempty"`

	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
}

// TransactionItem snapshots product name, code and prices at sale time.
type TransactionItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID int64     `gorm:"index;not null" json:"transaction_id"`
	ProductID     int32     `gorm:"not null" json:"product_id"`
	ProductName   string    `gorm:"type:varchar(128);not null" json:"product_name"`
	ProductCode   string    `gorm:"type:varchar(32);not null" json:"product_code"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	CostPrice     string    `gorm:"type:decimal(18,2);not null" json:"cost_price"`
	SellPrice     string    `gorm:"type:decimal(18,2);not null" json:"sell_price"`
	Subtotal      string    `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	CreatedAt     time.Time `json:"created_at"`
}

// Debt is the credit obligation opened by a CREDIT sale. Exactly one per
// CREDIT transaction, never deleted, mutated only through payment application.
type Debt struct {
	ID                int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID          int64  `gorm:"index;not null" json:"member_id"`
	MemberName        string `gorm:"type:varchar(128);not null" json:"member_name"`
	TransactionID     int64  `gorm:"index;not null" json:"transaction_id"`
	TransactionNumber string `gorm:"type:varchar(32);not null" json:"transaction_number"`

	OriginalAmount  string `gorm:"type:decimal(18,2);not null" json:"original_amount"`
	AmountPaid      string `gorm:"type:decimal(18,2);not null;default:0" json:"amount_paid"`
	RemainingAmount string `gorm:"type:decimal(18,2);not null" json:"remaining_amount"`
	Status          string `gorm:"type:varchar(16);not null;default:'unpaid';index" json:"status"`

	OpenedAt time.Time  `gorm:"not null" json:"opened_at"`
	DueDate  *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DebtPayment is one installment against a Debt. Append-only.
type DebtPayment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DebtID     int64     `gorm:"index;not null" json:"debt_id"`
	MemberID   int64     `gorm:"index;not null" json:"member_id"`
	MemberName string    `gorm:"type:varchar(128);not null" json:"member_name"`
	Amount     string    `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaidAt     time.Time `gorm:"not null;index" json:"paid_at"`
	Note       string    `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
