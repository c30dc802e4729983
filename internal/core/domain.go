package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CashFlowEntry CashFlow = "ENTRY"
	CashFlowExit  CashFlow = "EXIT"

	PaymentCreditCard PaymentType = "CREDIT_CARD"
	PaymentDebit      PaymentType = "DEBIT"
	PaymentPix        PaymentType = "PIX"
	PaymentMoney      PaymentType = "MONEY"
	PaymentTransfer   PaymentType = "TRANSFER"

	CardCredit   CardType = "CREDIT"
	CardDebit    CardType = "DEBIT"
	CardMultiple CardType = "MULTIPLE"

	CardStatusCreated CardStatus = "CREATED"
	CardStatusPending CardStatus = "PENDING"
	CardStatusPaid    CardStatus = "PAID"
)

// AssignedSelfLabel marks an installment the creator owes to themselves.
// Duty listings exclude records carrying it.
const AssignedSelfLabel = "@me"

type (
	CashFlow    string
	PaymentType string
	CardType    string
	CardStatus  string

	Money struct {
		Cents int64
	}

	// Repetition describes the installment series a purchase belongs to.
	// One Transaction record is persisted per installment; records of the
	// same series share a TransactionID and differ in CurrentInstallment
	// and ExpirationDate.
	Repetition struct {
		QuantityInstallment int
		CurrentInstallment  int
		ValueInstallment    Money
	}

	// PaymentDetails references the card a purchase was made with.
	PaymentDetails struct {
		ID    uuid.UUID
		Name  string
		Color string
	}

	// Assigned is the party responsible for an installment: the purchaser
	// (self-labeled), a registered family member, or an unconfirmed email
	// contact awaiting registration.
	Assigned struct {
		AssignedID uuid.UUID
		Name       string
		Email      string
	}

	Transaction struct {
		TransactionID  uuid.UUID
		Name           string
		PurchaseDate   time.Time
		ExpirationDate time.Time
		CashFlow       CashFlow
		Type           PaymentType
		Repetition     Repetition
		PaymentDetails *PaymentDetails
		Assigned       *Assigned
		CreatedBy      uuid.UUID
		CreatedAt      time.Time
		Active         bool
	}

	Card struct {
		CardID     uuid.UUID
		WalletID   uuid.UUID
		WalletName string
		Name       string
		Color      string
		DueDay     int
		ClosingDay int
		Status     CardStatus
		Type       CardType
		Active     bool
	}

	Wallet struct {
		WalletID uuid.UUID
		UserID   uuid.UUID
		UserName string
		Name     string
		Color    string
		Active   bool
	}

	FamilyMember struct {
		FamilyID uuid.UUID
		UserID   uuid.UUID
		Name     string
		Email    string
		Kinship  string
		Active   bool
	}

	User struct {
		UserID       uuid.UUID
		Name         string
		Email        string
		PasswordHash string
		CellPhone    string
		Occupation   string
		Thumbnail    string
		ResetCode    string
		Active       bool
	}
)

var (
	ErrInvalidObject        = errors.New("invalid object")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidRepetition    = errors.New("invalid repetition")
	ErrInvalidDay           = errors.New("invalid day of month")
	ErrEmptyName            = errors.New("empty name")
	ErrUserNotFound         = errors.New("user not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrCardNotFound         = errors.New("card not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrFamilyMemberNotFound = errors.New("family member not found")
	ErrSendEmail            = errors.New("send email failed")
	ErrInvalidCode          = errors.New("invalid reset code")
	ErrEmailInUse           = errors.New("email already registered")
)

// SelfAssigned builds the sentinel assignment pointing back at the user.
func SelfAssigned(userID uuid.UUID, email string) *Assigned {
	return &Assigned{AssignedID: userID, Name: AssignedSelfLabel, Email: email}
}

// IsSelf reports whether the assignment carries the self sentinel.
func (a *Assigned) IsSelf() bool {
	return a != nil && a.Name == AssignedSelfLabel
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Repetition) Validate() error {
	if r.QuantityInstallment < 1 {
		return ErrInvalidRepetition
	}
	if r.CurrentInstallment < 1 {
		return ErrInvalidRepetition
	}
	return r.ValueInstallment.Validate()
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	if len(t.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if t.PurchaseDate.IsZero() {
		return ErrInvalidObject
	}
	switch t.CashFlow {
	case CashFlowEntry, CashFlowExit:
	default:
		return errors.New("invalid cash flow")
	}
	switch t.Type {
	case PaymentCreditCard, PaymentDebit, PaymentPix, PaymentMoney, PaymentTransfer:
	default:
		return errors.New("invalid payment type")
	}
	return t.Repetition.Validate()
}

func (c Card) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	switch c.Type {
	case CardCredit, CardDebit, CardMultiple:
	default:
		return errors.New("invalid card type")
	}
	return nil
}

func (f FamilyMember) Validate() error {
	if len(strings.TrimSpace(f.Name)) == 0 {
		return ErrEmptyName
	}
	if !strings.Contains(f.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
