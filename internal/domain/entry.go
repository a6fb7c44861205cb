package domain

import "time"

// Sign marks a ledger entry as income or expenditure.
type Sign string

const (
	SignCredit Sign = "credit"
	SignDebit  Sign = "debit"
)

// Valid reports whether s is one of the two recognized signs.
func (s Sign) Valid() bool {
	return s == SignCredit || s == SignDebit
}

// Entry is one dated ledger record. Amount is a whole number in the
// smallest currency unit. Date carries only the calendar day,
// normalized to UTC midnight.
type Entry struct {
	ID          int64
	Description string
	Amount      int64
	Date        time.Time
	Sign        Sign

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalOf sums entries into a signed running total: credit adds,
// debit subtracts. The result does not depend on input order.
func TotalOf(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		switch e.Sign {
		case SignCredit:
			total += e.Amount
		case SignDebit:
			total -= e.Amount
		}
	}
	return total
}
