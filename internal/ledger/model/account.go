package model

import "time"

// Account aggregates balances of one payment address.
type Account struct {
	AccountID      string
	PaymentAddress string
	CreatedAt      time.Time
	Balances       map[string]int64
}
