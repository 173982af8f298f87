package model

// PasswordExtension is the extension key carrying the shared notification secret.
const PasswordExtension = "password"

// NotificationEvent is a committed-ledger event handed to the fanout.
type NotificationEvent struct {
	Channel    string
	Payload    []byte
	Extensions map[string]string
}

// AccountNotification is the payload published for an affected account.
type AccountNotification struct {
	TxID      string              `json:"txid"`
	AccountID string              `json:"account_id"`
	Address   string              `json:"address"`
	Entries   []NotificationEntry `json:"entries"`
	Balances  map[string]int64    `json:"balances"`
}

// NotificationEntry is a ledger entry as published to subscribers.
type NotificationEntry struct {
	EntryID string    `json:"entry_id"`
	Asset   string    `json:"asset"`
	Amount  int64     `json:"amount"`
	Type    EntryType `json:"type"`
}
