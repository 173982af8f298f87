package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// notify publishes one event per affected account. Every event is attempted; the
// failures are joined.
func (l *AccountLedger) notify(ctx context.Context, txid string, result model.ProcessResult) error {
	byAccount := make(map[string][]model.NotificationEntry, len(result.Accounts))
	for _, entry := range result.Entries {
		byAccount[entry.AccountRef] = append(byAccount[entry.AccountRef], model.NotificationEntry{
			EntryID: entry.EntryID,
			Asset:   entry.Asset,
			Amount:  entry.Amount,
			Type:    entry.Type,
		})
	}

	var errs []error
	for _, account := range result.Accounts {
		channel := l.Channel(account.PaymentAddress)
		payload, err := json.Marshal(model.AccountNotification{
			TxID:      txid,
			AccountID: account.AccountID,
			Address:   account.PaymentAddress,
			Entries:   byAccount[account.AccountID],
			Balances:  account.Balances,
		})
		if err != nil {
			errs = append(errs, &model.DeliveryError{Channel: channel, Err: fmt.Errorf("encode notification: %w", err)})
			continue
		}

		err = l.publisher.Publish(ctx, model.NotificationEvent{Channel: channel, Payload: payload})
		if err == nil {
			continue
		}
		var delivery *model.DeliveryError
		if !errors.As(err, &delivery) {
			err = &model.DeliveryError{Channel: channel, Err: err}
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Channel returns the notification channel of address.
func (l *AccountLedger) Channel(address string) string {
	return l.channelPrefix + ":" + address
}
