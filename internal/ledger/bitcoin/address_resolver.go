// Package bitcoin resolves payment addresses and transaction ids of the underlying chain.
package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-ledger/internal/ledger/model"
)

// AddressResolver checks payment addresses against the params of one network.
type AddressResolver struct {
	params *chaincfg.Params
}

// NewAddressResolver initializes a resolver accepting addresses of the provided network.
func NewAddressResolver(network model.Network) (*AddressResolver, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &AddressResolver{params: params}, nil
}

// ResolveAddress decodes address and returns its canonical encoding.
func (r *AddressResolver) ResolveAddress(address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("empty address")
	}
	decoded, err := btcutil.DecodeAddress(address, r.params)
	if err != nil {
		return "", fmt.Errorf("decode address %q: %w", address, err)
	}
	if !decoded.IsForNet(r.params) {
		return "", fmt.Errorf("address %q is not valid on %s", address, r.params.Name)
	}
	return decoded.EncodeAddress(), nil
}

// ValidateTxID checks that txid is a hex encoded 32-byte transaction hash.
func ValidateTxID(txid string) error {
	if len(txid) != chainhash.MaxHashStringSize {
		return fmt.Errorf("txid length %d, want %d", len(txid), chainhash.MaxHashStringSize)
	}
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return fmt.Errorf("decode txid: %w", err)
	}
	return nil
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// ValidateTxID checks txid with the package level ValidateTxID.
func (r *AddressResolver) ValidateTxID(txid string) error {
	return ValidateTxID(txid)
}
