package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	btcLegacyRegex = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
	btcBech32Regex = regexp.MustCompile(`^bc1[ac-hj-np-z02-9]{11,71}$`)
	ethRegex       = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	ltcLegacyRegex = regexp.MustCompile(`^[LM3][a-km-zA-HJ-NP-Z1-9]{26,33}$`)
	ltcBech32Regex = regexp.MustCompile(`^ltc1[ac-hj-np-z02-9]{11,71}$`)
	xrpRegex       = regexp.MustCompile(`^r[1-9A-HJ-NP-Za-km-z]{24,34}$`)
	trxRegex       = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

// networksByCurrency lists the networks each supported currency settles on.
var networksByCurrency = map[string][]string{
	"BTC":  {"BTC"},
	"ETH":  {"ERC20"},
	"LTC":  {"LTC"},
	"XRP":  {"XRP"},
	"USDT": {"ERC20", "TRC20", "BEP20"},
}

// ValidateCurrency checks that currency is one of the supported assets.
func ValidateCurrency(currency string) error {
	if _, ok := networksByCurrency[strings.ToUpper(currency)]; !ok {
		return errors.New("Unsupported currency.")
	}
	return nil
}

// ValidateNetwork checks that currency settles on network.
func ValidateNetwork(currency, network string) error {
	networks, ok := networksByCurrency[strings.ToUpper(currency)]
	if !ok {
		return errors.New("Unsupported currency.")
	}
	for _, n := range networks {
		if strings.EqualFold(n, network) {
			return nil
		}
	}
	return errors.New("Currency is not available on the selected network.")
}

// ValidateWalletAddress checks addr against the address format of currency.
// Hex (EVM) addresses are accepted for any ERC20/BEP20-settled currency.
func ValidateWalletAddress(addr, currency string) error {
	if addr == "" {
		return errors.New("Wallet address is required.")
	}
	switch strings.ToUpper(currency) {
	case "BTC":
		if btcLegacyRegex.MatchString(addr) || btcBech32Regex.MatchString(addr) {
			return nil
		}
	case "ETH":
		if ethRegex.MatchString(addr) {
			return nil
		}
	case "LTC":
		if ltcLegacyRegex.MatchString(addr) || ltcBech32Regex.MatchString(addr) {
			return nil
		}
	case "XRP":
		if xrpRegex.MatchString(addr) {
			return nil
		}
	case "USDT":
		if ethRegex.MatchString(addr) || trxRegex.MatchString(addr) {
			return nil
		}
	default:
		return errors.New("Unsupported currency.")
	}
	return errors.New("Invalid wallet address for the selected currency.")
}
