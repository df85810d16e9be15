package main

import (
	"strings"

	"github.com/pkg/errors"

	"cosmossdk.io/math"

	"github.com/steak-hub/steak/x/hub/types"
)

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(strings.TrimSpace(s))
	if !ok || amount.IsNegative() {
		return math.Int{}, errors.Errorf("invalid amount %q", s)
	}

	return amount, nil
}

// parseAmounts parses "alice=100,bob=200" keeping the given order.
func parseAmounts(s string) ([]string, []math.Int, error) {
	var (
		names   []string
		amounts []math.Int
	)

	seen := make(map[string]bool)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, nil, errors.Errorf("invalid entry %q, expected name=amount", entry)
		}
		if seen[name] {
			return nil, nil, errors.Errorf("duplicate entry for %s", name)
		}
		seen[name] = true

		amount, err := parseAmount(value)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "entry %s", name)
		}

		names = append(names, name)
		amounts = append(amounts, amount)
	}

	return names, amounts, nil
}

func parseDelegations(s, denom string) ([]types.Delegation, error) {
	names, amounts, err := parseAmounts(s)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, types.ErrNoValidators
	}

	delegations := make([]types.Delegation, len(names))
	for i := range names {
		delegations[i] = types.NewDelegation(names[i], amounts[i], denom)
	}

	return delegations, nil
}

func parseMiningPowers(s string) (map[string]math.Int, math.Int, error) {
	names, amounts, err := parseAmounts(s)
	if err != nil {
		return nil, math.Int{}, err
	}

	powers := make(map[string]math.Int, len(names))
	total := math.ZeroInt()
	for i, name := range names {
		powers[name] = amounts[i]
		total = total.Add(amounts[i])
	}

	return powers, total, nil
}

func parseDec(s string) (math.LegacyDec, error) {
	dec, err := math.LegacyNewDecFromStr(strings.TrimSpace(s))
	if err != nil {
		return math.LegacyDec{}, errors.Wrapf(err, "invalid decimal %q", s)
	}

	return dec, nil
}
