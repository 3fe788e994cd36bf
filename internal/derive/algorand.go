// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package derive

import (
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
)

// algorandMnemonicWords is the length of an Algorand account mnemonic.
const algorandMnemonicWords = 25

// algorandAddress returns the address of a 25-word Algorand mnemonic.
func algorandAddress(phrase string) (string, error) {
	words := strings.Fields(phrase)
	if len(words) != algorandMnemonicWords {
		return "", fmt.Errorf("%w: expected %d words, got %d", ErrInvalidPhrase, algorandMnemonicWords, len(words))
	}

	sk, err := mnemonic.ToPrivateKey(strings.Join(words, " "))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	defer func() {
		for i := range sk {
			sk[i] = 0
		}
	}()

	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return "", fmt.Errorf("failed to load account: %w", err)
	}
	return account.Address.String(), nil
}
