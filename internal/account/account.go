package account

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mycode"

// accountKey is the keyring entry holding the remembered account.
const accountKey = "account"

// Account is a signed-in identity. PhotoURL may be empty when the
// identity provider supplied no display photo.
type Account struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

// Provider yields an optional signed-in account. An absent account is
// not an error: SilentSignIn returns (nil, nil) when nobody is signed
// in, and callers fall back to local mode.
type Provider interface {
	SilentSignIn() (*Account, error)
	SignIn(acct Account) error
	SignOut() error
}

// KeyringProvider implements Provider on the operating system keyring.
type KeyringProvider struct{}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mycode/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mycode-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SilentSignIn returns the remembered account, or (nil, nil) when no
// account has been stored.
func (KeyringProvider) SilentSignIn() (*Account, error) {
	ring, err := openKeyring()
	if err != nil {
		return nil, err
	}

	item, err := ring.Get(accountKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stored account: %w", err)
	}

	var acct Account
	if err := json.Unmarshal(item.Data, &acct); err != nil {
		return nil, fmt.Errorf("decoding stored account: %w", err)
	}
	return &acct, nil
}

// SignIn remembers the account for future silent sign-ins.
func (KeyringProvider) SignIn(acct Account) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}

	if err := ring.Set(keyring.Item{Key: accountKey, Data: data}); err != nil {
		return fmt.Errorf("storing account: %w", err)
	}
	return nil
}

// SignOut forgets the remembered account. Signing out when nobody is
// signed in is a no-op.
func (KeyringProvider) SignOut() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(accountKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing stored account: %w", err)
	}
	return nil
}
