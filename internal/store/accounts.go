package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/finbook-dev/finbook/internal/model"
)

// PutAccount inserts or updates an account. A zero ID allocates one.
func (s *Store) PutAccount(account model.Account) (int64, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if account.ID == 0 {
			id, err := nextID(tx, BucketAccounts)
			if err != nil {
				return err
			}
			account.ID = id
		}
		return put(tx, BucketAccounts, account.ID, account)
	})
	if err != nil {
		return 0, err
	}
	return account.ID, nil
}

// GetAccount retrieves one account by ID.
func (s *Store) GetAccount(id int64) (model.Account, error) {
	var account model.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketAccounts)).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &account)
	})
	return account, err
}

// ListAccounts returns the full chart of accounts.
func (s *Store) ListAccounts() ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketAccounts)).ForEach(func(_, data []byte) error {
			var account model.Account
			if err := json.Unmarshal(data, &account); err != nil {
				return fmt.Errorf("decoding account row: %w", err)
			}
			accounts = append(accounts, account)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// SeedAccounts inserts accounts that are not already present, keyed by
// code. Used by init to install the default chart without clobbering
// user edits.
func (s *Store) SeedAccounts(accounts []model.Account) error {
	existing, err := s.ListAccounts()
	if err != nil {
		return err
	}
	byCode := make(map[string]bool, len(existing))
	for _, a := range existing {
		byCode[a.Code] = true
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, account := range accounts {
			if byCode[account.Code] {
				continue
			}
			id, err := nextID(tx, BucketAccounts)
			if err != nil {
				return err
			}
			account.ID = id
			if err := put(tx, BucketAccounts, id, account); err != nil {
				return err
			}
		}
		return nil
	})
}
