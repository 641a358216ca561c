package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/finbook-dev/finbook/internal/model"
)

// SplitFilter narrows ListSplits. Zero fields match everything.
type SplitFilter struct {
	TransactionID int64
	AccountID     int64
}

// CreateEntry writes a voucher header and its splits as one atomic
// unit: if any row fails, the whole bolt transaction rolls back and
// no partial voucher is ever visible to readers.
func (s *Store) CreateEntry(header model.Transaction, splits []model.Split) (int64, error) {
	var txID int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, BucketTransactions)
		if err != nil {
			return err
		}
		header.ID = id
		if err := put(tx, BucketTransactions, id, header); err != nil {
			return err
		}

		for i := range splits {
			splitID, err := nextID(tx, BucketSplits)
			if err != nil {
				return err
			}
			splits[i].ID = splitID
			splits[i].TransactionID = id
			if err := put(tx, BucketSplits, splitID, splits[i]); err != nil {
				return err
			}
		}

		txID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return txID, nil
}

// ListTransactions returns all voucher headers in insertion order.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketTransactions)).ForEach(func(_, data []byte) error {
			var transaction model.Transaction
			if err := json.Unmarshal(data, &transaction); err != nil {
				return fmt.Errorf("decoding transaction row: %w", err)
			}
			transactions = append(transactions, transaction)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListSplits returns splits matching the filter in insertion order.
func (s *Store) ListSplits(filter SplitFilter) ([]model.Split, error) {
	var splits []model.Split
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketSplits)).ForEach(func(_, data []byte) error {
			var split model.Split
			if err := json.Unmarshal(data, &split); err != nil {
				return fmt.Errorf("decoding split row: %w", err)
			}
			if filter.TransactionID != 0 && split.TransactionID != filter.TransactionID {
				return nil
			}
			if filter.AccountID != 0 && split.AccountID != filter.AccountID {
				return nil
			}
			splits = append(splits, split)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return splits, nil
}

// UpdateTransactionStatus bulk-updates voucher statuses. Unknown IDs
// are reported as ErrNotFound and nothing is changed.
func (s *Store) UpdateTransactionStatus(ids []int64, status model.TransactionStatus) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketTransactions))
		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
			}
			var transaction model.Transaction
			if err := json.Unmarshal(data, &transaction); err != nil {
				return fmt.Errorf("decoding transaction row: %w", err)
			}
			transaction.Status = status
			if err := put(tx, BucketTransactions, id, transaction); err != nil {
				return err
			}
		}
		return nil
	})
}
