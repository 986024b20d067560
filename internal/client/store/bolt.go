// Package store persists small client-side state (the auth token and the
// recent search queries) in a local bbolt file between CLI runs.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"resourcehub/internal/filex"
)

const (
	authBucket   = "auth"
	searchBucket = "search"

	tokenKey  = "token"
	recentKey = "recent"

	// maxRecentQueries bounds the remembered-query list.
	maxRecentQueries = 20
)

// Bolt is a file-backed store. It satisfies api.TokenProvider: a missing
// token reads as empty, which the gateway treats as anonymous.
type Bolt struct {
	db *bbolt.DB
}

// Open creates or opens the store file, creating parent directories and
// buckets as needed.
func Open(path string) (*Bolt, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{authBucket, searchBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init store buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

// Token returns the stored credential token, or empty when none is stored.
func (b *Bolt) Token() (string, error) {
	var token string
	err := b.db.View(func(tx *bbolt.Tx) error {
		token = string(tx.Bucket([]byte(authBucket)).Get([]byte(tokenKey)))
		return nil
	})
	return token, err
}

// SetToken stores the credential token.
func (b *Bolt) SetToken(token string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Put([]byte(tokenKey), []byte(token))
	})
}

// ClearToken removes the stored token, e.g. on logout.
func (b *Bolt) ClearToken() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Delete([]byte(tokenKey))
	})
}

// RecentQueries returns remembered search queries, newest first.
func (b *Bolt) RecentQueries() ([]string, error) {
	var queries []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(searchBucket)).Get([]byte(recentKey))
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, &queries)
	})
	if err != nil {
		return nil, err
	}
	return queries, nil
}

// RememberQuery prepends q to the recent list, deduplicating and keeping at
// most maxRecentQueries entries. Blank queries are ignored.
func (b *Bolt) RememberQuery(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(searchBucket))

		var queries []string
		if data := bucket.Get([]byte(recentKey)); len(data) > 0 {
			if err := json.Unmarshal(data, &queries); err != nil {
				queries = nil // a corrupt list is rebuilt
			}
		}

		next := make([]string, 0, len(queries)+1)
		next = append(next, q)
		for _, old := range queries {
			if old != q {
				next = append(next, old)
			}
		}
		if len(next) > maxRecentQueries {
			next = next[:maxRecentQueries]
		}

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(recentKey), data)
	})
}
