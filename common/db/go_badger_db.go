// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"path"

	log "github.com/33cn/treasureboard/common/log"
	"github.com/dgraph-io/badger"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

//GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// badger logs through log15 instead of the std logger
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, v ...interface{})   { blog.Error(fmt.Sprintf(f, v...)) }
func (badgerLogger) Warningf(f string, v ...interface{}) { blog.Warn(fmt.Sprintf(f, v...)) }
func (badgerLogger) Infof(f string, v ...interface{})    { blog.Debug(fmt.Sprintf(f, v...)) }
func (badgerLogger) Debugf(f string, v ...interface{})   { blog.Debug(fmt.Sprintf(f, v...)) }

//NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	dbPath := path.Join(dir, name+".badger")
	opts := badger.DefaultOptions(dbPath).WithLogger(badgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

//Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

//Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

//Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

//PrefixScan scan
func (db *GoBadgerDB) PrefixScan(prefix []byte) ([][]byte, error) {
	var values [][]byte
	err := db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

//Close close
func (db *GoBadgerDB) Close() {
	if err := db.db.Close(); err != nil {
		blog.Error("Close", "error", err)
	}
}

//NewBatch new
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db.db}
}

type batchOp struct {
	key   []byte
	value []byte
	del   bool
}

type goBadgerDBBatch struct {
	db  *badger.DB
	ops []batchOp
}

func (mBatch *goBadgerDBBatch) Set(key, value []byte) {
	mBatch.ops = append(mBatch.ops, batchOp{key: cloneBytes(key), value: cloneBytes(value)})
}

func (mBatch *goBadgerDBBatch) Delete(key []byte) {
	mBatch.ops = append(mBatch.ops, batchOp{key: cloneBytes(key), del: true})
}

// Write commits all ops in one transaction
func (mBatch *goBadgerDBBatch) Write() error {
	return mBatch.db.Update(func(txn *badger.Txn) error {
		for _, op := range mBatch.ops {
			var err error
			if op.del {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
