package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/momentum/internal/session"
)

var schemaVersionKey = []byte("schema_version")

// migrations run in order inside the transaction that opens the database.
// The index of each migration is the schema version it upgrades from.
var migrations = []func(tx *bolt.Tx) error{
	rebuildActiveIndex,
}

func schemaVersion(tx *bolt.Tx) uint64 {
	v := tx.Bucket([]byte(metaBucket)).Get(schemaVersionKey)
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

func setSchemaVersion(tx *bolt.Tx, version uint64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, version)

	return tx.Bucket([]byte(metaBucket)).Put(schemaVersionKey, v)
}

func migrate(tx *bolt.Tx) error {
	version := schemaVersion(tx)

	for i := version; i < uint64(len(migrations)); i++ {
		if err := migrations[i](tx); err != nil {
			return fmt.Errorf("migrating schema from version %d: %w", i, err)
		}
	}

	return setSchemaVersion(tx, uint64(len(migrations)))
}

// rebuildActiveIndex recreates the per-user open-session index from the
// sessions themselves. It fails if a user has more than one open session.
func rebuildActiveIndex(tx *bolt.Tx) error {
	if err := tx.DeleteBucket([]byte(activeBucket)); err != nil {
		return err
	}

	active, err := tx.CreateBucket([]byte(activeBucket))
	if err != nil {
		return err
	}

	sessions := tx.Bucket([]byte(sessionBucket))

	return sessions.ForEachBucket(func(k []byte) error {
		user := append([]byte(nil), k...)
		b := sessions.Bucket(user)

		return b.ForEach(func(_, v []byte) error {
			var sess session.Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}

			if !sess.Status.Open() {
				return nil
			}

			if active.Get(user) != nil {
				return session.ErrAlreadyRunning
			}

			return active.Put(user, []byte(sess.ID))
		})
	})
}
