// Package resultstore persists the results of past comparison runs. The
// comparison core itself owns no persisted state; the store is an optional
// collaborator used by the CLI to keep a history of runs.
package resultstore

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/ADR3N4LYN3/pdf-compare/go/fileutil"
	"github.com/ADR3N4LYN3/pdf-compare/go/stats"
)

// runsBucket is the name of the boltDB bucket holding all run records.
var runsBucket = []byte("runs")

// BeginningOfTime is used as the start time in order to return all runs in
// GetRunIDs.
var BeginningOfTime = time.Date(2015, time.January, 2, 15, 4, 5, 0, time.UTC)

// ResultRec is the record stored per comparison run.
type ResultRec struct {
	// RunID is the unique ID of the run.
	RunID string

	// Timestamp is when the run completed.
	Timestamp time.Time

	// Stats are the aggregate results of the run.
	Stats *stats.ComparisonStats
}

// ResultStore stores and retrieves ResultRecs by runID.
type ResultStore interface {
	// Get returns the ResultRec for the given runID, or nil if it does not
	// exist.
	Get(runID string) (*ResultRec, error)

	// GetRunIDs returns the IDs of all stored runs whose timestamps fall in
	// between the start and end times, sorted by timestamp.
	GetRunIDs(start, end time.Time) ([]string, error)

	// Put adds a ResultRec to the store, overwriting any record with the
	// same runID.
	Put(rec *ResultRec) error

	// RemoveRun removes the record associated with the runID.
	RemoveRun(runID string) error

	// Close releases the underlying database.
	Close() error
}

// BoltResultStore implements the ResultStore interface with a boltDB
// instance.
type BoltResultStore struct {
	db *bolt.DB
}

// NewBoltResultStore returns a new instance of BoltResultStore, using the
// given boltDir and boltName to create the boltDB instance.
func NewBoltResultStore(boltDir, boltName string) (ResultStore, error) {
	boltDir, err := fileutil.EnsureDirExists(boltDir)
	if err != nil {
		return nil, err
	}
	db, err := bolt.Open(path.Join(boltDir, boltName), 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltResultStore{db: db}, nil
}

// Get uses the runID as the key to fetch the serialized ResultRec, and
// returns it after decoding. A missing record returns (nil, nil).
func (b *BoltResultStore) Get(runID string) (*ResultRec, error) {
	var rec *ResultRec
	viewFn := func(tx *bolt.Tx) error {
		bytes := tx.Bucket(runsBucket).Get([]byte(runID))
		if bytes == nil {
			return nil
		}
		rec = &ResultRec{}
		return json.Unmarshal(bytes, rec)
	}
	if err := b.db.View(viewFn); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetRunIDs returns all the runIDs stored in the database whose timestamps
// fall within [start, end], sorted by timestamp.
func (b *BoltResultStore) GetRunIDs(start, end time.Time) ([]string, error) {
	type idWithTime struct {
		id string
		ts time.Time
	}
	var runs []idWithTime
	viewFn := func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			rec := &ResultRec{}
			if err := json.Unmarshal(v, rec); err != nil {
				return err
			}
			if !rec.Timestamp.Before(start) && !rec.Timestamp.After(end) {
				runs = append(runs, idWithTime{id: rec.RunID, ts: rec.Timestamp})
			}
			return nil
		})
	}
	if err := b.db.View(viewFn); err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ts.Before(runs[j].ts) })
	ret := make([]string, 0, len(runs))
	for _, r := range runs {
		ret = append(ret, r.id)
	}
	return ret, nil
}

// Put serializes the ResultRec and stores it using its runID as the key.
func (b *BoltResultStore) Put(rec *ResultRec) error {
	if rec.RunID == "" {
		return fmt.Errorf("cannot store a result with an empty runID")
	}
	updateFn := func(tx *bolt.Tx) error {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(runsBucket).Put([]byte(rec.RunID), encoded)
	}
	return b.db.Update(updateFn)
}

// RemoveRun removes the record associated with the runID from the store.
func (b *BoltResultStore) RemoveRun(runID string) error {
	updateFn := func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Delete([]byte(runID))
	}
	return b.db.Update(updateFn)
}

// Close releases the underlying boltDB.
func (b *BoltResultStore) Close() error {
	return b.db.Close()
}
