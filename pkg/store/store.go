package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/limaJavier/courseplanning/pkg/model"
)

var ErrPlanNotFound = errors.New("plan not found")

var planPrefix = []byte("plan/")

type StoredPlan struct {
	Id        string
	Label     string
	CreatedAt time.Time
	Plan      model.Plan
}

// Assignments are kept in the same format the plans are exported with
type storedRecord struct {
	Id          string          `json:"id"`
	Label       string          `json:"label"`
	CreatedAt   time.Time       `json:"created_at"`
	Assignments json.RawMessage `json:"assignments"`
}

// PlanStore archives generated or imported plans so they can be validated again later
type PlanStore struct {
	db *badger.DB
}

func Open(directory string) (*PlanStore, error) {
	if directory == "" {
		return nil, errors.New("a store directory must be specified")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("cannot create store directory %v: %w", directory, err)
	}
	return open(badger.DefaultOptions(directory))
}

// Opens a store that lives only as long as the process, meant for tests
func OpenInMemory() (*PlanStore, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(options badger.Options) (*PlanStore, error) {
	db, err := badger.Open(options.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("cannot open plan store: %w", err)
	}
	return &PlanStore{db: db}, nil
}

func (store *PlanStore) Close() error {
	return store.db.Close()
}

// Archives the plan under a new time-ordered identifier
func (store *PlanStore) Save(label string, plan model.Plan) (StoredPlan, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return StoredPlan{}, fmt.Errorf("cannot generate plan id: %w", err)
	}
	assignments, err := model.MarshalPlan(plan)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("cannot encode plan: %w", err)
	}

	record := storedRecord{
		Id:          id.String(),
		Label:       label,
		CreatedAt:   time.Now().UTC(),
		Assignments: assignments,
	}
	value, err := json.Marshal(record)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("cannot encode plan: %w", err)
	}

	err = store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(planKey(record.Id), value)
	})
	if err != nil {
		return StoredPlan{}, fmt.Errorf("cannot save plan: %w", err)
	}

	return StoredPlan{Id: record.Id, Label: label, CreatedAt: record.CreatedAt, Plan: plan}, nil
}

func (store *PlanStore) Load(id string) (StoredPlan, error) {
	var stored StoredPlan
	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(planKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %v", ErrPlanNotFound, id)
		} else if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			stored, err = decode(value)
			return err
		})
	})
	if err != nil {
		return StoredPlan{}, err
	}
	return stored, nil
}

// Returns every archived plan, oldest first
func (store *PlanStore) List() ([]StoredPlan, error) {
	plans := make([]StoredPlan, 0)
	err := store.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = planPrefix
		iterator := txn.NewIterator(options)
		defer iterator.Close()

		for iterator.Seek(planPrefix); iterator.ValidForPrefix(planPrefix); iterator.Next() {
			err := iterator.Item().Value(func(value []byte) error {
				stored, err := decode(value)
				if err != nil {
					return err
				}
				plans = append(plans, stored)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list plans: %w", err)
	}
	return plans, nil
}

func (store *PlanStore) Delete(id string) error {
	return store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(planKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %v", ErrPlanNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(planKey(id))
	})
}

func planKey(id string) []byte {
	return append(append([]byte{}, planPrefix...), id...)
}

func decode(value []byte) (StoredPlan, error) {
	var record storedRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return StoredPlan{}, fmt.Errorf("corrupted plan record: %w", err)
	}
	plan, err := model.PlanFromJsonBytes(record.Assignments)
	if err != nil {
		return StoredPlan{}, fmt.Errorf("corrupted plan record %v: %w", record.Id, err)
	}
	return StoredPlan{Id: record.Id, Label: record.Label, CreatedAt: record.CreatedAt, Plan: plan}, nil
}
