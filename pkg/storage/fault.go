package storage

import (
	"errors"
	"sync"
)

// ErrInjected is the default error returned by FaultStore rules.
var ErrInjected = errors.New("storage: injected failure")

// Op names a Store operation.
type Op uint8

const (
	OpGet Op = iota
	OpSet
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Call records one operation seen by a FaultStore.
type Call struct {
	Op  Op
	Key string
	Err error // error returned to the caller
}

type faultRule struct {
	op  Op
	key string
	err error
}

// FaultStore wraps a Store, records every call and fails operations that
// match an installed rule. Failed calls do not reach the wrapped store.
// Intended for exercising partial-failure paths in tests and tools.
//
// All methods are safe for concurrent use.
type FaultStore struct {
	inner Store

	mu    sync.Mutex
	rules []faultRule
	calls []Call
}

// NewFaultStore wraps inner.
func NewFaultStore(inner Store) *FaultStore {
	return &FaultStore{inner: inner}
}

// FailOn makes op on key fail with err (ErrInjected if err is nil) until
// the rule is cleared. An empty key matches every key.
func (f *FaultStore) FailOn(op Op, key string, err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, faultRule{op: op, key: key, err: err})
}

// ClearFaults removes all rules.
func (f *FaultStore) ClearFaults() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
}

// Calls returns the operations seen so far, oldest first.
func (f *FaultStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// ResetCalls forgets recorded calls.
func (f *FaultStore) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FaultStore) fault(op Op, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rules {
		if r.op == op && (r.key == "" || r.key == key) {
			return r.err
		}
	}
	return nil
}

func (f *FaultStore) record(op Op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Key: key, Err: err})
}

func (f *FaultStore) Get(key string) ([]byte, error) {
	if err := f.fault(OpGet, key); err != nil {
		f.record(OpGet, key, err)
		return nil, err
	}
	v, err := f.inner.Get(key)
	f.record(OpGet, key, err)
	return v, err
}

func (f *FaultStore) Set(key string, value []byte) error {
	err := f.fault(OpSet, key)
	if err == nil {
		err = f.inner.Set(key, value)
	}
	f.record(OpSet, key, err)
	return err
}

func (f *FaultStore) Delete(key string) error {
	err := f.fault(OpDelete, key)
	if err == nil {
		err = f.inner.Delete(key)
	}
	f.record(OpDelete, key, err)
	return err
}

// Keys forwards to the wrapped store if it implements Lister. Listing is
// not recorded and cannot be failed.
func (f *FaultStore) Keys(prefix string) ([]string, error) {
	lister, ok := f.inner.(Lister)
	if !ok {
		return nil, errors.New("storage: wrapped store cannot list keys")
	}
	return lister.Keys(prefix)
}

var (
	_ Store  = (*FaultStore)(nil)
	_ Lister = (*FaultStore)(nil)
)
