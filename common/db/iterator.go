package db

import "bytes"

// Iterator walks raw keys in [start, limit). Keys carry the bucket prefix.
type Iterator interface {
	New(start []byte, limit []byte)
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

type kvPair struct {
	key   []byte
	value []byte
}

// sliceIterator serves pairs collected inside a read transaction.
type sliceIterator struct {
	pairs []kvPair
	index int
	err   error
}

func (i *sliceIterator) Next() bool {
	if i.index+1 >= len(i.pairs) {
		i.index = len(i.pairs)
		return false
	}
	i.index++
	return true
}

func (i *sliceIterator) Key() []byte {
	if i.index < 0 || i.index >= len(i.pairs) {
		return nil
	}
	return i.pairs[i.index].key
}

func (i *sliceIterator) Value() []byte {
	if i.index < 0 || i.index >= len(i.pairs) {
		return nil
	}
	return i.pairs[i.index].value
}

func (i *sliceIterator) Release() {
	i.pairs = nil
	i.index = -1
}

func (i *sliceIterator) Error() error {
	return i.err
}

func (i *sliceIterator) reset(pairs []kvPair, err error) {
	i.pairs = pairs
	i.index = -1
	i.err = err
}

func inRange(key []byte, limit []byte) bool {
	return limit == nil || bytes.Compare(key, limit) < 0
}
