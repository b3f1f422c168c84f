package db

// Batch collects writes that are applied all together or not at all.
type Batch interface {
	New()
	Len() int
	Set(id BucketID, key, value []byte)
	Delete(id BucketID, key []byte)
	Write() error
	Reset()
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// opBatch keeps operations in memory for backends that apply them in a
// single transaction.
type opBatch struct {
	ops []batchOp
}

func (b *opBatch) New() {
	b.ops = make([]batchOp, 0)
}

func (b *opBatch) Len() int {
	return len(b.ops)
}

func (b *opBatch) Set(id BucketID, key, value []byte) {
	b.ops = append(b.ops, batchOp{key: internalKey(id, key), value: copyBytes(nonNilBytes(value))})
}

func (b *opBatch) Delete(id BucketID, key []byte) {
	b.ops = append(b.ops, batchOp{key: internalKey(id, key), delete: true})
}

func (b *opBatch) Reset() {
	b.ops = b.ops[:0]
}
