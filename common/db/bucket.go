package db

// Bucket
type Bucket interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) bool
	Set(key []byte, value []byte) error
	Delete(key []byte) error
}

type BucketID string

// PrefixLen is the length of every bucket ID.
const PrefixLen = 2

//	Bucket ID
const (
	// Contact book of an owner
	PrefixContactBook BucketID = "CB"

	// Aliases sponsored by an owner
	PrefixSponsored BucketID = "SP"

	// Information for management
	PrefixManagement BucketID = "MI"

	// Last accepted request nonce of an owner
	PrefixNonce BucketID = "NC"

	// Ledger balance per medium and owner
	PrefixBalance BucketID = "BL"

	// Statistics
	PrefixStatistics BucketID = "ST"
)

// internalKey returns key prefixed with the bucket's id.
func internalKey(id BucketID, key []byte) []byte {
	buf := make([]byte, len(key)+len(id))
	copy(buf, id)
	copy(buf[len(id):], key)
	return buf
}

// nonNilBytes returns empty []byte if bz is nil
func nonNilBytes(bz []byte) []byte {
	if bz == nil {
		return []byte{}
	}
	return bz
}

func copyBytes(bz []byte) []byte {
	if bz == nil {
		return nil
	}
	c := make([]byte, len(bz))
	copy(c, bz)
	return c
}
