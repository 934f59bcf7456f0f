package storage

// NewGCSStoreForTest builds a store without a client for naming tests.
func NewGCSStoreForTest(bucket, prefix string) *GCSStore {
	return newGCSStore(nil, bucket, prefix)
}
