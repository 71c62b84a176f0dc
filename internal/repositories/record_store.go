package repositories

// RecordStore defines the interface for persisted collection blobs. Every
// collection (cart, wishlist, ratings) is stored as a single JSON document
// under a (profile, name) key and replaced as a whole on each write.
type RecordStore interface {
	// Read returns the stored document, or nil when the key is absent.
	Read(profile, name string) ([]byte, error)
	// Write replaces the stored document for the key.
	Write(profile, name string, data []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(profile, name string) error
}
