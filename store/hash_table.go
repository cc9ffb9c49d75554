package store

// HashTable is the in-memory keyspace. It does no locking of its own;
// the owning Store serializes every access.
type HashTable struct {
	index map[string]*Entry
}

// NewHashTable creates a new HashTable
func NewHashTable() *HashTable {
	return &HashTable{
		index: make(map[string]*Entry),
	}
}

// Put adds or replaces a key in the HashTable
func (ht *HashTable) Put(key string, entry *Entry) {
	ht.index[key] = entry
}

// Get retrieves a key from the HashTable
func (ht *HashTable) Get(key string) (*Entry, bool) {
	entry, exists := ht.index[key]
	return entry, exists
}

// Delete removes a key from the HashTable
func (ht *HashTable) Delete(key string) {
	delete(ht.index, key)
}

// List returns all keys in the HashTable
func (ht *HashTable) List() []string {
	keys := make([]string, 0, len(ht.index))
	for key := range ht.index {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of keys held
func (ht *HashTable) Len() int {
	return len(ht.index)
}

// Stats returns the key count and the total value size in bytes
func (ht *HashTable) Stats() (int, int64) {
	var totalSize int64
	for _, entry := range ht.index {
		totalSize += int64(entry.Size())
	}
	return len(ht.index), totalSize
}
