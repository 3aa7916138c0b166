package constants

// Object ID ranges for runtime instances created by this engine.
// 0 is reserved as invalid.
const (
	ObjectIDItemStart uint32 = 0x30000000
	ObjectIDItemEnd   uint32 = 0x3FFFFFFF
)

// IsItemObjectID returns true if objectID is in the generated item range.
// Item range: 805306368-1073741823 (0x30000000-0x3FFFFFFF)
func IsItemObjectID(objectID uint32) bool {
	return objectID >= ObjectIDItemStart && objectID <= ObjectIDItemEnd
}
