package kvdb

const (
	// RequestsBucket holds index-request progress, keyed by request id.
	RequestsBucket = "requests"
	// DocumentsBucket holds per-document indexing metadata, keyed by
	// document path.
	DocumentsBucket = "documents"
)

type DB interface {
	Set(bucket string, key string, value string) error
	Get(bucket string, key string) (string, error)
	Delete(bucket string, key string) error
	Close() error
}
