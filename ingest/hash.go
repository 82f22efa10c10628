package ingest

import "github.com/minio/highwayhash"

// fingerprintKey is an arbitrary fixed 32-byte key; the fingerprint only
// needs to be stable within one process run, not cryptographically keyed.
var fingerprintKey = []byte("cherry-ingest-fingerprint-key!!!")

func fingerprint(data []byte) uint64 {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0
	}
	_, _ = h.Write(data)
	return h.Sum64()
}
