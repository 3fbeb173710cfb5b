package flow

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Checkpoint is a serializable snapshot of a paused run: the node the
// run stopped at and the set of node ids already executed.
//
// The engine produces a checkpoint when a run pauses at StopAtNode and
// consumes one via RunOptions.Resume. Persisting and transporting the
// encoded bytes is the caller's responsibility; the engine treats the
// value as opaque input/output. JobID ties the resumed run to the
// original audit trail, so the combined trail across the pause boundary
// reads as a single job.
type Checkpoint struct {
	JobID         string   `json:"job_id,omitempty"`
	CurrentNodeID string   `json:"current_node_id"`
	Visited       []string `json:"visited"`

	// Checksum guards the encoded form against torn or tampered
	// storage. Format: "sha256:" + hex digest. Populated by Encode,
	// verified by DecodeCheckpoint.
	Checksum string `json:"checksum,omitempty"`
}

// Encode serializes the checkpoint to JSON with an integrity checksum.
func (c *Checkpoint) Encode() ([]byte, error) {
	snapshot := *c
	snapshot.Checksum = c.computeChecksum()
	return json.Marshal(&snapshot)
}

// DecodeCheckpoint deserializes an encoded checkpoint and verifies its
// checksum when present. A mismatch yields a CheckpointError: the bytes
// were corrupted in storage or transit and must not seed a resume.
func DecodeCheckpoint(data []byte) (*Checkpoint, error) {
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, &CheckpointError{Message: "decode: " + err.Error()}
	}
	if cp.Checksum != "" && cp.Checksum != cp.computeChecksum() {
		return nil, &CheckpointError{Message: "checksum mismatch"}
	}
	return &cp, nil
}

// computeChecksum hashes the checkpoint's identifying fields. Visited
// is hashed in sorted order so the digest is independent of how the
// caller ordered the slice.
func (c *Checkpoint) computeChecksum() string {
	h := sha256.New()
	h.Write([]byte(c.JobID))
	h.Write([]byte{0})
	h.Write([]byte(c.CurrentNodeID))
	visited := make([]string, len(c.Visited))
	copy(visited, c.Visited)
	sort.Strings(visited)
	for _, id := range visited {
		h.Write([]byte{0})
		h.Write([]byte(id))
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}
