package util

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// NewObjectID returns a 24-character lowercase hex identifier laid out like a
// MongoDB ObjectID: 4 timestamp bytes followed by 8 random bytes.
func NewObjectID() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(raw[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(raw[:])
}

// IsValidObjectID reports whether id is a well-formed 24-character hex
// identifier.
func IsValidObjectID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
