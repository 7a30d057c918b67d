// Package tfrecord writes and reads TFRecord files of tf.train.Example
// records, the format consumed by tf.data.TFRecordDataset.
//
// Each record is framed as
//
//	uint64 length | uint32 masked crc32c(length) | data | uint32 masked crc32c(data)
//
// with all integers little-endian.
package tfrecord

import (
	"encoding/binary"

	"github.com/klauspost/crc32"
)

const (
	headerSize = 8 + 4
	footerSize = 4
	maskDelta  = 0xa282ead8
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Compression selects the container applied around the record stream.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
)

// String returns the TensorFlow compression_type name.
func (c Compression) String() string {
	if c == CompressionGzip {
		return "GZIP"
	}
	return "NONE"
}

// maskedCRC is the checksum TensorFlow stores for lengths and payloads.
func maskedCRC(b []byte) uint32 {
	crc := crc32.Checksum(b, castagnoli)
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

func appendHeader(dst []byte, n int) []byte {
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(n))
	dst = append(dst, length[:]...)
	return binary.LittleEndian.AppendUint32(dst, maskedCRC(length[:]))
}
