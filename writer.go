package perfectdict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	"github.com/tamirms/perfectdict/internal/hashkit"
)

// Save writes the Dict's durable state to a table file at path.
//
// The file is pre-allocated to its exact final size, memory-mapped, and
// written in place. Pre-allocation turns disk-full into an error here
// rather than a SIGBUS during the mapped writes.
//
// Only the built-in hash families can be persisted; a Dict built with
// WithFamily and a custom family fails with ErrUnknownFamily.
func (d *Dict[V]) Save(path string, codec Codec[V]) error {
	blob, err := d.encodeValues(codec)
	if err != nil {
		return err
	}
	if _, err := hashkit.ByID(d.family.ID()); err != nil {
		return err
	}

	size := int64(tableSize(uint64(d.numVertices), uint64(d.numKeys), d.fingerprintBits, uint64(len(blob))))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}
	if err := fallocateFile(file, size); err != nil {
		return errors.Join(fmt.Errorf("preallocate table file: %w", err), file.Close())
	}
	mm, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("mmap table file: %w", err), file.Close())
	}
	prefaultRegion(mm)

	d.encodeInto(mm, blob, codec.ID())

	return errors.Join(mm.Flush(), mm.Unmap(), file.Close())
}

// Encode serializes the Dict's durable state to an in-memory blob with
// the same layout as Save's file format. OpenBytes reverses it.
func (d *Dict[V]) Encode(codec Codec[V]) ([]byte, error) {
	blob, err := d.encodeValues(codec)
	if err != nil {
		return nil, err
	}
	if _, err := hashkit.ByID(d.family.ID()); err != nil {
		return nil, err
	}
	data := make([]byte, tableSize(uint64(d.numVertices), uint64(d.numKeys), d.fingerprintBits, uint64(len(blob))))
	d.encodeInto(data, blob, codec.ID())
	return data, nil
}

// encodeValues encodes the value array in slot order as one flat blob.
func (d *Dict[V]) encodeValues(codec Codec[V]) ([]byte, error) {
	var blob []byte
	for i := range d.values {
		blob = codec.Append(blob, d.values[i])
	}
	return blob, nil
}

// encodeInto writes all sections into data, which must be exactly the
// size reported by tableSize for this geometry and blob.
func (d *Dict[V]) encodeInto(data []byte, blob []byte, codecID CodecID) {
	h := header{
		Magic:           magic,
		Version:         version,
		NumKeys:         uint64(d.numKeys),
		NumVertices:     uint64(d.numVertices),
		Seed:            d.seed,
		FingerprintBits: uint8(d.fingerprintBits),
		FamilyID:        d.family.ID(),
		CodecID:         codecID,
	}
	h.encodeTo(data[:headerSize])
	off := headerSize

	for _, label := range d.labels {
		binary.LittleEndian.PutUint32(data[off:off+4], label)
		off += 4
	}

	fpBytes := fingerprintBytes(d.fingerprintBits)
	if fpBytes > 0 {
		for _, fp := range d.fingerprints {
			packFingerprintToBytes(data[off:off+fpBytes], fp, fpBytes)
			off += fpBytes
		}
	}

	copy(data[off:], blob)
	off += len(blob)

	f := footer{
		Checksum:  xxhash.Sum64(data[:off]),
		ValuesLen: uint64(len(blob)),
	}
	f.encodeTo(data[off : off+footerSize])
}
