// Package persistence implements the canonical binary layout of an index dump.
//
// A payload is little-endian and self-contained:
//
//	header:  version u32, dimension u32, bucket_capacity u32, entry_count u64
//	body:    entry_count × { key u64, id_len u32, id bytes, dimension × f32 }
//	trailer: crc32c u32 over header and body
//
// Seal wraps a payload in an envelope that names the compressor used:
//
//	magic "LVDB", name_len u8, name bytes, compressed payload
//
// Any change to either layout must bump FormatVersion.
package persistence
