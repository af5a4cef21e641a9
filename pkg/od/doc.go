// Package od holds the in-memory representation of a CANopen object
// dictionary as described by an EDS or DCF file (CiA 306).
//
// An [ObjectDictionary] is a list of [Entry], in the order of the source
// file. Each entry holds an [Object] which is exactly one of
// [*Variable], [*Record] or [*Array]. Sub entries of records and arrays
// are always [*Variable].
//
// Use [Parse] or [ParseFile] to build a dictionary from a file:
//
//	odict, err := od.ParseFile("device.eds", 0x10)
//	if err != nil {
//		return err
//	}
//	for _, entry := range odict.Entries() {
//		...
//	}
package od
