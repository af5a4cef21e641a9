package od

// CiA 301 data type codes, as found in the "DataType" key of an EDS entry.
const (
	UNKNOWN                     uint8 = 0x00
	BOOLEAN                     uint8 = 0x01
	INTEGER8                    uint8 = 0x02
	INTEGER16                   uint8 = 0x03
	INTEGER32                   uint8 = 0x04
	UNSIGNED8                   uint8 = 0x05
	UNSIGNED16                  uint8 = 0x06
	UNSIGNED32                  uint8 = 0x07
	REAL32                      uint8 = 0x08
	VISIBLE_STRING              uint8 = 0x09
	OCTET_STRING                uint8 = 0x0A
	UNICODE_STRING              uint8 = 0x0B
	TIME_OF_DAY                 uint8 = 0x0C
	TIME_DIFFERENCE             uint8 = 0x0D
	DOMAIN                      uint8 = 0x0F
	INTEGER24                   uint8 = 0x10
	REAL64                      uint8 = 0x11
	INTEGER40                   uint8 = 0x12
	INTEGER48                   uint8 = 0x13
	INTEGER56                   uint8 = 0x14
	INTEGER64                   uint8 = 0x15
	UNSIGNED24                  uint8 = 0x16
	UNSIGNED40                  uint8 = 0x18
	UNSIGNED48                  uint8 = 0x19
	UNSIGNED56                  uint8 = 0x1A
	UNSIGNED64                  uint8 = 0x1B
	PDO_COMMUNICATION_PARAMETER uint8 = 0x20
	PDO_MAPPING                 uint8 = 0x21
	SDO_PARAMETER               uint8 = 0x22
	IDENTITY                    uint8 = 0x23
)

// Object types, as found in the "ObjectType" key of an EDS entry.
const (
	ObjectTypeDOMAIN uint8 = 2
	ObjectTypeVAR    uint8 = 7
	ObjectTypeARRAY  uint8 = 8
	ObjectTypeRECORD uint8 = 9
)

var ObjectTypeNames = map[uint8]string{
	ObjectTypeDOMAIN: "DOMAIN",
	ObjectTypeVAR:    "VARIABLE",
	ObjectTypeARRAY:  "ARRAY",
	ObjectTypeRECORD: "RECORD",
}

// Access types found in the "AccessType" key of an EDS entry.
// Any other value is kept as is.
const (
	AccessRO    = "ro"
	AccessWO    = "wo"
	AccessRW    = "rw"
	AccessRWR   = "rwr" // read/write, mappable to TPDO
	AccessRWW   = "rww" // read/write, mappable to RPDO
	AccessConst = "const"
)

// EDS storage formats, see object 0x1022 (storage format)
const (
	FormatEDSAscii  uint8 = 0
	FormatEDSZipped uint8 = 1
)
