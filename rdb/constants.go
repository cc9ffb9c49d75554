package rdb

// MagicString opens every snapshot, followed by a 4 digit ASCII version
const MagicString = "REDIS"

const headerSize = len(MagicString) + 4

// Section opcodes
const (
	OpAux          = 0xFA
	OpResizeDB     = 0xFB
	OpExpireTimeMs = 0xFC
	OpExpireTime   = 0xFD
	OpSelectDB     = 0xFE
	OpEOF          = 0xFF
)

// Value type tags
const (
	TypeString = 0
	TypeList   = 1
	TypeSet    = 2
	TypeZSet   = 3
	TypeHash   = 4
	TypeIntMin = 9
	TypeIntMax = 12
	TypeRaw55  = 55 // decoded as a single raw byte
	TypeRaw250 = 250
)

const (
	elementSep = ','
	fieldSep   = ':'

	intEncMin   = 0xC0
	intEncMax   = 0xC3
	packedIntHi = 223
)
