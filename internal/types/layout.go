package types

import "github.com/ferrite-lang/ferritec/internal/config"

// SizeOf computes the in-memory size, in bytes, of a runtime type (spec
// §4.6 "Layout rules"). Calling it on a non-runtime type is a
// programming error in the caller — every call site is expected to have
// already checked IsRuntimeType.
func SizeOf(t Type, cfg *config.Config) uint64 {
	switch tt := t.(type) {
	case *IntegerType:
		return uint64(tt.Size / 8)
	case *FloatType:
		return uint64(tt.Size / 8)
	case *BoolType:
		return uint64(cfg.DefaultIntSize / 8)
	case *PointerType:
		return uint64(cfg.AddressSize / 8)
	case *ArraySliceType:
		return 2 * uint64(cfg.AddressSize/8)
	case *StaticArrayType:
		// Corrected form of OQ1 (spec §9): length * size(element), not
		// length * alignment(element). The latter under-allocates for
		// any element whose size is larger than its alignment.
		return tt.Length * SizeOf(tt.Elem, cfg)
	case *StructType:
		if tt.IsUnion {
			var max uint64
			for _, m := range tt.Members {
				if s := SizeOf(m.Type, cfg); s > max {
					max = s
				}
			}
			return max
		}
		var offset uint64
		for _, m := range tt.Members {
			a := AlignOf(m.Type, cfg)
			offset = alignUp(offset, a)
			offset += SizeOf(m.Type, cfg)
		}
		return alignUp(offset, AlignOf(t, cfg))
	default:
		return 0
	}
}

// AlignOf computes the alignment, in bytes, of a runtime type (spec
// §4.6 "Layout rules").
func AlignOf(t Type, cfg *config.Config) uint64 {
	switch tt := t.(type) {
	case *IntegerType:
		return uint64(tt.Size / 8)
	case *FloatType:
		return uint64(tt.Size / 8)
	case *BoolType:
		return uint64(cfg.DefaultIntSize / 8)
	case *PointerType, *ArraySliceType:
		return uint64(cfg.AddressSize / 8)
	case *StaticArrayType:
		return AlignOf(tt.Elem, cfg)
	case *StructType:
		var max uint64 = 1
		for _, m := range tt.Members {
			if a := AlignOf(m.Type, cfg); a > max {
				max = a
			}
		}
		return max
	default:
		return 1
	}
}

// Offsets returns, for a non-union struct, the byte offset of each
// member in declaration order, following the same padding walk SizeOf
// performs. A union's offsets are all zero.
func Offsets(t *StructType, cfg *config.Config) []uint64 {
	offsets := make([]uint64, len(t.Members))
	if t.IsUnion {
		return offsets
	}
	var offset uint64
	for i, m := range t.Members {
		offset = alignUp(offset, AlignOf(m.Type, cfg))
		offsets[i] = offset
		offset += SizeOf(m.Type, cfg)
	}
	return offsets
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}
