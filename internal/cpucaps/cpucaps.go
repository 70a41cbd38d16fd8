// Package cpucaps detects host CPU features and applies --cpuflags
// directives to them.
package cpucaps

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/backmassage/muxinfo/internal/directive"
)

// Flags is a CPU feature bitset.
type Flags uint64

const (
	MMX Flags = 1 << iota
	MMXExt
	SSE
	SSE2
	SSE3
	SSSE3
	SSE41
	SSE42
	AVX
	AVX2
	FMA3
	BMI2
	AVX512
	AESNI
	ARMv8
	NEON
	VFP
)

// Grammar is the directive grammar of --cpuflags. It has no level part.
var Grammar = directive.Grammar{
	Flags: []directive.Keyword{
		{Name: "mmx", Bit: uint64(MMX)},
		{Name: "mmxext", Bit: uint64(MMXExt)},
		{Name: "sse", Bit: uint64(SSE)},
		{Name: "sse2", Bit: uint64(SSE2)},
		{Name: "sse3", Bit: uint64(SSE3)},
		{Name: "ssse3", Bit: uint64(SSSE3)},
		{Name: "sse4.1", Bit: uint64(SSE41)},
		{Name: "sse4.2", Bit: uint64(SSE42)},
		{Name: "avx", Bit: uint64(AVX)},
		{Name: "avx2", Bit: uint64(AVX2)},
		{Name: "fma3", Bit: uint64(FMA3)},
		{Name: "bmi2", Bit: uint64(BMI2)},
		{Name: "avx512", Bit: uint64(AVX512)},
		{Name: "aesni", Bit: uint64(AESNI)},
		{Name: "armv8", Bit: uint64(ARMv8)},
		{Name: "neon", Bit: uint64(NEON)},
		{Name: "vfp", Bit: uint64(VFP)},
	},
	NoLevel: true,
}

// String renders f as "+a+b", or "none".
func (f Flags) String() string {
	if s := Grammar.Format(uint64(f)); s != "" {
		return s
	}
	return "none"
}

// Detect returns the features of the running CPU.
func Detect() Flags {
	switch runtime.GOARCH {
	case "amd64", "386":
		return detectX86()
	case "arm64":
		return detectARM64()
	case "arm":
		return detectARM()
	}
	return 0
}

func detectX86() Flags {
	var f Flags
	// SSE2 is the amd64 baseline and implies the older extensions.
	if cpu.X86.HasSSE2 {
		f |= MMX | MMXExt | SSE | SSE2
	}
	set := func(has bool, bit Flags) {
		if has {
			f |= bit
		}
	}
	set(cpu.X86.HasSSE3, SSE3)
	set(cpu.X86.HasSSSE3, SSSE3)
	set(cpu.X86.HasSSE41, SSE41)
	set(cpu.X86.HasSSE42, SSE42)
	set(cpu.X86.HasAVX, AVX)
	set(cpu.X86.HasAVX2, AVX2)
	set(cpu.X86.HasFMA, FMA3)
	set(cpu.X86.HasBMI2, BMI2)
	set(cpu.X86.HasAVX512F, AVX512)
	set(cpu.X86.HasAES, AESNI)
	return f
}

func detectARM64() Flags {
	f := ARMv8
	if cpu.ARM64.HasASIMD {
		f |= NEON
	}
	if cpu.ARM64.HasFP {
		f |= VFP
	}
	return f
}

func detectARM() Flags {
	var f Flags
	if cpu.ARM.HasNEON {
		f |= NEON
	}
	if cpu.ARM.HasVFP {
		f |= VFP
	}
	return f
}

// Apply parses text against base. On error base is returned unchanged
// along with the error.
func Apply(base Flags, text string) (Flags, error) {
	flags, level := uint64(base), 0
	if err := Grammar.Parse(text, &flags, &level); err != nil {
		return base, err
	}
	return Flags(flags), nil
}

// Count resolves a --cpucount value: positive values are used as-is and
// anything else means the host's logical CPU count.
func Count(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}
