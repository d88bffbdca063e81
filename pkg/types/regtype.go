package types

import (
	"fmt"
	"strconv"
	"strings"
)

// RegType enumerates Windows registry value types.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

var regTypeNames = map[RegType]string{
	REG_NONE:      "REG_NONE",
	REG_SZ:        "REG_SZ",
	REG_EXPAND_SZ: "REG_EXPAND_SZ",
	REG_BINARY:    "REG_BINARY",
	REG_DWORD:     "REG_DWORD",
	REG_DWORD_BE:  "REG_DWORD_BE",
	REG_LINK:      "REG_LINK",
	REG_MULTI_SZ:  "REG_MULTI_SZ",
	REG_QWORD:     "REG_QWORD",
}

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	if name, ok := regTypeNames[t]; ok {
		return name
	}
	// signed, so corrupt 0xFFFF.... types print as small negatives
	return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
}

// ParseRegType is the inverse of RegType.String. It also accepts the bare
// decimal type number.
func ParseRegType(s string) (RegType, error) {
	s = strings.TrimSpace(s)
	for t, name := range regTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "UNKNOWN_TYPE_"); ok {
		s = rest
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < -1<<31 || n > 1<<32-1 {
		return 0, &Error{Kind: ErrKindUnsupported, Msg: fmt.Sprintf("unknown registry type %q", s)}
	}
	return RegType(uint32(n)), nil
}
