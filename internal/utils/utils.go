package utils

import (
	"strconv"
	"strings"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"tideland.dev/go/slices"
)

// FieldTagNames returns the names set in the passed struct tag of the passed
// fields. Options after a comma are dropped; fields without the tag or with
// the tag set to "-" are skipped.
func FieldTagNames(fields []*structs.Field, tag string) (names []string) {
	for _, f := range fields {
		if f == nil {
			continue
		}
		t := f.Tag(tag)
		name, _, _ := strings.Cut(t, ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return
}

// ParseIDList parses a comma separated list of positive ids, e.g. "1,2,3".
// Empty elements and duplicates are dropped; the order of first occurrence is
// kept.
func ParseIDList(s string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 0)
		if err != nil || id == 0 {
			return nil, errors.Errorf("invalid id '%s'", part)
		}
		ids = append(ids, uint(id))
	}
	return slices.Unique(ids), nil
}
