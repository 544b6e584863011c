package version

import (
	_ "embed" // for go:embed
	"strconv"
	"strings"
)

// VERSION holds the server's version
//
//go:embed VERSION
var VERSION string

// Version segments
var (
	MAJOR int
	MINOR int
	FIX   int
	PRE   int
)

func init() {
	VERSION = strings.TrimSpace(VERSION)
	MAJOR, MINOR, FIX, PRE = parse(VERSION)
}

// parse splits a version of the form MAJOR.MINOR.FIX[-prPRE]; missing or
// malformed segments are 0
func parse(v string) (major, minor, fix, pre int) {
	segments := strings.SplitN(v, ".", 3)
	major, _ = strconv.Atoi(segments[0])
	if len(segments) > 1 {
		minor, _ = strconv.Atoi(segments[1])
	}
	if len(segments) > 2 {
		f, p, found := strings.Cut(segments[2], "-")
		fix, _ = strconv.Atoi(f)
		if found {
			pre, _ = strconv.Atoi(strings.TrimPrefix(p, "pr"))
		}
	}
	return
}
