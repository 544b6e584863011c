package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in                     string
		major, minor, fix, pre int
	}{
		{"1.2.3", 1, 2, 3, 0},
		{"0.10.0-pr7", 0, 10, 0, 7},
		{"2.1", 2, 1, 0, 0},
		{"", 0, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			major, minor, fix, pre := parse(tc.in)
			assert.Equal(t, []int{tc.major, tc.minor, tc.fix, tc.pre}, []int{major, minor, fix, pre})
		})
	}
}

func TestEmbeddedVersion(t *testing.T) {
	assert.NotEmpty(t, VERSION)
	assert.NotContains(t, VERSION, "\n")
}
