package auth

import (
	"github.com/pa11y/sidekick/storage/model"
)

// Level is a single permission level
type Level string

// The permission levels
const (
	LevelRead   Level = "read"
	LevelWrite  Level = "write"
	LevelDelete Level = "delete"
	LevelAdmin  Level = "admin"
)

func (l Level) grantedBy(p model.Permissions) bool {
	switch l {
	case LevelRead:
		return p.Read
	case LevelWrite:
		return p.Write
	case LevelDelete:
		return p.Delete
	case LevelAdmin:
		return p.Admin
	default:
		return false
	}
}
