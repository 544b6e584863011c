package model

// Permissions is the capability set of an identity. The four levels are
// granted independently of each other.
type Permissions struct {
	Read   bool `json:"read" structs:"read"`
	Write  bool `json:"write" structs:"write"`
	Delete bool `json:"delete" structs:"delete"`
	Admin  bool `json:"admin" structs:"admin"`
}

// AllPermissions grants every level; used for the owner
var AllPermissions = Permissions{
	Read:   true,
	Write:  true,
	Delete: true,
	Admin:  true,
}

// PermissionsUpdate holds optional changes to a Permissions value
type PermissionsUpdate struct {
	Read   *bool `json:"read"`
	Write  *bool `json:"write"`
	Delete *bool `json:"delete"`
	Admin  *bool `json:"admin"`
}

// Apply returns p with all set fields of u applied
func (u PermissionsUpdate) Apply(p Permissions) Permissions {
	if u.Read != nil {
		p.Read = *u.Read
	}
	if u.Write != nil {
		p.Write = *u.Write
	}
	if u.Delete != nil {
		p.Delete = *u.Delete
	}
	if u.Admin != nil {
		p.Admin = *u.Admin
	}
	return p
}
