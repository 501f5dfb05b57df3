package auth

import (
	"fmt"
	"os/user"
	"slices"

	"github.com/newtron-network/patchplan/pkg/util"
)

// Checker validates user permissions against an AuthzConfig.
type Checker struct {
	config      *AuthzConfig
	currentUser string
}

// NewChecker creates a permission checker.
func NewChecker(config *AuthzConfig) *Checker {
	username := "unknown"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	return &Checker{
		config:      config,
		currentUser: username,
	}
}

// SetUser overrides the current user (for testing or sudo).
func (c *Checker) SetUser(username string) {
	c.currentUser = username
}

// CurrentUser returns the current username.
func (c *Checker) CurrentUser() string {
	return c.currentUser
}

// Check verifies if the current user has a permission.
func (c *Checker) Check(permission Permission, ctx *Context) error {
	return c.CheckUser(c.currentUser, permission, ctx)
}

// CheckUser verifies if a specific user has a permission.
func (c *Checker) CheckUser(username string, permission Permission, ctx *Context) error {
	// Superusers can do anything.
	if c.isSuperUser(username) {
		return nil
	}

	// Check revision-specific permissions first.
	if ctx != nil && ctx.Revision != "" {
		if rev, ok := c.config.Revisions[ctx.Revision]; ok {
			if c.checkPermissionMap(username, permission, rev.Permissions) {
				return nil
			}
		}
	}

	// Check global permissions.
	if c.checkPermissionMap(username, permission, c.config.Permissions) {
		return nil
	}

	return &PermissionError{
		User:       username,
		Permission: permission,
		Context:    ctx,
	}
}

// IsSuperUser returns true if the current user is a superuser.
func (c *Checker) IsSuperUser() bool {
	return c.isSuperUser(c.currentUser)
}

func (c *Checker) isSuperUser(username string) bool {
	return slices.Contains(c.config.SuperUsers, username)
}

// checkPermissionMap checks whether username has the given permission in permMap.
// It first checks the "all" wildcard key, then the specific permission key.
func (c *Checker) checkPermissionMap(username string, permission Permission, permMap map[string][]string) bool {
	// Check for "all" permission first.
	if groups, ok := permMap["all"]; ok {
		if c.userInGroups(username, groups) {
			return true
		}
	}

	// Check specific permission.
	groups, ok := permMap[string(permission)]
	if !ok {
		return false
	}

	return c.userInGroups(username, groups)
}

// ListPermissions returns every permission the current user holds via
// global grants. Superusers get [PermAll] rather than an enumeration.
func (c *Checker) ListPermissions() []Permission {
	if c.IsSuperUser() {
		return []Permission{PermAll}
	}

	var perms []Permission
	for perm, groups := range c.config.Permissions {
		if perm == "all" {
			continue
		}
		if c.userInGroups(c.currentUser, groups) {
			perms = append(perms, Permission(perm))
		}
	}
	return perms
}

// GetUserGroups returns the names of every user_groups entry that lists
// username as a member.
func (c *Checker) GetUserGroups(username string) []string {
	var groups []string
	for name, members := range c.config.UserGroups {
		if slices.Contains(members, username) {
			groups = append(groups, name)
		}
	}
	return groups
}

func (c *Checker) userInGroups(username string, allowedGroups []string) bool {
	for _, group := range allowedGroups {
		if group == username {
			return true
		}
		if members, ok := c.config.UserGroups[group]; ok {
			if slices.Contains(members, username) {
				return true
			}
		}
	}
	return false
}

// PermissionError represents a permission denial.
type PermissionError struct {
	User       string
	Permission Permission
	Context    *Context
}

func (e *PermissionError) Error() string {
	msg := fmt.Sprintf("permission denied: user '%s' does not have '%s' permission", e.User, e.Permission)
	if e.Context != nil {
		if e.Context.Project != "" {
			msg += fmt.Sprintf(" for project '%s'", e.Context.Project)
		}
		if e.Context.Revision != "" {
			msg += fmt.Sprintf(" on revision '%s'", e.Context.Revision)
		}
	}
	return msg
}

func (e *PermissionError) Unwrap() error {
	return util.ErrPermissionDenied
}
