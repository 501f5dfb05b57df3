// Package auth provides permission-based access control for patch-plan
// CLI operations.
package auth

// Permission defines an action that can be controlled.
type Permission string

// Standard permissions.
const (
	PermPlanGenerate Permission = "plan.generate"
	PermPlanView     Permission = "plan.view"

	PermRevisionSave   Permission = "revision.save"
	PermRevisionDelete Permission = "revision.delete"
	PermRevisionView   Permission = "revision.view"

	PermRenderExport Permission = "render.export"

	PermSettingsModify Permission = "settings.modify"
	PermSettingsView   Permission = "settings.view"

	PermAuditView Permission = "audit.view"

	PermAll Permission = "all" // Superuser - allows everything
)

// PermissionCategory groups related permissions.
type PermissionCategory struct {
	Name        string
	Description string
	Permissions []Permission
}

// StandardCategories defines standard permission categories.
var StandardCategories = []PermissionCategory{
	{
		Name:        "plan",
		Description: "Plan generation",
		Permissions: []Permission{PermPlanGenerate, PermPlanView},
	},
	{
		Name:        "revision",
		Description: "Revision store access",
		Permissions: []Permission{PermRevisionSave, PermRevisionDelete, PermRevisionView},
	},
	{
		Name:        "render",
		Description: "Rendering plans to CSV/JSON/SVG",
		Permissions: []Permission{PermRenderExport},
	},
	{
		Name:        "settings",
		Description: "Local CLI settings",
		Permissions: []Permission{PermSettingsModify, PermSettingsView},
	},
	{
		Name:        "audit",
		Description: "Audit log access",
		Permissions: []Permission{PermAuditView},
	},
}

// Context provides context for permission checks.
type Context struct {
	Project  string
	Revision string
}

// NewContext creates a new permission context.
func NewContext() *Context {
	return &Context{}
}

// WithProject sets the project context.
func (c *Context) WithProject(project string) *Context {
	c.Project = project
	return c
}

// WithRevision sets the revision context.
func (c *Context) WithRevision(revision string) *Context {
	c.Revision = revision
	return c
}

// IsReadOnly returns true if the permission is read-only.
func (p Permission) IsReadOnly() bool {
	switch p {
	case PermPlanView, PermRevisionView, PermSettingsView, PermAuditView:
		return true
	}
	return false
}

// IsWriteOperation returns true if the permission involves modification.
func (p Permission) IsWriteOperation() bool {
	return !p.IsReadOnly()
}

// RequiresLock returns true if the permission requires the revision store
// advisory lock — only mutating revision-store operations do.
func (p Permission) RequiresLock() bool {
	return p == PermRevisionSave || p == PermRevisionDelete
}
