package domain

import "time"

// AuditAction tags a privileged operation in the activity log.
type AuditAction string

const (
	AuditActionLogin             AuditAction = "login"
	AuditActionPromoteUser       AuditAction = "promote_user"
	AuditActionDemoteUser        AuditAction = "demote_user"
	AuditActionToggleUserStatus  AuditAction = "toggle_user_status"
	AuditActionDeleteUser        AuditAction = "delete_user"
	AuditActionCreateProduct     AuditAction = "create_product"
	AuditActionUpdateProduct     AuditAction = "update_product"
	AuditActionDeleteProduct     AuditAction = "delete_product"
	AuditActionToggleProduct     AuditAction = "toggle_product"
	AuditActionUpdateOrderStatus AuditAction = "update_order_status"
)

// AuditEntry is an immutable activity-log row. Entries are appended after the
// mutation they describe and are never updated or deleted by application logic.
type AuditEntry struct {
	ID           string
	ActorID      string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	Detail       map[string]any
	CreatedAt    time.Time
}
