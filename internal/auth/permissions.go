package auth

import (
	"github.com/nqd2/bluemoon-admin-api/internal/models"
)

// Action names a mutating or privileged operation gated by role
type Action string

const (
	ActionFeeWrite        Action = "fee:write"
	ActionRegistryWrite   Action = "registry:write"
	ActionBillingGenerate Action = "billing:generate"
	ActionPaymentRecord   Action = "payment:record"
	ActionLedgerWrite     Action = "ledger:write"
	ActionReportView      Action = "report:view"
	ActionUserManage      Action = "user:manage"
)

// permissions is the single capability matrix consulted before every gated
// operation. Admin holds every capability; leader manages the registry and
// reads reports; accountant owns the fee catalog, billing and the ledger.
var permissions = map[models.UserRole]map[Action]bool{
	models.RoleAdmin: {
		ActionFeeWrite:        true,
		ActionRegistryWrite:   true,
		ActionBillingGenerate: true,
		ActionPaymentRecord:   true,
		ActionLedgerWrite:     true,
		ActionReportView:      true,
		ActionUserManage:      true,
	},
	models.RoleLeader: {
		ActionRegistryWrite: true,
		ActionReportView:    true,
	},
	models.RoleAccountant: {
		ActionFeeWrite:        true,
		ActionBillingGenerate: true,
		ActionPaymentRecord:   true,
		ActionLedgerWrite:     true,
		ActionReportView:      true,
	},
}

// CanPerform reports whether the role holds the capability for the action
func CanPerform(role models.UserRole, action Action) bool {
	caps, ok := permissions[role]
	if !ok {
		return false
	}
	return caps[action]
}
