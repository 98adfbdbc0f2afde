package domain

// Roles a user can hold in the CMS. Only authors and editors take part in
// payout cycles.
const (
	RoleAuthor        = "author"
	RoleEditor        = "editor"
	RoleAdministrator = "administrator"
)

// PayableRoles is the set of roles eligible for payouts.
var PayableRoles = []string{RoleAuthor, RoleEditor}

type Author struct {
	ID          int64  `db:"id"`
	DisplayName string `db:"display_name"`
	Role        string `db:"role"`
}
