package domain

// Action enumerates the operations gated by the authorization policy.
// Catalog reads, registration, and login are open routes and never reach
// the policy.
type Action string

const (
	ActionCreateOrder        Action = "order:create"
	ActionReadOrder          Action = "order:read"
	ActionListOrders         Action = "order:list"
	ActionUpdateOrder        Action = "order:update"
	ActionDeleteOrder        Action = "order:delete"
	ActionUpdateOrderStatus  Action = "order:update_status"
	ActionListCustomerOrders Action = "order:list_by_customer"
	ActionReadUser           Action = "user:read"
	ActionUpdateUser         Action = "user:update"
	ActionListUsers          Action = "user:list"
	ActionDeleteUser         Action = "user:delete"
	ActionWriteBook          Action = "book:write"
)

// Resource carries the ownership attributes a policy decision may inspect.
// OwnerID is the user id the resource belongs to (an order's customer, a
// profile's own id); it is empty for collection-level resources.
type Resource struct {
	OwnerID string
}

// Authorize decides whether principal may perform action on resource.
// Rules, in precedence order:
//  1. anonymous principals are denied everything,
//  2. admins are allowed everything,
//  3. plain users may create orders (as themselves), read their own orders
//     and order lists, and read/update their own profile,
//  4. everything else is denied.
func Authorize(p Principal, action Action, res Resource) bool {
	if p.IsAnonymous() {
		return false
	}
	if p.IsAdmin() {
		return true
	}

	switch action {
	case ActionCreateOrder:
		return true
	case ActionReadOrder, ActionListCustomerOrders:
		return res.OwnerID == p.UserID
	case ActionReadUser, ActionUpdateUser:
		return res.OwnerID == p.UserID
	}
	return false
}
