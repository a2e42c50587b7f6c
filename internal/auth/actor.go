// Package auth defines the request-scoped identity passed into the
// booking engine. The acting party is always an explicit parameter,
// never read from ambient state.
package auth

// Role names the kind of account a session belongs to.
type Role string

const (
	RoleCustomer  Role = "CUSTOMER"
	RoleBartender Role = "BARTENDER"
)

// Actor identifies the authenticated party attributed to a request.
// The zero value is the anonymous actor: no role, no id. A non-anonymous
// actor carries exactly one role and the id of the matching account, so
// a single session can never be both a customer and a bartender.
type Actor struct {
	role Role
	id   string
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

// CustomerActor returns an actor for a customer account.
func CustomerActor(id string) Actor { return Actor{role: RoleCustomer, id: id} }

// BartenderActor returns an actor for a bartender account.
func BartenderActor(id string) Actor { return Actor{role: RoleBartender, id: id} }

// IsAnonymous reports whether no authenticated party is attached.
func (a Actor) IsAnonymous() bool { return a.id == "" }

// IsCustomer reports whether the actor is an authenticated customer.
func (a Actor) IsCustomer() bool { return a.role == RoleCustomer && a.id != "" }

// IsBartender reports whether the actor is an authenticated bartender.
func (a Actor) IsBartender() bool { return a.role == RoleBartender && a.id != "" }

// Role returns the actor's role, or "" for the anonymous actor.
func (a Actor) Role() Role {
	if a.IsAnonymous() {
		return ""
	}
	return a.role
}

// ID returns the account id, or "" for the anonymous actor.
func (a Actor) ID() string { return a.id }
