// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package access holds the authorization rules of the blog: which role may
// reach which area, and who may delete a comment. Every function here is
// pure; callers pass the actor explicitly.
package access

import (
	"fmt"

	"blogpress/internal/models"
)

// Home routes each role lands on after a denied request.
const (
	AdminHome = "/admin/posts"
	UserHome  = "/posts"
)

// Actor is the authenticated identity a request runs as. A nil *Actor means
// the request is anonymous.
type Actor struct {
	ID   int64
	Name string
	Role models.Role
}

// Decision is the outcome of a role check. When Allow is false, RedirectTo
// names the route the actor should be sent to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// HomeFor returns the landing route for a role. Unknown roles land on the
// user home.
func HomeFor(role models.Role) string {
	if role == models.RoleAdmin {
		return AdminHome
	}
	return UserHome
}

// Decide checks whether actor may enter an area that requires role.
// Anonymous actors are sent to the user home; actors with a different role
// are sent to their own home.
func Decide(actor *Actor, required models.Role) Decision {
	if actor == nil {
		return Decision{RedirectTo: UserHome}
	}
	if actor.Role != required {
		return Decision{RedirectTo: HomeFor(actor.Role)}
	}
	return Decision{Allow: true}
}

// Redirect is returned by operations that refuse an actor because of its
// role. It carries the route the actor should be sent to.
type Redirect struct {
	To string
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("access denied, redirect to %s", r.To)
}

// Require runs Decide and converts a denial into a *Redirect error.
func Require(actor *Actor, required models.Role) error {
	d := Decide(actor, required)
	if !d.Allow {
		return &Redirect{To: d.RedirectTo}
	}
	return nil
}
