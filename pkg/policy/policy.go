// Package policy holds the authorization rules for recipes. Both the bearer
// token API and the cookie page flow go through these functions.
package policy

import (
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
)

// Actor is the caller of an operation. The zero value is an anonymous visitor.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

func (a Actor) IsChef() bool {
	return a.Role == domain.RoleChef
}

func (a Actor) Owns(recipe *entities.Recipe) bool {
	return !a.IsAnonymous() && recipe != nil && recipe.UserID.String() == a.UserID
}

// CanView reports whether the actor may read the recipe by id. Approved
// recipes are public; the owner and admins also see pending and rejected ones.
func CanView(actor Actor, recipe *entities.Recipe) bool {
	if recipe == nil {
		return false
	}
	return recipe.IsApproved || actor.Owns(recipe) || actor.IsAdmin()
}

// CanModify reports whether the actor may edit recipe content. Only the owner
// can; admins change moderation fields through CanModerate instead.
func CanModify(actor Actor, recipe *entities.Recipe) bool {
	return actor.Owns(recipe)
}

func CanDelete(actor Actor, recipe *entities.Recipe) bool {
	return actor.Owns(recipe) || (recipe != nil && actor.IsAdmin())
}

func CanModerate(actor Actor) bool {
	return actor.IsAdmin()
}

func CanCreateRecipe(actor Actor) bool {
	return !actor.IsAnonymous() && actor.IsChef()
}

// CanRate blocks rating unapproved recipes and one's own recipe.
func CanRate(actor Actor, recipe *entities.Recipe) error {
	if recipe == nil || !recipe.IsApproved {
		return domain.ErrRecipeNotRateable
	}
	if actor.Owns(recipe) {
		return domain.ErrRateOwnRecipe
	}
	return nil
}
