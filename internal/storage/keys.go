package storage

import "github.com/mattmelloy/rotation-app/internal/models"

// Three logical records exist per identity namespace.
const (
	recordMeals = "meals"
	recordWeek  = "week"
	recordShop  = "shop_checked"
)

// Keys derives the namespaced storage keys for an identity. Pure function
// of the passed-in identity, no ambient state.
type Keys struct {
	Meals string
	Week  string
	Shop  string
}

func KeysFor(id models.Identity) Keys {
	ns := id.Namespace()
	return Keys{
		Meals: ns + ":" + recordMeals,
		Week:  ns + ":" + recordWeek,
		Shop:  ns + ":" + recordShop,
	}
}

// LegacyKeys are the flat pre-namespacing keys used by the oldest clients.
// Found records are migrated forward into the guest namespace.
func LegacyKeys() Keys {
	return Keys{
		Meals: "rotation_meals",
		Week:  "rotation_week",
		Shop:  "rotation_shop_checked",
	}
}
