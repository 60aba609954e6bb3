package forge

// URLs for the pages the workflow drives. The whole tool targets this one
// storefront; nothing here is configurable on purpose.
const (
	BaseURL        = "https://forge.fantasygrounds.com"
	LoginURL       = BaseURL + "/login"
	ManageCraftURL = BaseURL + "/crafter/manage-craft"
)
