package constant

const (
	DefaultTokenType    = "Bearer"
	AuthorizationHeader = "Authorization"

	// LocalsCurrentUser is the fiber.Ctx.Locals key holding the authenticated *domain.User.
	LocalsCurrentUser = "currentUser"

	DefaultIssuer = "ecommerce-app"
)
