package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/service"
)

// NewRouter wires every route. Registration, login, token refresh, health
// and the country and category reads are open; everything else needs an
// access token and the service decides what the caller may do.
func NewRouter(svc *service.Service, tokens *auth.TokenIssuer, log zerolog.Logger) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", Health(svc))
	r.POST("/login", Login(svc, tokens))
	r.GET("/refresh", middleware.RefreshAuth(tokens), Refresh(svc, tokens))
	r.POST("/logout", Logout())
	r.POST("/reset-password", ResetPassword())
	r.POST("/user/register", Register(svc))

	r.GET("/country", ListCountries(svc))
	r.GET("/country/:country_id", GetCountry(svc))
	r.GET("/product_category", GetCategories(svc))
	r.GET("/product_category/:id", GetCategory(svc))

	api := r.Group("/")
	api.Use(middleware.UserAuth(tokens))
	{
		api.POST("/country", CreateCountry(svc))
		api.PUT("/country/:country_id", UpdateCountry(svc))
		api.DELETE("/country/:country_id", DeleteCountry(svc))

		api.GET("/address", ListAddresses(svc))
		api.POST("/address", CreateAddress(svc))
		api.GET("/address/:address_id", GetAddress(svc))
		api.PUT("/address/:address_id", UpdateAddress(svc))
		api.DELETE("/address/:address_id", DeleteAddress(svc))

		api.GET("/role", ListRoles(svc))
		api.POST("/role", CreateRole(svc))
		api.GET("/role/:role_id", GetRole(svc))
		api.PUT("/role/:role_id", UpdateRole(svc))
		api.DELETE("/role/:role_id", DeleteRole(svc))

		api.GET("/user", ListUsers(svc))
		api.POST("/user", CreateUser(svc))
		api.PUT("/user", UpdateMe(svc))
		api.GET("/user/detail", GetMe(svc))
		api.PUT("/user/change-password", ChangePassword(svc))
		api.GET("/user/:user_id", GetUser(svc))
		api.PUT("/user/:user_id", UpdateUser(svc))
		api.DELETE("/user/:user_id", DeleteUser(svc))
		api.POST("/user/:user_id/role/:role_id", AssignRole(svc))
		api.GET("/user/:user_id/payment-method", ListPaymentMethods(svc))
		api.POST("/user/:user_id/payment-method", CreatePaymentMethod(svc))
		api.GET("/user/:user_id/address", ListUserAddresses(svc))
		api.POST("/user/:user_id/address/:address_id", LinkUserAddress(svc))
		api.DELETE("/user/:user_id/address/:address_id", UnlinkUserAddress(svc))
		api.PUT("/user/:user_id/address/:address_id/default", SetDefaultAddress(svc))

		api.GET("/payment-type", ListPaymentTypes(svc))
		api.POST("/payment-type", CreatePaymentType(svc))
		api.GET("/payment-type/:payment_type_id", GetPaymentType(svc))
		api.DELETE("/payment-type/:payment_type_id", DeletePaymentType(svc))

		api.POST("/product_category", CreateCategory(svc))
		api.PUT("/product_category/:id", UpdateCategory(svc))
		api.PUT("/product_category/:id/parent", ReparentCategory(svc))
		api.DELETE("/product_category/:id", DeleteCategory(svc))

		api.GET("/product", GetProducts(svc))
		api.POST("/product", CreateProduct(svc))
		api.GET("/product/:id", GetProduct(svc))
		api.PUT("/product/:id", UpdateProduct(svc))
		api.DELETE("/product/:id", DeleteProduct(svc))
		api.GET("/product/:id/item", GetProductItems(svc))
		api.POST("/product/:id/item", CreateProductItem(svc))

		api.GET("/product_item/:id", GetProductItem(svc))
		api.PUT("/product_item/:id", UpdateProductItem(svc))
		api.DELETE("/product_item/:id", DeleteProductItem(svc))
		api.POST("/product_item/:id/variation/:line_id", AttachVariation(svc))
		api.DELETE("/product_item/:id/variation/:line_id", DetachVariation(svc))
		api.POST("/product_item/:id/image", UploadItemImage(svc))
		api.DELETE("/image_line/:id", DeleteImageLine(svc))

		api.GET("/variation", ListVariations(svc))
		api.POST("/variation", CreateVariation(svc))
		api.GET("/variation/:id", GetVariation(svc))
		api.DELETE("/variation/:id", DeleteVariation(svc))
		api.GET("/variation_line", ListVariationLines(svc))
		api.POST("/variation_line", CreateVariationLine(svc))
		api.GET("/variation_line/:id", GetVariationLine(svc))
		api.DELETE("/variation_line/:id", DeleteVariationLine(svc))

		api.GET("/shipping-method", ListShippingMethods(svc))
		api.POST("/shipping-method", CreateShippingMethod(svc))
		api.GET("/shipping-method/:id", GetShippingMethod(svc))
		api.PUT("/shipping-method/:id", UpdateShippingMethod(svc))
		api.DELETE("/shipping-method/:id", DeleteShippingMethod(svc))
	}

	return r
}
