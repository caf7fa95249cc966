package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Gani-23/Oauth4.0/internal/catalog/dto"
	"github.com/Gani-23/Oauth4.0/internal/catalog/service"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
	"github.com/Gani-23/Oauth4.0/pkg/response"
	"github.com/Gani-23/Oauth4.0/pkg/utils"
)

type Controller struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.GET("/products", c.GetProducts)
	e.GET("/products/categories", c.GetCategories)
	e.GET("/products/featured", c.GetFeaturedProducts)
	e.GET("/products/top-rated", c.GetTopRatedProducts)
	e.GET("/products/sellers", c.GetSellerCounts)
	e.GET("/products/:id", c.GetProductByID)
	e.PUT("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
	e.POST("/products/:id/rate", c.UpsertRating)
	e.GET("/products/:id/ratings", c.GetRatingStats)
	e.GET("/products/:id/reviews", c.GetProductReviews)
	e.DELETE("/products/:id/ratings/:userId", c.DeleteRating)
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	_, username, _ := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().Str("component", "AddProduct").Str("username", username).Msg("creating product")

	product, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product created", product)
}

func (c *Controller) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrInvalidQueryParam, nil)
	}

	responsePayload, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products record", responsePayload)
}

func (c *Controller) GetProductByID(e echo.Context) error {
	product, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	payload.ID = e.Param("id")
	err = c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product updated", nil)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *Controller) UpsertRating(e echo.Context) error {
	payload := dto.RatingRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpsertRating").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	payload.ProductID = e.Param("id")
	product, err := c.service.UpsertRating(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "rating saved", product)
}

func (c *Controller) GetRatingStats(e echo.Context) error {
	stats, err := c.service.GetRatingStats(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", stats)
}

func (c *Controller) GetProductReviews(e echo.Context) error {
	reviews, err := c.service.GetProductReviews(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", reviews)
}

func (c *Controller) DeleteRating(e echo.Context) error {
	err := c.service.DeleteRating(e.Request().Context(), e.Param("id"), e.Param("userId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "rating deleted", nil)
}

func (c *Controller) GetTopRatedProducts(e echo.Context) error {
	filter := pkgdto.TopRatedFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTopRatedProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrInvalidQueryParam, nil)
	}

	products, err := c.service.GetTopRatedProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (c *Controller) GetCategories(e echo.Context) error {
	categories, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", categories)
}

func (c *Controller) GetFeaturedProducts(e echo.Context) error {
	limit := 0
	if raw := e.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.WriteErrorResponse(e, errs.ErrInvalidQueryParam, nil)
		}
		limit = parsed
	}

	products, err := c.service.GetFeaturedProducts(e.Request().Context(), limit)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (c *Controller) GetSellerCounts(e echo.Context) error {
	sellers, err := c.service.GetSellerCounts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", sellers)
}
