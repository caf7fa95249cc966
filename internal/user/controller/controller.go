package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Gani-23/Oauth4.0/internal/user/dto"
	"github.com/Gani-23/Oauth4.0/internal/user/service"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
	"github.com/Gani-23/Oauth4.0/pkg/response"
)

type Controller struct {
	service service.UserService
}

func CreateController(e *echo.Group, service service.UserService) {
	c := Controller{
		service: service,
	}
	e.POST("/users/register", c.Register)
	e.POST("/users/login", c.Login)
	e.PUT("/users/name", c.UpdateUserName)
	e.PUT("/users/password", c.UpdatePassword)
	e.DELETE("/users/:identifier", c.DeleteUser)
}

func (c *Controller) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	user, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "user registered", user)
}

func (c *Controller) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "login successful", resp)
}

func (c *Controller) UpdateUserName(e echo.Context) error {
	payload := dto.UpdateNameRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateUserName").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	err = c.service.UpdateUserName(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "user updated", nil)
}

func (c *Controller) UpdatePassword(e echo.Context) error {
	payload := dto.UpdatePasswordRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePassword").Msg("")
		return response.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	err = c.service.UpdatePassword(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "password updated", nil)
}

func (c *Controller) DeleteUser(e echo.Context) error {
	err := c.service.DeleteUser(e.Request().Context(), e.Param("identifier"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "user deleted", nil)
}
