package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
)

type applyRequest struct {
	Why        string `json:"why" validate:"required,notblank"`
	What       string `json:"what" validate:"required,notblank"`
	Experience string `json:"experience"`
}

func (h *handlers) registerUserAPI(v1 *echo.Group) {
	me := v1.Group("/me")
	me.POST("", h.createProfile)
	me.GET("", h.getProfile)
	me.PATCH("", h.updateProfile)
	me.POST("/college-id", h.uploadCollegeID)
	me.GET("/registrations", h.myRegistrations)
	me.GET("/perks", h.perks)
	me.GET("/notifications", h.listNotifications)
	me.POST("/notifications/:id/read", h.markNotificationRead)
	me.POST("/ambassador-application", h.applyAmbassador)
}

func (h *handlers) createProfile(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var in input.CreateProfileInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	user, err := h.opts.Users.CreateProfile(c.Request().Context(), id.UID, id.Email, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlers) getProfile(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	user, err := h.opts.Users.GetProfile(c.Request().Context(), id.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlers) updateProfile(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var in input.UpdateProfileInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	user, err := h.opts.Users.UpdateProfile(c.Request().Context(), id.UID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlers) uploadCollegeID(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()
	if file == nil {
		return domain.ErrInvalidUpload
	}
	user, err := h.opts.Users.UploadCollegeID(c.Request().Context(), id.UID, *file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlers) myRegistrations(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	regs, err := h.opts.Events.MyRegistrations(c.Request().Context(), id.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newMyRegistrations(regs, h.opts.Location))
}

func (h *handlers) perks(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	perks, err := h.opts.Users.Perks(c.Request().Context(), id.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(perks))
}

func (h *handlers) listNotifications(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	ns, err := h.opts.Notifications.List(c.Request().Context(), id.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newNotificationsResponse(ns))
}

func (h *handlers) markNotificationRead(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	if err := h.opts.Notifications.MarkRead(c.Request().Context(), id.UID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) applyAmbassador(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	video, closeVideo, err := formFile(c, "video")
	if err != nil {
		return err
	}
	defer closeVideo()

	app, err := h.opts.Ambassadors.Apply(c.Request().Context(), id.UID, entities.ApplicationAnswers{
		Why:        req.Why,
		What:       req.What,
		Experience: req.Experience,
	}, video)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newApplicationResponse(app))
}
