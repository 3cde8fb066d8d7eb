package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
)

type contactRequest struct {
	Name         string `json:"name" validate:"required,notblank"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,notblank"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
}

func (r contactRequest) contact() entities.Contact {
	return entities.Contact{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Organization: r.Organization,
		Year:         r.Year,
	}
}

func (h *handlers) registerEventAPI(v1 *echo.Group) {
	v1.GET("/events", h.listEvents(""))
	v1.GET("/events/:id", h.getEvent)
	v1.POST("/events/:id/register", h.registerFree)
}

// listEvents lists events of kind, or of the "kind" query parameter when
// kind is empty.
func (h *handlers) listEvents(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := input.EventQuery{
			Kind:   kind,
			Search: c.QueryParam("search"),
			Date:   c.QueryParam("date"),
			Status: c.QueryParam("status"),
			Domain: c.QueryParam("domain"),
		}
		if q.Kind == "" {
			q.Kind = c.QueryParam("kind")
		}
		if q.Kind != "" && !domain.IsValidKind(q.Kind) {
			return domain.ErrInvalidEventKind
		}
		events, err := h.opts.Events.ListEvents(c.Request().Context(), q)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, newEventsResponse(events, h.opts.Location))
	}
}

func (h *handlers) getEvent(c echo.Context) error {
	event, err := h.opts.Events.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newEventResponse(event, h.opts.Location))
}

// registerFree answers 201 for a new registration and 200 with the
// existing one when the user already registered.
func (h *handlers) registerFree(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reg, err := h.opts.Registrations.RegisterFree(c.Request().Context(), id.UID, c.Param("id"), req.contact())
	if errors.Is(err, domain.ErrAlreadyRegistered) && reg != nil {
		return c.JSON(http.StatusOK, newRegistrationResponse(reg))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newRegistrationResponse(reg))
}
