package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"revamp/internal/domain"
	"revamp/internal/ports/input"
)

type attendanceRequest struct {
	RegistrationIDs []string `json:"registrationIds" validate:"required,min=1"`
	Status          string   `json:"status" validate:"required"`
}

type reviewRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

func (h *handlers) registerAdminAPI(admin *echo.Group) {
	for path, kind := range map[string]string{"/events": domain.KindEvent, "/workshops": domain.KindWorkshop} {
		admin.GET(path, h.listEvents(kind))
		admin.POST(path, h.createEvent(kind))
		admin.DELETE(path+"/:id", h.deleteEvent)
		admin.GET(path+"/:id/attendees", h.listAttendees)
		admin.POST(path+"/:id/attendance", h.markAttendance)
	}
	admin.GET("/users", h.listUsers)
	admin.GET("/users/:id", h.getUserDetail)
	admin.PATCH("/users/:id", h.updateUser)
	admin.POST("/ambassador-applications/:id/review", h.reviewApplication)
}

func (h *handlers) createEvent(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := identityFrom(c)
		if err != nil {
			return err
		}
		// The route decides the kind; a body may repeat it but not change it.
		in := input.CreateEventInput{Kind: kind}
		if err := bindAndValidate(c, &in); err != nil {
			return err
		}
		if in.Kind != kind {
			return domain.ErrInvalidEventKind
		}
		banner, closeBanner, err := formFile(c, "banner")
		if err != nil {
			return err
		}
		defer closeBanner()

		event, err := h.opts.Events.CreateEvent(c.Request().Context(), id.UID, in, banner)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, newEventResponse(event, h.opts.Location))
	}
}

func (h *handlers) deleteEvent(c echo.Context) error {
	if err := h.opts.Events.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listAttendees answers JSON, or a CSV download with ?format=csv.
func (h *handlers) listAttendees(c echo.Context) error {
	q := input.AttendeeQuery{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	eventID := c.Param("id")
	if c.QueryParam("format") == "csv" {
		data, err := h.opts.Events.ExportAttendeesCSV(c.Request().Context(), eventID, q)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", "attendees-"+eventID+".csv"))
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
	}
	attendees, err := h.opts.Events.ListAttendees(c.Request().Context(), eventID, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAttendeesResponse(attendees))
}

func (h *handlers) markAttendance(c echo.Context) error {
	var req attendanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.opts.Events.MarkAttendance(c.Request().Context(), c.Param("id"), req.RegistrationIDs, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}

func (h *handlers) listUsers(c echo.Context) error {
	users, err := h.opts.Users.ListUsers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) getUserDetail(c echo.Context) error {
	detail, err := h.opts.Users.GetUserDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userDetailResponse{
		User:        newUserResponse(detail.User),
		Events:      newRegistrationsWithEvent(detail.Events, h.opts.Location),
		Workshops:   newRegistrationsWithEvent(detail.Workshops, h.opts.Location),
		Application: newApplicationResponse(detail.Application),
	})
}

func (h *handlers) updateUser(c echo.Context) error {
	var in input.AdminUserUpdate
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	user, err := h.opts.Users.UpdateUser(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlers) reviewApplication(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	app, err := h.opts.Ambassadors.Review(c.Request().Context(), c.Param("id"), *req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newApplicationResponse(app))
}
