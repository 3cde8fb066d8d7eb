package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"revamp/internal/ports/input"
)

// bindAndValidate binds a JSON body, or the JSON "data" field of a
// multipart form, into dst and validates it.
func bindAndValidate(c echo.Context, dst any) error {
	if isMultipart(c) {
		data := c.FormValue("data")
		if data == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing data field")
		}
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid data field").SetInternal(err)
		}
	} else if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formFile opens an optional multipart file. The returned close func is
// never nil.
func formFile(c echo.Context, field string) (*input.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form").SetInternal(err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &input.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
