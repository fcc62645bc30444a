package api

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

// Binder decodes JSON request bodies with sonic.
type Binder struct{}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return fmt.Errorf("%w: empty body", constants.ErrInvalidRequest)
	}
	defer req.Body.Close()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %s", constants.ErrInvalidRequest, err.Error())
	}
	if err := sonic.Unmarshal(body, i); err != nil {
		return fmt.Errorf("%w: invalid json: %s", constants.ErrInvalidRequest, err.Error())
	}
	return nil
}
