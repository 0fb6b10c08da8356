package types

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError flattens the first failing rule into a client-facing message.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	field := strings.SplitN(fe.Namespace(), ".", 2)
	name := fe.Field()
	if len(field) == 2 {
		name = field[1]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "email":
		return fmt.Errorf("%s must be a valid email address", name)
	case "len":
		return fmt.Errorf("%s must be %s characters", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", name)
	}
}

func NewRegisterTransactionRequestFromContext(ctx echo.Context) (*RegisterTransactionRequest, error) {
	var body RegisterTransactionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.RequestId = strings.TrimSpace(body.RequestId)
	if body.RequestId == "" {
		body.RequestId = strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
	}
	body.PaymentId = strings.TrimSpace(body.PaymentId)
	body.Provider = strings.ToLower(strings.TrimSpace(body.Provider))
	body.Currency = strings.ToUpper(strings.TrimSpace(body.Currency))
	body.CustomerEmail = strings.TrimSpace(body.CustomerEmail)
	trimAddress(body.Billing)
	trimAddress(body.Shipping)
	for i := range body.Lines {
		body.Lines[i].Description = strings.TrimSpace(body.Lines[i].Description)
	}

	return &body, nil
}

func trimAddress(a *Address) {
	if a == nil {
		return
	}
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.CompanyName = strings.TrimSpace(a.CompanyName)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.CountryArea = strings.TrimSpace(a.CountryArea)
	a.StreetAddress1 = strings.TrimSpace(a.StreetAddress1)
	a.StreetAddress2 = strings.TrimSpace(a.StreetAddress2)
	a.Phone = strings.TrimSpace(a.Phone)
}

// Validate checks the request shape. A missing billing or shipping address is
// left to the provider, which reports it as a missing-address error.
func (r *RegisterTransactionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	if !r.GetAmount().IsPositive() {
		return errors.New("amount must be > 0")
	}
	for i, line := range r.GetLines() {
		if line.Gross.IsNegative() {
			return fmt.Errorf("lines[%d].gross must be >= 0", i)
		}
	}
	return nil
}

func NewGetTransactionRequestFromContext(ctx echo.Context) (*GetTransactionRequest, error) {
	return &GetTransactionRequest{PaymentId: strings.TrimSpace(ctx.Param("payment_id"))}, nil
}

func (r *GetTransactionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

func NewCancelTransactionRequestFromContext(ctx echo.Context) (*CancelTransactionRequest, error) {
	var body CancelTransactionRequest
	if err := ctx.Bind(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	body.PaymentId = strings.TrimSpace(ctx.Param("payment_id"))
	body.RequestId = strings.TrimSpace(body.RequestId)
	if body.RequestId == "" {
		body.RequestId = strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
	}
	body.Provider = strings.ToLower(strings.TrimSpace(body.Provider))

	return &body, nil
}

func (r *CancelTransactionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

func NewProviderHealthRequestFromContext(ctx echo.Context) (*ProviderHealthRequest, error) {
	return &ProviderHealthRequest{Provider: strings.ToLower(strings.TrimSpace(ctx.Param("provider")))}, nil
}

func (r *ProviderHealthRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}
