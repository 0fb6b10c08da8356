package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-atobarai/app/factory"
	"github.com/vibast-solutions/ms-go-atobarai/app/mapper"
	"github.com/vibast-solutions/ms-go-atobarai/app/service"
	"github.com/vibast-solutions/ms-go-atobarai/app/types"
)

type TransactionController struct {
	transactionService *service.TransactionService
	logger             logrus.FieldLogger
}

func NewTransactionController(transactionService *service.TransactionService) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
		logger:             factory.NewModuleLogger("transactions-controller"),
	}
}

func (c *TransactionController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *TransactionController) ProviderHealth(ctx echo.Context) error {
	req, err := types.NewProviderHealthRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	code, healthy, err := c.transactionService.ProviderHealth(ctx.Request().Context(), req.GetProvider())
	if err != nil {
		return c.writeServiceError(ctx, err, "Provider health check failed")
	}

	return ctx.JSON(http.StatusOK, &types.ProviderHealthResponse{Provider: code, Healthy: healthy})
}

func (c *TransactionController) RegisterTransaction(ctx echo.Context) error {
	req, err := types.NewRegisterTransactionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, result, err := c.transactionService.RegisterTransaction(ctx.Request().Context(), req)
	if err != nil {
		return c.writeServiceError(ctx, err, "Register transaction failed")
	}

	return ctx.JSON(http.StatusCreated, &types.TransactionEnvelopeResponse{
		Transaction: mapper.TransactionToView(item),
		Result:      mapper.PaymentResultToView(result),
	})
}

func (c *TransactionController) GetTransaction(ctx echo.Context) error {
	req, err := types.NewGetTransactionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.transactionService.GetTransaction(ctx.Request().Context(), req.GetPaymentId())
	if err != nil {
		return c.writeServiceError(ctx, err, "Get transaction failed")
	}

	return ctx.JSON(http.StatusOK, &types.TransactionEnvelopeResponse{Transaction: mapper.TransactionToView(item)})
}

func (c *TransactionController) CancelTransaction(ctx echo.Context) error {
	req, err := types.NewCancelTransactionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, result, err := c.transactionService.CancelTransaction(ctx.Request().Context(), req)
	if err != nil {
		return c.writeServiceError(ctx, err, "Cancel transaction failed")
	}

	return ctx.JSON(http.StatusOK, &types.TransactionEnvelopeResponse{
		Transaction: mapper.TransactionToView(item),
		Result:      mapper.PaymentResultToView(result),
	})
}

func (c *TransactionController) writeServiceError(ctx echo.Context, err error, logMessage string) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrProviderUnsupported),
		errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, service.ErrUnknownPostalCode):
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTransactionNotFound):
		return c.writeError(ctx, http.StatusNotFound, "transaction not found")
	case errors.Is(err, service.ErrNotVoidable), errors.Is(err, service.ErrInvalidStatus):
		return c.writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGatewayUnreachable):
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Warn(logMessage)
		return c.writeError(ctx, http.StatusBadGateway, "cannot connect to payment gateway")
	default:
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error(logMessage)
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func (c *TransactionController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
