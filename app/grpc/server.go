package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-atobarai/app/mapper"
	"github.com/vibast-solutions/ms-go-atobarai/app/service"
	"github.com/vibast-solutions/ms-go-atobarai/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type Server struct {
	transactionService *service.TransactionService
}

func NewServer(transactionService *service.TransactionService) *Server {
	return &Server{transactionService: transactionService}
}

func (s *Server) Health(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encodeStruct(&types.HealthResponse{Status: "ok"})
}

func (s *Server) ProviderHealth(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req types.ProviderHealthRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	code, healthy, err := s.transactionService.ProviderHealth(ctx, req.GetProvider())
	if err != nil {
		return nil, serviceError(ctx, err, "Provider health check failed")
	}

	return encodeStruct(&types.ProviderHealthResponse{Provider: code, Healthy: healthy})
}

func (s *Server) RegisterTransaction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	l := loggerWithContext(ctx)

	var req types.RegisterTransactionRequest
	if err := decodeStruct(in, &req); err != nil {
		l.WithError(err).Debug("Register transaction decode failed")
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if strings.TrimSpace(req.RequestId) == "" {
		req.RequestId = RequestIDFromContext(ctx)
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	if err := req.Validate(); err != nil {
		l.WithError(err).Debug("Register transaction validation failed")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, result, err := s.transactionService.RegisterTransaction(ctx, &req)
	if err != nil {
		return nil, serviceError(ctx, err, "Register transaction failed")
	}

	return encodeStruct(&types.TransactionEnvelopeResponse{
		Transaction: mapper.TransactionToView(item),
		Result:      mapper.PaymentResultToView(result),
	})
}

func (s *Server) GetTransaction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req types.GetTransactionRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.transactionService.GetTransaction(ctx, req.GetPaymentId())
	if err != nil {
		return nil, serviceError(ctx, err, "Get transaction failed")
	}

	return encodeStruct(&types.TransactionEnvelopeResponse{Transaction: mapper.TransactionToView(item)})
}

func (s *Server) CancelTransaction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req types.CancelTransactionRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if strings.TrimSpace(req.RequestId) == "" {
		req.RequestId = RequestIDFromContext(ctx)
	}
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, result, err := s.transactionService.CancelTransaction(ctx, &req)
	if err != nil {
		return nil, serviceError(ctx, err, "Cancel transaction failed")
	}

	return encodeStruct(&types.TransactionEnvelopeResponse{
		Transaction: mapper.TransactionToView(item),
		Result:      mapper.PaymentResultToView(result),
	})
}

func serviceError(ctx context.Context, err error, logMessage string) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrProviderUnsupported),
		errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, service.ErrUnknownPostalCode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrTransactionNotFound):
		return status.Error(codes.NotFound, "transaction not found")
	case errors.Is(err, service.ErrNotVoidable), errors.Is(err, service.ErrInvalidStatus):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrGatewayUnreachable):
		loggerWithContext(ctx).WithError(err).Warn(logMessage)
		return status.Error(codes.Unavailable, "cannot connect to payment gateway")
	default:
		loggerWithContext(ctx).WithError(err).Error(logMessage)
		return status.Error(codes.Internal, "internal server error")
	}
}

func decodeStruct(in *structpb.Struct, dst interface{}) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func encodeStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
