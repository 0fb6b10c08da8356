package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "atobarai.TransactionsService"

// TransactionsServiceServer exchanges google.protobuf.Struct messages whose
// fields follow the HTTP API's JSON bodies.
type TransactionsServiceServer interface {
	Health(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProviderHealth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(srv TransactionsServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TransactionsServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(TransactionsServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var TransactionsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TransactionsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Health", TransactionsServiceServer.Health),
		unaryHandler("ProviderHealth", TransactionsServiceServer.ProviderHealth),
		unaryHandler("RegisterTransaction", TransactionsServiceServer.RegisterTransaction),
		unaryHandler("GetTransaction", TransactionsServiceServer.GetTransaction),
		unaryHandler("CancelTransaction", TransactionsServiceServer.CancelTransaction),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterTransactionsServiceServer(s grpc.ServiceRegistrar, srv TransactionsServiceServer) {
	s.RegisterService(&TransactionsServiceDesc, srv)
}

// FullMethod returns the invocation path of a TransactionsService method.
func FullMethod(name string) string {
	return "/" + serviceName + "/" + name
}
