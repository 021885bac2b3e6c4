package grpcnet

import (
	"google.golang.org/grpc"
)

const (
	serviceName     = "ringpath.transport.v1.Ring"
	deliverMethod   = "/" + serviceName + "/Deliver"
	rankMetadataKey = "ringpath-rank"
)

// ringServer is the server side of the Ring service. Deliver receives a
// client stream of wrapperspb.BytesValue frames and answers with emptypb.Empty.
type ringServer interface {
	Deliver(stream grpc.ServerStream) error
}

func deliverHandler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(ringServer).Deliver(stream)
}

var ringServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ringServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Deliver",
			Handler:       deliverHandler,
			ClientStreams: true,
		},
	},
	Metadata: "ringpath/transport/v1/ring.proto",
}
