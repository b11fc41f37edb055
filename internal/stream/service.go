package stream

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hud.v1.OverlayService"

const streamFramesMethod = "/" + ServiceName + "/StreamFrames"

// FrameStream is the server side of one StreamFrames call.
type FrameStream interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

// OverlayServer serves StreamFrames. Publisher implements it.
type OverlayServer interface {
	StreamFrames(*emptypb.Empty, FrameStream) error
}

// ServiceDesc describes the overlay service. Frames travel as
// google.protobuf.Struct so no generated code is needed on either side.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OverlayServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamFrames",
			Handler:       streamFramesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "hud/v1/overlay.proto",
}

// RegisterOverlayServer registers srv on s.
func RegisterOverlayServer(s grpc.ServiceRegistrar, srv OverlayServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func streamFramesHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OverlayServer).StreamFrames(m, &frameStream{stream})
}

type frameStream struct {
	grpc.ServerStream
}

func (s *frameStream) Send(m *structpb.Struct) error {
	return s.ServerStream.SendMsg(m)
}

// Client is a StreamFrames client.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// StreamFrames opens a frame stream.
func (c *Client) StreamFrames(ctx context.Context, opts ...grpc.CallOption) (*FrameReceiver, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], streamFramesMethod, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &FrameReceiver{stream: stream}, nil
}

// FrameReceiver reads frames from an open stream.
type FrameReceiver struct {
	stream grpc.ClientStream
}

// Recv blocks for the next frame.
func (r *FrameReceiver) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := r.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
