// Package rpc 图书目录gRPC服务
//
// 消息全部使用protobuf的well-known类型（structpb/wrapperspb/emptypb），
// 不需要额外的.proto生成代码；ServiceDesc按protoc-gen-go-grpc的生成格式手写。
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName 完整服务名
const ServiceName = "catalog.v1.CatalogService"

// 方法全名（拦截器按此判断读写）
const (
	MethodGetBook    = "/" + ServiceName + "/GetBook"
	MethodListBooks  = "/" + ServiceName + "/ListBooks"
	MethodCountBooks = "/" + ServiceName + "/CountBooks"
	MethodCreateBook = "/" + ServiceName + "/CreateBook"
	MethodUpdateBook = "/" + ServiceName + "/UpdateBook"
	MethodPatchBook  = "/" + ServiceName + "/PatchBook"
	MethodDeleteBook = "/" + ServiceName + "/DeleteBook"
)

// CatalogServiceServer 服务端接口
type CatalogServiceServer interface {
	GetBook(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	ListBooks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CountBooks(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	CreateBook(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateBook(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PatchBook(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteBook(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error)
}

// ServiceDesc gRPC服务描述
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetBook", MethodGetBook, newUInt64, CatalogServiceServer.GetBook),
		unary("ListBooks", MethodListBooks, newStruct, CatalogServiceServer.ListBooks),
		unary("CountBooks", MethodCountBooks, newEmpty, CatalogServiceServer.CountBooks),
		unary("CreateBook", MethodCreateBook, newStruct, CatalogServiceServer.CreateBook),
		unary("UpdateBook", MethodUpdateBook, newStruct, CatalogServiceServer.UpdateBook),
		unary("PatchBook", MethodPatchBook, newStruct, CatalogServiceServer.PatchBook),
		unary("DeleteBook", MethodDeleteBook, newUInt64, CatalogServiceServer.DeleteBook),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

// RegisterCatalogServiceServer 注册服务
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newUInt64() *wrapperspb.UInt64Value { return new(wrapperspb.UInt64Value) }
func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }

// unary 构造一元方法的MethodDesc（与生成代码的_Handler函数等价）
func unary[Req proto.Message, Resp proto.Message](
	name, fullMethod string,
	newReq func() Req,
	call func(CatalogServiceServer, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CatalogServiceServer)
			if interceptor == nil {
				out, err := call(server, ctx, in)
				return out, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				out, err := call(server, ctx, req.(Req))
				return out, err
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// =========================================
// 客户端
// =========================================

// CatalogServiceClient 客户端接口
type CatalogServiceClient interface {
	GetBook(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListBooks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CountBooks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	CreateBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PatchBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteBook(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient 创建客户端
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func (c *catalogServiceClient) GetBook(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetBook, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) ListBooks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodListBooks, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) CountBooks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, MethodCountBooks, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) CreateBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodCreateBook, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) UpdateBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodUpdateBook, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) PatchBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodPatchBook, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) DeleteBook(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodDeleteBook, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
