package rpc

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// CatalogServer 图书目录gRPC实现
// 设计说明：
// 1. 与HTTP Handler共用同一组用例，缓存、事件、指标行为一致
// 2. 只做协议转换（Struct ↔ 领域对象）
// 3. 错误统一由toStatus映射为gRPC状态码
type CatalogServer struct {
	books          *appbook.UseCases
	paging         dto.Paging
	exposeInternal bool
}

var _ CatalogServiceServer = (*CatalogServer)(nil)

// NewCatalogServer 创建gRPC服务
func NewCatalogServer(books *appbook.UseCases, paging dto.Paging, exposeInternal bool) *CatalogServer {
	return &CatalogServer{books: books, paging: paging, exposeInternal: exposeInternal}
}

// GetBook 图书详情
func (s *CatalogServer) GetBook(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	if req.GetValue() == 0 {
		return nil, s.status(apperrors.InvalidArgument("invalid book id: 0"))
	}
	b, err := s.books.Get.Execute(ctx, uint(req.GetValue()))
	if err != nil {
		return nil, s.status(err)
	}
	return bookToStruct(b), nil
}

// ListBooks 条件查询，带page/size/sort任一键时分页
func (s *CatalogServer) ListBooks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	criteria, err := structToCriteria(req, s.paging)
	if err != nil {
		return nil, s.status(err)
	}
	result, err := s.books.Search.Criteria(ctx, criteria)
	if err != nil {
		return nil, s.status(err)
	}
	return resultToStruct(result), nil
}

// CountBooks 图书总数
func (s *CatalogServer) CountBooks(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	n, err := s.books.Count.Execute(ctx)
	if err != nil {
		return nil, s.status(err)
	}
	return wrapperspb.Int64(n), nil
}

// CreateBook 创建图书
func (s *CatalogServer) CreateBook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	draft, err := structToDraft(req)
	if err != nil {
		return nil, s.status(err)
	}
	b, err := s.books.Create.Execute(ctx, draft)
	if err != nil {
		return nil, s.status(err)
	}
	return bookToStruct(b), nil
}

// UpdateBook 全量更新，请求中必须带id
func (s *CatalogServer) UpdateBook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idFrom(req)
	if err != nil {
		return nil, s.status(err)
	}
	draft, err := structToDraft(req)
	if err != nil {
		return nil, s.status(err)
	}
	b, err := s.books.Update.Execute(ctx, id, draft)
	if err != nil {
		return nil, s.status(err)
	}
	return bookToStruct(b), nil
}

// PatchBook 部分更新
func (s *CatalogServer) PatchBook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idFrom(req)
	if err != nil {
		return nil, s.status(err)
	}
	patch, err := structToPatch(req)
	if err != nil {
		return nil, s.status(err)
	}
	b, err := s.books.Patch.Execute(ctx, id, patch)
	if err != nil {
		return nil, s.status(err)
	}
	return bookToStruct(b), nil
}

// DeleteBook 删除图书
func (s *CatalogServer) DeleteBook(ctx context.Context, req *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	if req.GetValue() == 0 {
		return nil, s.status(apperrors.InvalidArgument("invalid book id: 0"))
	}
	if err := s.books.Delete.Execute(ctx, uint(req.GetValue())); err != nil {
		return nil, s.status(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *CatalogServer) status(err error) error {
	return toStatus(err, s.exposeInternal)
}
