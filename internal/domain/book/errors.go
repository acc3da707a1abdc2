package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrEmptyPayload 请求体为空或无法解析为图书
	ErrEmptyPayload = apperrors.New(apperrors.ErrCodeUnsupportedMediaType, "图书信息不能为空")

	// ErrIDMustBeGenerated 客户端不能指定ID
	ErrIDMustBeGenerated = apperrors.New(apperrors.ErrCodeUnprocessableEntity, "id字段必须由服务端生成")
)
