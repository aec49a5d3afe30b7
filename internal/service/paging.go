package service

import "github.com/RoyceAzure/lab/shopcenter/internal/constants"

// normalizePaging 套用預設值並轉成limit/offset
func normalizePaging(page, pageSize int) (limit, offset int32) {
	if page < 1 {
		page = constants.DefaultPaging
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPagingSize
	}
	if pageSize > constants.MaxPagingSize {
		pageSize = constants.MaxPagingSize
	}
	return int32(pageSize), int32((page - 1) * pageSize)
}

// normalizePageParams 回傳修正後的page/pageSize, 供需要原始分頁值的查詢使用
func normalizePageParams(page, pageSize int) (int, int) {
	if page < 1 {
		page = constants.DefaultPaging
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPagingSize
	}
	if pageSize > constants.MaxPagingSize {
		pageSize = constants.MaxPagingSize
	}
	return page, pageSize
}
