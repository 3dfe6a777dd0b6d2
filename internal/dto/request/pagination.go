package request

import (
	"net/http"
	"strings"

	"game-platform/pkg/utils"
)

// UserListRequest holds the query parameters of the user listing
type UserListRequest struct {
	Page      int    `json:"page" validate:"min=1"`
	Size      int    `json:"size" validate:"min=1,max=100"`
	Sort      string `json:"sort" validate:"oneof=createdAt username email lastLoginAt"`
	Direction string `json:"direction" validate:"oneof=ASC DESC"`
}

func ParseUserListRequest(r *http.Request) UserListRequest {
	page, size := utils.ParsePageParams(r)
	q := r.URL.Query()

	req := UserListRequest{
		Page:      page,
		Size:      size,
		Sort:      q.Get("sort"),
		Direction: strings.ToUpper(q.Get("direction")),
	}
	if req.Sort == "" {
		req.Sort = "createdAt"
	}
	if req.Direction == "" {
		req.Direction = "DESC"
	}
	return req
}

func (p UserListRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Size)
}
