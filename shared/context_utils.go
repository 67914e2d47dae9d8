// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
)

func SetUser(ctx Context, user models.User) {
	ctx.Set("user", user)
}

func GetUser(ctx Context) models.User {
	return ctx.Get("user").(models.User)
}

func HasUser(ctx Context) bool {
	_, ok := ctx.Get("user").(models.User)
	return ok
}

func SetDataspace(ctx Context, dataspace models.Dataspace) {
	ctx.Set("dataspace", dataspace)
}

func GetDataspace(ctx Context) models.Dataspace {
	return ctx.Get("dataspace").(models.Dataspace)
}

func SetRBAC(ctx Context, rbac AccessControl) {
	ctx.Set("rbac", rbac)
}

func GetRBAC(ctx Context) AccessControl {
	return ctx.Get("rbac").(AccessControl)
}

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback := ctx.Get(param)
		if fallback == nil {
			return ""
		}
		return fallback.(string)
	}
	return v
}

func GetUUIDParam(ctx Context) (uuid.UUID, error) {
	raw := SanitizeParam(GetParam(ctx, "uuid"))
	if raw == "" {
		return uuid.Nil, fmt.Errorf("could not get uuid")
	}
	return uuid.Parse(raw)
}

func GetSearch(ctx Context) string {
	return strings.TrimSpace(ctx.QueryParam("search"))
}

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func (p Paged[T]) Map(f func(T) any) Paged[any] {
	data := make([]any, len(p.Data))
	for i, d := range p.Data {
		data[i] = f(d)
	}
	return Paged[any]{
		PageInfo: p.PageInfo,
		Total:    p.Total,
		Data:     data,
	}
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

func GetPageInfo(ctx Context) PageInfo {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 10
	}

	return PageInfo{
		Page:     page,
		PageSize: pageSize,
	}
}

type SortQuery struct {
	Field    string
	Operator string // asc or desc
}

func (s SortQuery) SQL() string {
	op := "asc"
	if strings.EqualFold(s.Operator, "desc") {
		op = "desc"
	}
	return fmt.Sprintf("%q %s", s.Field, op)
}

// GetSortQuery reads sort[field]=asc|desc parameters. Fields outside of
// allowed are dropped.
func GetSortQuery(ctx Context, allowed ...string) []SortQuery {
	query := ctx.QueryParams()
	sortQuerys := []SortQuery{}
	for key := range query {
		if !strings.HasPrefix(key, "sort[") || !strings.HasSuffix(key, "]") {
			continue
		}
		field := strings.TrimSuffix(strings.TrimPrefix(key, "sort["), "]")
		if !utils.Contains(allowed, field) {
			continue
		}
		sortQuerys = append(sortQuerys, SortQuery{
			Field:    field,
			Operator: query.Get(key),
		})
	}
	return sortQuerys
}
