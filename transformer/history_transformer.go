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

package transformer

import (
	"encoding/json"
	"log/slog"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/utils"
)

func HistoryToDTO(h models.History) dtos.HistoryDTO {
	dto := dtos.HistoryDTO{
		ActionFlag:    h.ActionFlag.String(),
		ChangeMessage: h.ChangeMessage,
		ObjectRepr:    h.ObjectRepr,
		ContentType:   h.ContentType,
		ActionTime:    h.ActionTime,
	}
	if h.User != nil {
		dto.User = h.User.Username
	}
	if len(h.SerializedData) > 0 {
		if err := json.Unmarshal(h.SerializedData, &dto.SerializedData); err != nil {
			slog.Warn("could not decode serialized history data", "historyID", h.ID, "err", err)
		}
	}
	return dto
}

func CopyResultToDTO(r copier.Result) dtos.CopiedObjectDTO {
	return dtos.CopiedObjectDTO{
		UUID:          r.Object.GetUUID(),
		Repr:          r.Object.String(),
		ChangedFields: r.ChangedFields(),
	}
}

func ComparisonToDTO(c copier.Comparison) dtos.ComparisonDTO {
	return dtos.ComparisonDTO{
		UUID:    c.Source.GetUUID(),
		Repr:    c.Source.String(),
		Matched: c.Matched(),
		Diffs: utils.Map(c.Diffs, func(d copier.FieldDiff) dtos.FieldDiffDTO {
			return dtos.FieldDiffDTO{Field: d.Field, Source: d.Source, Target: d.Target}
		}),
	}
}
