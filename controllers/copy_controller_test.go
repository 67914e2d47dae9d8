package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/mocks"
	"github.com/aboutcode-org/dejacode/services"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequestContext(method, target, body string) (shared.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	dataspace := models.Dataspace{ID: 2, Name: "Alternate"}
	shared.SetUser(ctx, models.User{ID: 7, Username: "alternate_user", DataspaceID: dataspace.ID})
	shared.SetDataspace(ctx, dataspace)
	return ctx, rec
}

func TestCopyController(t *testing.T) {
	id := uuid.New()
	body := `{"model":"owner","source":"nexB","target":"Alternate","uuids":["` + id.String() + `"]}`

	t.Run("should render the copy report", func(t *testing.T) {
		copyService := mocks.NewCopyService(t)
		report := dtos.NewCopyReport("owner", "nexB", "Alternate")
		report.Copied = append(report.Copied, dtos.CopiedObjectDTO{UUID: id})
		copyService.On("CopyBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(req dtos.CopyRequest) bool {
			return req.Model == "owner" && len(req.UUIDs) == 1 && req.UUIDs[0] == id
		})).Return(report, nil)

		ctx, rec := newRequestContext(http.MethodPost, "/api/v1/copy/", body)
		require.NoError(t, NewCopyController(copyService, nil).Copy(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), id.String())
	})

	t.Run("should map a permission error to forbidden", func(t *testing.T) {
		copyService := mocks.NewCopyService(t)
		copyService.On("CopyBatch", mock.Anything, mock.Anything, mock.Anything).Return(dtos.CopyReport{}, services.ErrPermissionDenied)

		ctx, _ := newRequestContext(http.MethodPost, "/api/v1/copy/", body)
		err := NewCopyController(copyService, nil).Copy(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("should reject a request without uuids before calling the service", func(t *testing.T) {
		copyService := mocks.NewCopyService(t)

		ctx, _ := newRequestContext(http.MethodPost, "/api/v1/copy/", `{"model":"owner","source":"nexB","target":"Alternate"}`)
		err := NewCopyController(copyService, nil).Copy(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		copyService.AssertNotCalled(t, "CopyBatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestURNController(t *testing.T) {
	t.Run("should resolve in the dataspace of the user", func(t *testing.T) {
		urnService := mocks.NewURNService(t)
		urnService.On("Resolve", mock.Anything, uint(2), "urn:dje:license:mit").Return(map[string]string{"key": "mit"}, nil)

		ctx, rec := newRequestContext(http.MethodGet, "/api/v1/urn/?urn=urn:dje:license:mit", "")
		require.NoError(t, NewURNController(urnService).Resolve(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"urn":"urn:dje:license:mit","kind":"license","object":{"key":"mit"}}`, rec.Body.String())
	})

	t.Run("should map a missing object to not found", func(t *testing.T) {
		urnService := mocks.NewURNService(t)
		urnService.On("Resolve", mock.Anything, uint(2), "urn:dje:owner:nobody").Return(nil, services.ErrNotFound)

		ctx, _ := newRequestContext(http.MethodGet, "/api/v1/urn/?urn=urn:dje:owner:nobody", "")
		err := NewURNController(urnService).Resolve(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}
